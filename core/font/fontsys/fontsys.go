package fontsys

import (
	"sync"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/font/fontdb"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
)

// DefaultLocale is used if no locale is configured or a configured locale
// is invalid.
var DefaultLocale = language.AmericanEnglish

// FontSystem resolves font requests against a font database and caches
// parsed fonts.
type FontSystem struct {
	dbMx      sync.RWMutex // guards db
	db        *fontdb.Database
	locale    language.Tag
	conf      schuko.Configuration
	parser    font.Parser
	onFailure func(*FontLoadError)
	cacheMx   sync.RWMutex // guards cache
	cache     map[font.ID]*font.Font
	loading   singleflight.Group
	localeStr string
}

// Option configures a FontSystem.
type Option func(*FontSystem)

// WithLocale sets the locale, given as a BCP 47 tag, e.g. "en-US".
func WithLocale(tag string) Option {
	return func(fsys *FontSystem) {
		fsys.localeStr = tag
	}
}

// WithDatabase uses db instead of loading a database from the host.
func WithDatabase(db *fontdb.Database) Option {
	return func(fsys *FontSystem) {
		fsys.db = db
	}
}

// WithConfig sets the configuration to read settings from. Without this
// option, the global configuration (package gconf) is used.
func WithConfig(conf schuko.Configuration) Option {
	return func(fsys *FontSystem) {
		fsys.conf = conf
	}
}

// WithParser replaces the parser used to realize faces.
func WithParser(p font.Parser) Option {
	return func(fsys *FontSystem) {
		fsys.parser = p
	}
}

// WithLoadFailureHook sets a function to be called whenever parsing a face
// fails. It may be called concurrently and must not call UpdateDB.
func WithLoadFailureHook(hook func(*FontLoadError)) Option {
	return func(fsys *FontSystem) {
		fsys.onFailure = hook
	}
}

// New creates a font system. Without option WithDatabase, a database is
// created and loaded with the fonts found on the host, as configured.
//
// The locale is taken from option WithLocale or else from configuration key
// 'font-locale'. Invalid locales are replaced by DefaultLocale.
func New(opts ...Option) *FontSystem {
	fsys := &FontSystem{
		cache:  make(map[font.ID]*font.Font),
		parser: font.DefaultParser,
	}
	for _, opt := range opts {
		opt(fsys)
	}
	if fsys.conf == nil {
		fsys.conf = globalConfig{}
	}
	if fsys.localeStr == "" {
		fsys.localeStr = fsys.conf.GetString("font-locale")
	}
	fsys.locale = parseLocale(fsys.localeStr)
	if fsys.db == nil {
		fsys.db = fontdb.New()
		fsys.db.Load(fsys.conf)
	}
	tracer().Infof("font system with %d faces, locale %s", fsys.db.Len(), fsys.locale)
	return fsys
}

func parseLocale(s string) language.Tag {
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		tracer().Errorf("invalid locale %q, using %s: %v", s, DefaultLocale, err)
		return DefaultLocale
	}
	return tag
}

// Locale returns the locale of the font system as a BCP 47 tag.
func (fsys *FontSystem) Locale() string {
	return fsys.locale.String()
}

// Language returns the locale of the font system.
func (fsys *FontSystem) Language() language.Tag {
	return fsys.locale
}

// DB returns the font database for read-only use. To modify the database,
// use UpdateDB.
func (fsys *FontSystem) DB() *fontdb.Database {
	fsys.dbMx.RLock()
	defer fsys.dbMx.RUnlock()
	return fsys.db
}

// UpdateDB calls f with exclusive access to the font database. Afterwards,
// cached fonts of faces no longer present in the database are evicted.
// Fonts already handed out to clients stay valid.
func (fsys *FontSystem) UpdateDB(f func(*fontdb.Database) error) error {
	fsys.dbMx.Lock()
	defer fsys.dbMx.Unlock()
	err := f(fsys.db)
	fsys.cacheMx.Lock()
	defer fsys.cacheMx.Unlock()
	for id := range fsys.cache {
		if _, e := fsys.db.Face(id); e != nil {
			tracer().Debugf("evicting font #%d, face has been removed", id)
			delete(fsys.cache, id)
		}
	}
	return err
}

// MatchFonts returns the fonts matching q, in database order. Faces which
// fail to parse are skipped. An empty result is not an error.
func (fsys *FontSystem) MatchFonts(q Attrs) []*font.Font {
	fsys.dbMx.RLock()
	defer fsys.dbMx.RUnlock()
	recs := SelectFaces(fsys.db, q)
	tracer().Debugf("query %s selects %d face(s)", q, len(recs))
	fonts := make([]*font.Font, 0, len(recs))
	for _, rec := range recs {
		if f, err := fsys.fontFor(rec); err == nil {
			fonts = append(fonts, f)
		}
	}
	return fonts
}

// GetFont returns the font for a face ID, or nil if the ID is unknown or the
// face cannot be parsed.
func (fsys *FontSystem) GetFont(id font.ID) *font.Font {
	f, err := fsys.LoadFont(id)
	if err != nil {
		tracer().Errorf("%v", err)
		return nil
	}
	return f
}

// LoadFont returns the font for a face ID. Errors either wrap
// fontdb.ErrNotFound or are of type *FontLoadError.
func (fsys *FontSystem) LoadFont(id font.ID) (*font.Font, error) {
	fsys.dbMx.RLock()
	defer fsys.dbMx.RUnlock()
	rec, err := fsys.db.Face(id)
	if err != nil {
		return nil, err
	}
	return fsys.fontFor(rec)
}

// globalConfig forwards to the application-wide configuration.
type globalConfig struct{}

func (globalConfig) InitDefaults()               {}
func (globalConfig) IsSet(key string) bool       { return gconf.IsSet(key) }
func (globalConfig) GetString(key string) string { return gconf.GetString(key) }
func (globalConfig) GetInt(key string) int       { return gconf.GetInt(key) }
func (globalConfig) GetBool(key string) bool     { return gconf.GetBool(key) }
func (globalConfig) IsInteractive() bool         { return false }

var _ schuko.Configuration = globalConfig{}
