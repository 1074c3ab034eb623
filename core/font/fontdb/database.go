package fontdb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// ErrNotFound is wrapped by errors for faces not present in a database.
var ErrNotFound = errors.New("font face not found")

// FaceRecord describes a face known to a database. Records are immutable
// once added; clients must not modify records handed out by a database.
type FaceRecord struct {
	ID         font.ID
	Families   []string // family names, the first one is the primary family
	Style      font.Style
	Weight     font.Weight
	Stretch    font.Stretch
	Monospaced bool
	Source     font.Source
}

// Family returns the primary family name of a face.
func (rec *FaceRecord) Family() string {
	if len(rec.Families) == 0 {
		return ""
	}
	return rec.Families[0]
}

// HasFamily checks if name is one of the family names of rec, ignoring case.
func (rec *FaceRecord) HasFamily(name string) bool {
	for _, f := range rec.Families {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

func (rec *FaceRecord) String() string {
	m := ""
	if rec.Monospaced {
		m = " mono"
	}
	return fmt.Sprintf("#%d [%s] %s %d %s%s (%s)", rec.ID, rec.Family(), rec.Style,
		rec.Weight, rec.Stretch, m, rec.Source)
}

// Database is a catalog of font faces, ordered by load time.
type Database struct {
	faces    *linkedhashmap.Map // font.ID -> *FaceRecord, in load order
	families *trie.Trie         // normalized family name -> *familyEntry
	defaults map[Generic]string
	lastID   font.ID
}

type familyEntry struct {
	name  string // family name as found first
	count int    // number of faces referencing this family
}

// New creates an empty database, with built-in defaults for the generic
// families.
func New() *Database {
	db := &Database{
		faces:    linkedhashmap.New(),
		families: trie.New(),
		defaults: make(map[Generic]string, len(Generics)),
	}
	for _, g := range Generics {
		db.defaults[g] = builtinDefault(g)
	}
	return db
}

// AddFace adds a face to the database and returns the ID assigned to it.
// The ID of info is ignored. Default values are substituted for missing
// style, weight and stretch.
func (db *Database) AddFace(info FaceRecord) font.ID {
	db.lastID++
	rec := info
	rec.ID = db.lastID
	rec.Families = append([]string(nil), info.Families...)
	if rec.Style == 0 {
		rec.Style = font.StyleNormal
	}
	if rec.Weight == 0 {
		rec.Weight = font.WeightNormal
	}
	if rec.Stretch == 0 {
		rec.Stretch = font.StretchNormal
	}
	db.faces.Put(rec.ID, &rec)
	for _, fam := range rec.Families {
		db.indexFamily(fam)
	}
	tracer().Debugf("fontdb: added face %s", &rec)
	return rec.ID
}

// RemoveFace removes a face from the database. It returns false if no face
// with the given ID is present. IDs are never reused.
func (db *Database) RemoveFace(id font.ID) bool {
	r, found := db.faces.Get(id)
	if !found {
		return false
	}
	db.faces.Remove(id)
	for _, fam := range r.(*FaceRecord).Families {
		db.unindexFamily(fam)
	}
	tracer().Debugf("fontdb: removed face #%d", id)
	return true
}

func (db *Database) indexFamily(name string) {
	key := font.NormalizeFamily(name)
	if key == "" {
		return
	}
	if node, ok := db.families.Find(key); ok {
		node.Meta().(*familyEntry).count++
		return
	}
	db.families.Add(key, &familyEntry{name: strings.TrimSpace(name), count: 1})
}

func (db *Database) unindexFamily(name string) {
	key := font.NormalizeFamily(name)
	if node, ok := db.families.Find(key); ok {
		entry := node.Meta().(*familyEntry)
		if entry.count--; entry.count <= 0 {
			db.families.Remove(key)
		}
	}
}

// Face returns the record for a face ID. If the ID is unknown, an error
// wrapping ErrNotFound is returned.
func (db *Database) Face(id font.ID) (*FaceRecord, error) {
	if r, found := db.faces.Get(id); found {
		return r.(*FaceRecord), nil
	}
	return nil, core.WrapError(ErrNotFound, core.EMISSING, "no font face with ID %d", id)
}

// Len returns the number of faces in the database.
func (db *Database) Len() int {
	return db.faces.Size()
}

// EachFace calls f for every face, in load order, until f returns false.
func (db *Database) EachFace(f func(*FaceRecord) bool) {
	it := db.faces.Iterator()
	for it.Next() {
		if !f(it.Value().(*FaceRecord)) {
			return
		}
	}
}

// Families returns the distinct primary family names, in load order.
func (db *Database) Families() []string {
	var names []string
	seen := make(map[string]bool)
	db.EachFace(func(rec *FaceRecord) bool {
		key := font.NormalizeFamily(rec.Family())
		if key != "" && !seen[key] {
			seen[key] = true
			names = append(names, rec.Family())
		}
		return true
	})
	return names
}

// FamiliesWithPrefix returns the family names starting with prefix, ignoring
// case, sorted alphabetically.
func (db *Database) FamiliesWithPrefix(prefix string) []string {
	keys := db.families.PrefixSearch(font.NormalizeFamily(prefix))
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if node, ok := db.families.Find(key); ok {
			names = append(names, node.Meta().(*familyEntry).name)
		}
	}
	sort.Strings(names)
	return names
}

// HasFamily checks if any face belongs to a family, ignoring case.
func (db *Database) HasFamily(name string) bool {
	_, ok := db.families.Find(font.NormalizeFamily(name))
	return ok
}

// --- Generic families ------------------------------------------------------

// SetDefaultFamily sets the family to substitute for a generic family,
// replacing any previous setting.
func (db *Database) SetDefaultFamily(g Generic, name string) {
	if g == NoGeneric {
		tracer().Errorf("fontdb: cannot set default family for generic family 'none'")
		return
	}
	tracer().Debugf("fontdb: default %s family is %q", g, name)
	db.defaults[g] = name
}

// DefaultFamily returns the family substituted for a generic family.
func (db *Database) DefaultFamily(g Generic) string {
	return db.defaults[g]
}

// ApplyConfig sets the defaults for generic families from configuration
// keys 'font-monospace', 'font-sans-serif', 'font-serif', 'font-cursive'
// and 'font-fantasy'. Unset keys leave the current defaults untouched.
func (db *Database) ApplyConfig(conf schuko.Configuration) {
	for _, g := range Generics {
		if conf.IsSet(g.configKey()) {
			if name := strings.TrimSpace(conf.GetString(g.configKey())); name != "" {
				db.SetDefaultFamily(g, name)
			}
		}
	}
}

// LogFaces dumps the list of faces to the trace (log-level Info).
func (db *Database) LogFaces() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- font database: %d faces ---", db.Len())
	db.EachFace(func(rec *FaceRecord) bool {
		tracer().Infof("%s", rec)
		return true
	})
	for _, g := range Generics {
		tracer().Infof("%s = %q", g, db.defaults[g])
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
