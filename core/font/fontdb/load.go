package fontdb

import (
	"fmt"
	"os"

	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/locate/resources"
	"github.com/npillmayer/schuko"
)

// Load populates the database with the fonts available on the host, as
// located by resources.SystemFontFiles, and applies configured defaults
// for generic families. Files which cannot be read are traced and skipped.
// If configuration key 'font-gofonts' is set, the embedded Go fonts are
// added as well.
//
// It is not an error if no faces are found.
func (db *Database) Load(conf schuko.Configuration) {
	db.ApplyConfig(conf)
	n := 0
	for _, path := range resources.SystemFontFiles(conf) {
		cnt, err := db.LoadFontFile(path)
		if err != nil {
			tracer().Errorf("fontdb: skipping %s: %v", path, err)
			continue
		}
		n += cnt
	}
	if conf.GetBool("font-gofonts") {
		n += db.LoadGoFonts()
	}
	tracer().Infof("fontdb: loaded %d faces from host", n)
}

// LoadFontFile adds all faces of a font file or collection. The file is read
// to extract metadata, but faces are not parsed.
func (db *Database) LoadFontFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	return db.load(data, font.Source{Path: path}, path)
}

// LoadFontData adds all faces of an in-memory font file or collection.
// Label is usually a file name. It is used for tracing and for guessing
// style and weight of faces whose metadata carries neither.
// data must not be modified afterwards.
func (db *Database) LoadFontData(data []byte, label string) (int, error) {
	return db.load(data, font.Source{Data: data}, label)
}

func (db *Database) load(data []byte, src font.Source, label string) (int, error) {
	descs, err := font.Describe(data)
	if err != nil {
		return 0, core.WrapError(err, core.EINVALID, "cannot read font metadata of %s", label)
	}
	for _, d := range descs {
		guessAspect(&d, label)
		s := src
		s.Index = d.Index
		id := db.AddFace(FaceRecord{
			Families:   []string{d.Family},
			Style:      d.Style,
			Weight:     d.Weight,
			Stretch:    d.Stretch,
			Monospaced: d.Monospaced,
			Source:     s,
		})
		tracer().Debugf("fontdb: face #%d from %s", id, label)
	}
	return len(descs), nil
}

// guessAspect fills in style and weight from a face's label if its metadata
// reports the regular aspect, which is what fonts without OS/2 data or
// style names end up with.
func guessAspect(d *font.Description, label string) {
	if d.Style != font.StyleNormal || d.Weight != font.WeightNormal || label == "" {
		return
	}
	style, weight := font.GuessStyleAndWeight(label)
	if style != d.Style || weight != d.Weight {
		tracer().Debugf("fontdb: %s guessed as %s %d from its name", label, style, weight)
		d.Style, d.Weight = style, weight
	}
}

// LoadFontsDir adds all font files found in a directory tree and returns the
// number of faces added.
func (db *Database) LoadFontsDir(dir string) int {
	n := 0
	for _, path := range resources.FontFilesInDir(dir) {
		cnt, err := db.LoadFontFile(path)
		if err != nil {
			tracer().Errorf("fontdb: skipping %s: %v", path, err)
			continue
		}
		n += cnt
	}
	tracer().Infof("fontdb: loaded %d faces from %s", n, dir)
	return n
}

// LoadGoFonts adds the Go font family, which is compiled into the binary.
func (db *Database) LoadGoFonts() int {
	n := 0
	for _, f := range font.GoFonts() {
		cnt, err := db.LoadFontData(f.Data, f.Name)
		if err != nil {
			panic(fmt.Sprintf("embedded font %s is corrupt", f.Name)) // this cannot happen
		}
		n += cnt
	}
	return n
}
