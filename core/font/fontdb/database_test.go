package fontdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func firaDB() *Database {
	db := New()
	db.AddFace(FaceRecord{Families: []string{"Fira Mono"}, Weight: font.WeightNormal, Monospaced: true})
	db.AddFace(FaceRecord{Families: []string{"Fira Mono"}, Weight: font.WeightBold, Monospaced: true})
	db.AddFace(FaceRecord{Families: []string{"Fira Sans"}, Style: font.StyleItalic})
	return db
}

func TestAddFaceAssignsIDsInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	db := firaDB()
	assert.Equal(t, 3, db.Len())
	var ids []font.ID
	db.EachFace(func(rec *FaceRecord) bool {
		ids = append(ids, rec.ID)
		return true
	})
	assert.Equal(t, []font.ID{1, 2, 3}, ids)
	rec, err := db.Face(3)
	require.NoError(t, err)
	assert.Equal(t, "Fira Sans", rec.Family())
	assert.Equal(t, font.StyleItalic, rec.Style)
	assert.Equal(t, font.WeightNormal, rec.Weight, "expected default weight")
	assert.Equal(t, font.StretchNormal, rec.Stretch, "expected default stretch")
}

func TestUnknownFace(t *testing.T) {
	db := firaDB()
	_, err := db.Face(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestRemoveFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	db := firaDB()
	assert.True(t, db.RemoveFace(3))
	assert.False(t, db.RemoveFace(3))
	assert.Equal(t, 2, db.Len())
	assert.False(t, db.HasFamily("fira sans"), "expected family to vanish with its last face")
	id := db.AddFace(FaceRecord{Families: []string{"Fira Sans"}})
	assert.Equal(t, font.ID(4), id, "expected IDs not to be reused")
}

func TestIteratorIsRestartable(t *testing.T) {
	db := firaDB()
	count := func(it *FaceIterator) int {
		n := 0
		for it.Next() {
			require.NotNil(t, it.Face())
			n++
		}
		return n
	}
	assert.Equal(t, 3, count(db.Faces()))
	assert.Equal(t, 3, count(db.Faces()))
	it := db.Faces()
	count(it)
	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, font.ID(1), it.Face().ID)
}

func TestFamilies(t *testing.T) {
	db := firaDB()
	db.AddFace(FaceRecord{Families: []string{"DejaVu Serif"}})
	assert.Equal(t, []string{"Fira Mono", "Fira Sans", "DejaVu Serif"}, db.Families())
	assert.Equal(t, []string{"Fira Mono", "Fira Sans"}, db.FamiliesWithPrefix("FIRA"))
	assert.Equal(t, []string{"DejaVu Serif"}, db.FamiliesWithPrefix("deja"))
	assert.Empty(t, db.FamiliesWithPrefix("Noto"))
	rec, _ := db.Face(1)
	assert.True(t, rec.HasFamily("fira mono"))
}

func TestDefaultFamilies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	db := New()
	assert.Equal(t, "Fira Mono", db.DefaultFamily(Monospace))
	assert.Equal(t, "Fira Sans", db.DefaultFamily(SansSerif))
	assert.Equal(t, "DejaVu Serif", db.DefaultFamily(Serif))
	assert.Equal(t, "Comic Sans MS", db.DefaultFamily(Cursive))
	assert.Equal(t, "Impact", db.DefaultFamily(Fantasy))
	db.SetDefaultFamily(Monospace, "Go Mono")
	db.SetDefaultFamily(Monospace, "Iosevka")
	assert.Equal(t, "Iosevka", db.DefaultFamily(Monospace))
	db.ApplyConfig(testconfig.Conf{
		"font-serif":   "Noto Serif",
		"font-fantasy": " ",
	})
	assert.Equal(t, "Noto Serif", db.DefaultFamily(Serif))
	assert.Equal(t, "Impact", db.DefaultFamily(Fantasy), "expected blank setting to be ignored")
}

func TestParseGeneric(t *testing.T) {
	for _, g := range Generics {
		h, ok := ParseGeneric(g.String())
		assert.True(t, ok)
		assert.Equal(t, g, h)
	}
	_, ok := ParseGeneric("Fira Mono")
	assert.False(t, ok)
}

func TestLoadGoFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	db := New()
	n := db.LoadGoFonts()
	assert.Equal(t, 12, n)
	assert.Equal(t, 12, db.Len())
	mono := 0
	db.EachFace(func(rec *FaceRecord) bool {
		assert.NotEmpty(t, rec.Family())
		assert.NotNil(t, rec.Source.Data, "expected embedded fonts to be in-memory sources")
		if rec.Monospaced {
			mono++
		}
		return true
	})
	assert.Equal(t, 4, mono, "expected the four Go Mono faces to be monospaced")
}

func TestLoadFontsFromHost(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Mono.ttf"), gomono.TTF, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Regular.ttf"), goregular.TTF, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.ttf"), []byte("not a font"), 0644))
	db := New()
	db.Load(testconfig.Conf{
		"font-system":    "false",
		"font-dirs":      dir,
		"font-monospace": "Go Mono",
	})
	assert.Equal(t, 2, db.Len(), "expected broken font file to be skipped")
	assert.Equal(t, "Go Mono", db.DefaultFamily(Monospace))
	db.EachFace(func(rec *FaceRecord) bool {
		assert.NotEmpty(t, rec.Source.Path, "expected file sources")
		assert.Nil(t, rec.Source.Data)
		return true
	})
	//
	_, err := db.LoadFontFile(filepath.Join(dir, "Broken.ttf"))
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = db.LoadFontFile(filepath.Join(dir, "Missing.ttf"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLoadEmptyHost(t *testing.T) {
	db := New()
	db.Load(testconfig.Conf{"font-system": "false"})
	assert.Equal(t, 0, db.Len())
	assert.False(t, db.Faces().Next())
}

func TestAspectGuessedFromLabel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	db := New()
	_, err := db.LoadFontData(goregular.TTF, "/fonts/Fancy-BoldItalic.ttf")
	require.NoError(t, err)
	_, err = db.LoadFontData(gobold.TTF, "Fancy-Thin.ttf")
	require.NoError(t, err)
	_, err = db.LoadFontData(goregular.TTF, "")
	require.NoError(t, err)
	rec, err := db.Face(1)
	require.NoError(t, err)
	assert.Equal(t, font.StyleItalic, rec.Style, "expected style to be guessed from file name")
	assert.Equal(t, font.WeightBold, rec.Weight, "expected weight to be guessed from file name")
	rec, err = db.Face(2)
	require.NoError(t, err)
	assert.Equal(t, font.WeightBold, rec.Weight, "expected metadata to take precedence over file name")
	rec, err = db.Face(3)
	require.NoError(t, err)
	assert.Equal(t, font.StyleNormal, rec.Style)
	assert.Equal(t, font.WeightNormal, rec.Weight)
}

func TestLogFacesKeepsTraceLevel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fontdb")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelError)
	firaDB().LogFaces()
	assert.Equal(t, tracing.LevelError, tracer().GetTraceLevel())
}
