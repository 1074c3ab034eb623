package resources

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gomono"
)

func TestIsFontFile(t *testing.T) {
	for name, expected := range map[string]bool{
		"FiraMono-Regular.ttf": true,
		"Helvetica.ttc":        true,
		"SourceSans3.OTF":      true,
		"NotoColorEmoji.otc":   true,
		"fonts.dir":            false,
		"README":               false,
		"font.woff2":           false,
	} {
		assert.Equal(t, expected, IsFontFile(name), "IsFontFile(%q)", name)
	}
}

func TestConfiguredFontDirs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.resources")
	defer teardown()
	//
	conf := testconfig.Conf{
		"font-dirs": "/opt/fonts" + string(os.PathListSeparator) + " " +
			string(os.PathListSeparator) + "/home/me/fonts",
	}
	dirs := ConfiguredFontDirs(conf)
	assert.Equal(t, []string{"/opt/fonts", "/home/me/fonts"}, dirs)
}

func TestSystemFontFilesFromConfiguredDirs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.resources")
	defer teardown()
	//
	dir := t.TempDir()
	sub := filepath.Join(dir, "mono")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "Go-Mono.ttf"), gomono.TTF, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("no font"), 0644))
	conf := testconfig.Conf{
		"font-system": "false",
		"font-dirs":   dir + string(os.PathListSeparator) + dir, // listed twice
	}
	files := SystemFontFiles(conf)
	require.Len(t, files, 1, "expected exactly one font file")
	assert.Equal(t, "Go-Mono.ttf", filepath.Base(files[0]))
}

func TestMissingDirectoryIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.resources")
	defer teardown()
	//
	conf := testconfig.Conf{
		"font-system": "false",
		"font-dirs":   filepath.Join(t.TempDir(), "does-not-exist"),
	}
	assert.Empty(t, SystemFontFiles(conf))
}

func TestFindFontFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Go-Mono.ttf")
	require.NoError(t, os.WriteFile(p, gomono.TTF, 0644))
	found, err := FindFontFile(p)
	require.NoError(t, err)
	assert.Equal(t, p, found)
	//
	_, err = FindFontFile("surely-no-such-font-installed-xyzzy.ttf")
	require.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func fakeFontConfig(t *testing.T, script string) string {
	p := filepath.Join(t.TempDir(), "fc-list")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+script), 0755))
	return p
}

func TestFontConfigListIsCached(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a POSIX shell and XDG_CONFIG_HOME")
	}
	teardown := gotestingadapter.QuickConfig(t, "fontsys.resources")
	defer teardown()
	//
	confdir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confdir)
	conf := testconfig.Conf{
		"app-key":    "fontsys-test",
		"fontconfig": fakeFontConfig(t, "echo '/fonts/A.ttf: '\necho '/fonts/readme.txt: '\n"),
	}
	assert.Equal(t, []string{"/fonts/A.ttf"}, fontConfigFiles(conf, false))
	assert.FileExists(t, filepath.Join(confdir, "fontsys-test", "fontlist.txt"))
	conf["fontconfig"] = fakeFontConfig(t, "exit 1\n")
	assert.Equal(t, []string{"/fonts/A.ttf"}, fontConfigFiles(conf, false),
		"expected cached list to be used without calling fc-list")
}

func TestFailedFontConfigLeavesNoCache(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a POSIX shell and XDG_CONFIG_HOME")
	}
	teardown := gotestingadapter.QuickConfig(t, "fontsys.resources")
	defer teardown()
	//
	confdir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confdir)
	conf := testconfig.Conf{
		"app-key":    "fontsys-test",
		"fontconfig": fakeFontConfig(t, "echo '/fonts/Partial.ttf: '\nexit 1\n"),
	}
	assert.Empty(t, fontConfigFiles(conf, false))
	assert.NoFileExists(t, filepath.Join(confdir, "fontsys-test", "fontlist.txt"),
		"expected output of failed fc-list to be removed")
	conf["fontconfig"] = fakeFontConfig(t, "echo '/fonts/B.otf: '\n")
	assert.Equal(t, []string{"/fonts/B.otf"}, fontConfigFiles(conf, false))
}
