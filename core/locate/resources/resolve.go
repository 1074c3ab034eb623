package resources

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/schuko"
)

// IsFontFile is a predicate on file names, true for OpenType fonts and
// font collections.
func IsFontFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// NotFound returns an application error for a missing font file.
func NotFound(name string, err error) error {
	return core.WrapError(err, core.EMISSING, "font not found: %s", name)
}

// FindFontFile locates a font file by name. If name does not point to a
// readable file, the user and system font directories are searched,
// accepting partial matches of the base name.
func FindFontFile(name string) (string, error) {
	p, err := findfont.Find(name)
	if err != nil {
		return "", NotFound(name, err)
	}
	return p, nil
}

// SystemFontFiles collects the font files available on the host, as
// configured by conf:
//
//   font-system   "false" disables scanning the platform font directories
//   font-dirs     additional directories, separated by os.PathListSeparator
//   fontconfig    absolute path of fc-list
//
// Every file is listed at most once, in order of discovery.
func SystemFontFiles(conf schuko.Configuration) []string {
	var files []string
	seen := make(map[string]bool)
	add := func(f string) {
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}
	if conf.GetString("font-system") != "false" {
		sys := findfont.List()
		tracer().Debugf("found %d font files in platform font directories", len(sys))
		for _, f := range sys {
			add(f)
		}
	}
	for _, dir := range ConfiguredFontDirs(conf) {
		for _, f := range FontFilesInDir(dir) {
			add(f)
		}
	}
	if conf.IsSet("fontconfig") {
		for _, f := range fontConfigFiles(conf, false) {
			add(f)
		}
	}
	tracer().Infof("located %d font files", len(files))
	return files
}

// ConfiguredFontDirs returns the directories listed in key `font-dirs`.
func ConfiguredFontDirs(conf schuko.Configuration) []string {
	var dirs []string
	for _, d := range filepath.SplitList(conf.GetString("font-dirs")) {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// FontFilesInDir walks a directory tree and returns all font files within.
// Unreadable entries are skipped.
func FontFilesInDir(dir string) []string {
	var files []string
	if _, err := os.Stat(dir); err != nil {
		tracer().Errorf("cannot scan font directory: %v", err)
		return nil
	}
	filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			tracer().Debugf("skipping %s: %v", p, err)
			return nil
		}
		if !d.IsDir() && IsFontFile(p) {
			files = append(files, p)
		}
		return nil
	})
	return files
}
