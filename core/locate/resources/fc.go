package resources

import (
	"bufio"
	"errors"
	"os"
	"os/exec"
	"path"
	"strings"

	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/schuko"
)

func findFontConfigBinary(conf schuko.Configuration) (path string, err error) {
	path = conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		err = errors.New("fontconfig not configured")
	}
	return
}

// cacheFontConfigList writes the output of fc-list to the user's config
// directory, if not already present or if update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, bool) {
	appkey := conf.GetString("app-key")
	if appkey == "" {
		appkey = "fontsys"
	}
	uconfdir, err := os.UserConfigDir()
	if err != nil {
		tracer().Errorf("user config directory not set")
		return "", false
	}
	fcListFilename := path.Join(uconfdir, appkey, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil {
		if !update {
			return fcListFilename, true
		}
	} else {
		dir := path.Join(uconfdir, appkey)
		if _, err = os.Stat(dir); os.IsNotExist(err) {
			if err = os.MkdirAll(dir, 0755); err != nil {
				err = core.WrapError(err, core.EINVALID,
					"user configuration path cannot be created: %s", dir)
				tracer().Errorf("%s", core.UserMessage(err))
				return "", false
			}
		}
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", false
	}
	if !path.IsAbs(fcpath) {
		err = core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
		tracer().Errorf("%s", core.UserMessage(err))
		return "", false
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
		tracer().Errorf("%s", core.UserMessage(err))
		return "", false
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath, ":", "file")
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
		if cerr := fontlistFile.Close(); err == nil {
			err = cerr
		}
		if err != nil { // a partial list must not be taken for a cache later
			os.Remove(fcListFilename)
		}
	}
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
		tracer().Errorf("%s", core.UserMessage(err))
		return "", false
	}
	return fcListFilename, true
}

// fontConfigFiles returns the font files known to fontconfig. Output lines
// of `fc-list : file` have the form "/path/to/font.ttf: ".
func fontConfigFiles(conf schuko.Configuration, update bool) []string {
	fclist, ok := cacheFontConfigList(conf, update)
	if !ok {
		return nil
	}
	fc, err := os.Open(fclist)
	if err != nil {
		err = core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
		tracer().Errorf("%s", core.UserMessage(err))
		return nil
	}
	defer fc.Close()
	var files []string
	scanner := bufio.NewScanner(fc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		line = strings.TrimSuffix(line, ":")
		if line == "" || !IsFontFile(line) {
			continue
		}
		files = append(files, line)
	}
	if err = scanner.Err(); err != nil {
		tracer().Errorf("encountered a problem during reading of fontconfig font list %s: %v", fclist, err)
	}
	tracer().Infof("fontconfig knows %d font files", len(files))
	return files
}
