/*
Command fontcli is an interactive tool for inspecting a font database and
running font queries against it.

Usage:

    fontcli [-trace Debug|Info|Error] [-locale tag] [-gofonts] [-dir path]

Enter 'help' at the prompt for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/font/fontdb"
	"github.com/npillmayer/fontsys/core/font/fontsys"
	"github.com/npillmayer/fontsys/core/locate/resources"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontsys.cli'
func tracer() tracing.Trace {
	return tracing.Select("fontsys.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":         "go",
		"trace.fontsys.cli":       "Info",
		"trace.fontsys.match":     "Error",
		"trace.fontsys.fontdb":    "Error",
		"trace.fontsys.font":      "Error",
		"trace.fontsys.resources": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		core.UserError(core.WrapError(err, core.EINTERNAL, "error configuring tracing"))
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	locale := flag.String("locale", "", "Locale, e.g. en-US")
	gofonts := flag.Bool("gofonts", false, "Add the embedded Go fonts")
	dir := flag.String("dir", "", "Additional font directories, separated by "+string(os.PathListSeparator))
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the font system CLI")
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the font system
	fsconf := testconfig.Conf{
		"font-gofonts": *gofonts,
	}
	if *dir != "" {
		fsconf["font-dirs"] = *dir
	}
	if *locale != "" {
		fsconf["font-locale"] = *locale
	}
	spinner, _ := pterm.DefaultSpinner.Start("Scanning fonts")
	fsys := fontsys.New(fontsys.WithConfig(fsconf))
	spinner.Success(fmt.Sprintf("%d faces, locale %s", fsys.DB().Len(), fsys.Locale()))
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "font > ",
		AutoComplete: familyCompleter{fsys},
	})
	if err != nil {
		core.UserError(core.WrapError(err, core.EINVALID, "cannot initialize terminal input"))
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{repl: repl, fsys: fsys}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl *readline.Instance
	fsys *fontsys.FontSystem
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			msg := err.Error()
			if core.Code(err) != core.EINTERNAL { // application errors carry a user message
				msg = core.UserMessage(err)
			}
			pterm.Error.Println(msg)
			tracer().Debugf("%v", err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line.
type Command struct {
	code  int
	args  []string
	attrs fontsys.Attrs
}

const (
	QUIT int = iota
	HELP
	MATCH
	FACE
	FAMILIES
	DEFAULT
	LOAD
	STATS
)

func parseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	cmd := &Command{args: fields[1:]}
	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		cmd.code = QUIT
	case "match", "m":
		cmd.code = MATCH
		attrs, err := parseAttrs(cmd.args)
		if err != nil {
			return nil, err
		}
		cmd.attrs = attrs
	case "face", "f":
		cmd.code = FACE
	case "families", "fam":
		cmd.code = FAMILIES
	case "default":
		cmd.code = DEFAULT
	case "load":
		cmd.code = LOAD
	case "stats":
		cmd.code = STATS
	default:
		cmd.code = HELP
	}
	tracer().Debugf("command = %d %v", cmd.code, cmd.args)
	return cmd, nil
}

// parseAttrs reads a query, e.g.
//
//     match Fira Sans w=700 style=italic
//     match +mono s=0.75
//     match monospace
//
// Flags are '+mono', 'style=', 'w=' and 's='; all other words form the
// family name, so 'match Fira Mono' asks for family "Fira Mono".
func parseAttrs(args []string) (fontsys.Attrs, error) {
	var q fontsys.Attrs
	var family []string
	for _, arg := range args {
		switch a := strings.ToLower(arg); {
		case a == "+mono":
			q.Monospaced = true
		case strings.HasPrefix(a, "style="):
			switch a[6:] {
			case "normal":
				q.Style = font.StyleNormal
			case "italic":
				q.Style = font.StyleItalic
			case "oblique":
				q.Style = font.StyleOblique
			default:
				return q, fmt.Errorf("invalid style: %s", arg)
			}
		case strings.HasPrefix(a, "w="):
			w, err := strconv.Atoi(a[2:])
			if err != nil || w < 1 || w > 1000 {
				return q, fmt.Errorf("invalid weight: %s", arg)
			}
			q.Weight = font.Weight(w)
		case strings.HasPrefix(a, "s="):
			s, err := strconv.ParseFloat(a[2:], 32)
			if err != nil || s <= 0 {
				return q, fmt.Errorf("invalid stretch: %s", arg)
			}
			q.Stretch = font.Stretch(s)
		default:
			family = append(family, arg)
		}
	}
	if len(family) > 0 {
		q.Family = fontsys.ParseFamily(strings.Join(family, " "))
	}
	return q, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
	case MATCH:
		intp.match(cmd.attrs)
	case FACE:
		if len(cmd.args) != 1 {
			return false, errors.New("usage: face <id>")
		}
		id, err := strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return false, fmt.Errorf("not a face ID: %s", cmd.args[0])
		}
		return false, intp.face(font.ID(id))
	case FAMILIES:
		intp.families(strings.Join(cmd.args, " "))
	case DEFAULT:
		if len(cmd.args) < 2 {
			return false, errors.New("usage: default <generic> <family>")
		}
		g, ok := fontdb.ParseGeneric(cmd.args[0])
		if !ok {
			return false, fmt.Errorf("not a generic family: %s", cmd.args[0])
		}
		name := strings.Join(cmd.args[1:], " ")
		return false, intp.fsys.UpdateDB(func(db *fontdb.Database) error {
			db.SetDefaultFamily(g, name)
			return nil
		})
	case LOAD:
		if len(cmd.args) == 0 {
			return false, errors.New("usage: load <font file or name>")
		}
		return false, intp.load(strings.Join(cmd.args, " "))
	case STATS:
		intp.stats()
	}
	return false, nil
}

func (intp *Intp) match(q fontsys.Attrs) {
	fonts := intp.fsys.MatchFonts(q)
	if len(fonts) == 0 {
		pterm.Warning.Printfln("no fonts match %s, clients would fall back to %s",
			q, font.FallbackFont().Name())
		return
	}
	data := pterm.TableData{{"Family", "Source", "Glyphs", "Upem"}}
	for _, f := range fonts {
		data = append(data, []string{
			f.Name(),
			f.Source.String(),
			numGlyphs(f),
			strconv.Itoa(int(f.Upem())),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func numGlyphs(f *font.Font) string {
	if f.SFNT == nil {
		return "-"
	}
	return strconv.Itoa(f.SFNT.NumGlyphs())
}

func (intp *Intp) face(id font.ID) error {
	rec, err := intp.fsys.DB().Face(id)
	if err != nil {
		return err
	}
	pterm.Printfln("%s", rec)
	f, err := intp.fsys.LoadFont(id)
	if err != nil {
		return err
	}
	tc, err := f.PrepareCase(12)
	if err != nil {
		return err
	}
	m := tc.Face().Metrics()
	pterm.Printfln("family %q, upem %d, at %.0fpt: ascent %s, descent %s, height %s",
		f.Name(), f.Upem(), tc.PtSize(), m.Ascent, m.Descent, m.Height)
	return nil
}

func (intp *Intp) families(prefix string) {
	var names []string
	if prefix == "" {
		names = intp.fsys.DB().Families()
	} else {
		names = intp.fsys.DB().FamiliesWithPrefix(prefix)
	}
	for _, name := range names {
		pterm.Println(name)
	}
	pterm.Info.Printfln("%d families", len(names))
}

func (intp *Intp) load(name string) error {
	path, err := resources.FindFontFile(name)
	if err != nil {
		return err
	}
	var n int
	err = intp.fsys.UpdateDB(func(db *fontdb.Database) (err error) {
		n, err = db.LoadFontFile(path)
		return
	})
	if err == nil {
		pterm.Info.Printfln("loaded %d face(s) from %s", n, path)
	}
	return err
}

func (intp *Intp) stats() {
	db := intp.fsys.DB()
	data := pterm.TableData{
		{"Faces", strconv.Itoa(db.Len())},
		{"Families", strconv.Itoa(len(db.Families()))},
		{"Cached fonts", strconv.Itoa(intp.fsys.CacheLen())},
		{"Locale", intp.fsys.Locale()},
	}
	for _, g := range fontdb.Generics {
		data = append(data, []string{g.String(), db.DefaultFamily(g)})
	}
	pterm.DefaultTable.WithData(data).Render()
	if tracer().GetTraceLevel() == tracing.LevelDebug {
		db.LogFaces()
	}
}

// familyCompleter completes family names for 'match' and 'families'.
type familyCompleter struct {
	fsys *fontsys.FontSystem
}

// Do implements readline.AutoCompleter. Offsets are counted in runes.
func (fc familyCompleter) Do(line []rune, pos int) ([][]rune, int) {
	input := line[:pos]
	i := 0
	for i < len(input) && input[i] != ' ' {
		i++
	}
	if i == len(input) {
		return nil, 0
	}
	switch strings.ToLower(string(input[:i])) {
	case "match", "m", "families", "fam":
	default:
		return nil, 0
	}
	for i < len(input) && input[i] == ' ' {
		i++
	}
	prefix := input[i:]
	var candidates [][]rune
	for _, name := range fc.fsys.DB().FamiliesWithPrefix(string(prefix)) {
		r := []rune(name)
		if len(r) < len(prefix) {
			continue
		}
		candidates = append(candidates, r[len(prefix):])
	}
	return candidates, len(prefix)
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	match [family|monospace|sans-serif|serif|cursive|fantasy] [+mono] [w=N] [style=normal|italic|oblique] [s=F]
	            list fonts matching a query, e.g. 'match serif w=700 style=italic'
	face <id>   show a face and its metrics
	families [prefix]
	            list families
	default <generic> <family>
	            set the default family for a generic family
	load <file or name>
	            add a font file to the database
	stats       show database and cache statistics
	quit        leave the CLI
	`)
}
