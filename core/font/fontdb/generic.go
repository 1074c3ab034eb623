package fontdb

import "strings"

// Generic is one of the generic font families of CSS.
type Generic uint8

// Generic families. The zero value denotes "no generic family".
const (
	NoGeneric Generic = iota
	Monospace
	SansSerif
	Serif
	Cursive
	Fantasy
)

// Generics lists all generic families.
var Generics = []Generic{Monospace, SansSerif, Serif, Cursive, Fantasy}

func (g Generic) String() string {
	switch g {
	case Monospace:
		return "monospace"
	case SansSerif:
		return "sans-serif"
	case Serif:
		return "serif"
	case Cursive:
		return "cursive"
	case Fantasy:
		return "fantasy"
	}
	return "none"
}

// ParseGeneric returns the generic family for a CSS keyword, e.g. "sans-serif".
func ParseGeneric(s string) (Generic, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monospace", "mono":
		return Monospace, true
	case "sans-serif", "sans", "sansserif":
		return SansSerif, true
	case "serif":
		return Serif, true
	case "cursive":
		return Cursive, true
	case "fantasy":
		return Fantasy, true
	}
	return NoGeneric, false
}

// configKey is the configuration key for the default family of g.
func (g Generic) configKey() string {
	return "font-" + g.String()
}

func builtinDefault(g Generic) string {
	switch g {
	case Monospace:
		return "Fira Mono"
	case SansSerif:
		return "Fira Sans"
	case Serif:
		return "DejaVu Serif"
	case Cursive:
		return "Comic Sans MS"
	case Fantasy:
		return "Impact"
	}
	return ""
}
