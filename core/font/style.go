package font

import (
	"fmt"
	"path"
	"strings"

	gotext "github.com/go-text/typesetting/font"
)

// Style is the slant of a face. The zero value means "unspecified".
type Style uint8

const (
	StyleNormal Style = iota + 1
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "unset"
}

// Weight is the stroke thickness of a face, on the CSS scale from 100 to 900.
// The zero value means "unspecified".
type Weight uint16

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Stretch is the width of a face relative to its normal width, ranging from
// 0.5 to 2.0. The zero value means "unspecified".
type Stretch float32

const (
	StretchUltraCondensed Stretch = 0.5
	StretchExtraCondensed Stretch = 0.625
	StretchCondensed      Stretch = 0.75
	StretchSemiCondensed  Stretch = 0.875
	StretchNormal         Stretch = 1.0
	StretchSemiExpanded   Stretch = 1.125
	StretchExpanded       Stretch = 1.25
	StretchExtraExpanded  Stretch = 1.5
	StretchUltraExpanded  Stretch = 2.0
)

func (s Stretch) String() string {
	if s == 0 {
		return "unset"
	}
	return fmt.Sprintf("%g%%", float32(s)*100)
}

// --- Conversions -----------------------------------------------------------

func styleFromGoText(s gotext.Style) Style {
	if s == gotext.StyleItalic {
		return StyleItalic
	}
	return StyleNormal
}

func weightFromGoText(w gotext.Weight) Weight {
	if w <= 0 {
		return WeightNormal
	}
	if w > 1000 {
		return WeightBlack
	}
	return Weight(w + 0.5)
}

// --- Names -----------------------------------------------------------------

// NormalizeFamily returns a family name suitable for case-insensitive
// comparison and indexing.
func NormalizeFamily(family string) string {
	return strings.ToLower(strings.TrimSpace(family))
}

// GuessStyleAndWeight tries to guess a face's style and weight from a name,
// usually a font file name (e.g. "FiraMono-BoldItalic.ttf") or a
// human-readable description (e.g. "bold italic").
func GuessStyleAndWeight(name string) (Style, Weight) {
	name = path.Base(name)
	name = strings.ToLower(name[:len(name)-len(path.Ext(name))])
	style, weight := StyleNormal, WeightNormal
	if strings.Contains(name, "italic") {
		style = StyleItalic
	} else if strings.Contains(name, "oblique") {
		style = StyleOblique
	}
	switch {
	case strings.Contains(name, "thin"), strings.Contains(name, "hairline"):
		weight = WeightThin
	case strings.Contains(name, "extralight"), strings.Contains(name, "xlight"),
		strings.Contains(name, "ultralight"):
		weight = WeightExtraLight
	case strings.Contains(name, "light"):
		weight = WeightLight
	case strings.Contains(name, "semibold"), strings.Contains(name, "demibold"):
		weight = WeightSemiBold
	case strings.Contains(name, "extrabold"), strings.Contains(name, "xbold"),
		strings.Contains(name, "ultrabold"):
		weight = WeightExtraBold
	case strings.Contains(name, "black"), strings.Contains(name, "heavy"):
		weight = WeightBlack
	case strings.Contains(name, "bold"):
		weight = WeightBold
	case strings.Contains(name, "medium"):
		weight = WeightMedium
	}
	return style, weight
}
