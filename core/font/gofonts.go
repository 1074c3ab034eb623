package font

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
)

// EmbeddedFont is a font file compiled into the binary.
type EmbeddedFont struct {
	Name string
	Data []byte
}

// GoFonts returns the Go font family, which is always available.
func GoFonts() []EmbeddedFont {
	return []EmbeddedFont{
		{"Go-Regular.ttf", goregular.TTF},
		{"Go-Italic.ttf", goitalic.TTF},
		{"Go-Medium.ttf", gomedium.TTF},
		{"Go-Medium-Italic.ttf", gomediumitalic.TTF},
		{"Go-Bold.ttf", gobold.TTF},
		{"Go-Bold-Italic.ttf", gobolditalic.TTF},
		{"Go-Mono.ttf", gomono.TTF},
		{"Go-Mono-Italic.ttf", gomonoitalic.TTF},
		{"Go-Mono-Bold.ttf", gomonobold.TTF},
		{"Go-Mono-Bold-Italic.ttf", gomonobolditalic.TTF},
		{"Go-Smallcaps.ttf", gosmallcaps.TTF},
		{"Go-Smallcaps-Italic.ttf", gosmallcapsitalic.TTF},
	}
}
