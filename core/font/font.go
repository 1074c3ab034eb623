/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "family" is a set of faces sharing a design. An example is "Fira Mono".

* A "face" is one variant of a family with a certain weight, slant and
stretch. An example is "Fira Mono Bold". A face lives in a font file or in
a font collection (*.ttc) together with other faces.

* A "type case" is a face scaled to a certain size, ready for measuring and
drawing text.

Package font knows how to describe a face without fully parsing it (see
Describe) and how to turn a face's source bytes into a Font, the parsed
and shareable representation handed to shaping engines.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'fontsys.font'
func tracer() tracing.Trace {
	return tracing.Select("fontsys.font")
}

// ErrEmptyFontData is returned when a source does not provide any bytes.
var ErrEmptyFontData = errors.New("font: empty font data")

// ID identifies a face within a font database.
type ID uint64

// Source locates the bytes of a face: either a file or an in-memory byte
// slice. Index selects a face within a font collection and is 0 for plain
// font files.
type Source struct {
	Path  string
	Data  []byte
	Index int
}

// Bytes returns the raw bytes of the font file or collection holding the face.
// File sources are read on every call.
func (src Source) Bytes() ([]byte, error) {
	if len(src.Data) > 0 {
		return src.Data, nil
	}
	if src.Path == "" {
		return nil, ErrEmptyFontData
	}
	bytez, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, err
	}
	if len(bytez) == 0 {
		return nil, ErrEmptyFontData
	}
	return bytez, nil
}

func (src Source) String() string {
	if src.Path != "" {
		if src.Index > 0 {
			return fmt.Sprintf("%s#%d", src.Path, src.Index)
		}
		return src.Path
	}
	return fmt.Sprintf("<%d bytes>#%d", len(src.Data), src.Index)
}

// Font is a parsed face. It is immutable after parsing and may be shared
// freely between goroutines.
type Font struct {
	Fontname string       // family name as found in the font's name table
	Source   Source       // where the face came from
	Binary   []byte       // raw data of the font file or collection
	SFNT     *sfnt.Font   // x/image view of the face, nil if x/image cannot read it
	ot       *gotext.Font // go-text view of the face
}

// Parser turns the bytes of a face into a Font.
type Parser interface {
	Parse(src Source) (*Font, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(src Source) (*Font, error)

// Parse calls f(src).
func (f ParserFunc) Parse(src Source) (*Font, error) {
	return f(src)
}

// DefaultParser parses faces with Parse.
var DefaultParser Parser = ParserFunc(Parse)

// Parse reads the bytes of src and parses the face at src.Index.
func Parse(src Source) (*Font, error) {
	bytez, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("font: cannot read %s: %w", src, err)
	}
	f, err := ParseData(bytez, src.Index)
	if err != nil {
		return nil, err
	}
	f.Source = src
	return f, nil
}

// ParseData parses the face at position index of a font file or collection.
// The returned Font keeps a reference to data, which therefore must not be
// modified afterwards.
func ParseData(data []byte, index int) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: cannot read font header: %w", err)
	}
	if index < 0 || index >= len(loaders) {
		return nil, fmt.Errorf("font: face index %d out of range, font contains %d face(s)",
			index, len(loaders))
	}
	otf, err := gotext.NewFont(loaders[index])
	if err != nil {
		return nil, fmt.Errorf("font: cannot parse face %d: %w", index, err)
	}
	f := &Font{
		Binary: data,
		Source: Source{Data: data, Index: index},
		ot:     otf,
	}
	f.Fontname = otf.Describe().Family
	f.SFNT = parseSFNT(data, index)
	return f, nil
}

func parseSFNT(data []byte, index int) *sfnt.Font {
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		tracer().Debugf("x/image cannot read font collection: %v", err)
		return nil
	}
	f, err := coll.Font(index)
	if err != nil {
		tracer().Debugf("x/image cannot read face %d: %v", index, err)
		return nil
	}
	return f
}

// Name returns the family name of the face.
func (f *Font) Name() string {
	return f.Fontname
}

// OpenType returns the go-text representation of the face, suitable for
// HarfBuzz-style shaping.
func (f *Font) OpenType() *gotext.Font {
	return f.ot
}

// Face creates a new go-text face for f. Faces carry mutable state
// (ppem, variation coordinates), therefore every caller gets its own.
func (f *Font) Face() *gotext.Face {
	return gotext.NewFace(f.ot)
}

// HasGlyph reports whether the face maps r to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	_, ok := f.ot.NominalGlyph(r)
	return ok
}

// Upem returns the face's units per em.
func (f *Font) Upem() uint16 {
	return f.ot.Upem()
}

// --- Type cases ------------------------------------------------------------

// TypeCase is a face scaled to a point size.
type TypeCase struct {
	parent *Font
	face   xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size   float64
}

// PrepareCase creates a type case for f at a given point size.
// Sizes outside of 5pt…500pt are replaced by 10pt.
func (f *Font) PrepareCase(fontsize float64) (*TypeCase, error) {
	if f.SFNT == nil {
		return nil, fmt.Errorf("font: no scalable outline data for %s", f.Fontname)
	}
	if fontsize < 5.0 || fontsize > 500.0 {
		tracer().Errorf("font size must be 5pt < size < 500pt, is %g (set to 10pt)", fontsize)
		fontsize = 10.0
	}
	face, err := opentype.NewFace(f.SFNT, &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &TypeCase{parent: f, face: face, size: fontsize}, nil
}

// Font returns the parsed font a type case has been derived from.
func (tc *TypeCase) Font() *Font {
	return tc.parent
}

// Face returns the x/image face of the type case.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// PtSize returns the size of the type case in points.
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
//
// Font resolution never substitutes the fallback font on its own; this is
// left to clients.
func FallbackFont() *Font {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *Font

func loadFallbackFont() *Font {
	f, err := ParseData(goregular.TTF, 0)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return f
}
