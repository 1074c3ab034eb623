package font

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// Description holds the metadata of a face needed for font matching.
type Description struct {
	Family     string
	Style      Style
	Weight     Weight
	Stretch    Stretch
	Monospaced bool
	Index      int // position of the face within its font file or collection
}

var (
	tagOS2  = ot.MustNewTag("OS/2")
	tagPost = ot.MustNewTag("post")
)

// Describe extracts the metadata of every face of a font file or collection,
// without fully parsing the faces. Only the 'name', 'OS/2', 'head' and 'post'
// tables are read.
func Describe(data []byte) ([]Description, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: cannot read font header: %w", err)
	}
	descs := make([]Description, 0, len(loaders))
	var buffer []byte
	for i, ld := range loaders {
		var d gotext.Description
		d, buffer = gotext.Describe(ld, buffer)
		if strings.TrimSpace(d.Family) == "" {
			tracer().Debugf("face %d has no family name, skipping", i)
			continue
		}
		desc := Description{
			Family:  strings.TrimSpace(d.Family),
			Style:   styleFromGoText(d.Aspect.Style),
			Weight:  weightFromGoText(d.Aspect.Weight),
			Stretch: Stretch(d.Aspect.Stretch),
			Index:   i,
		}
		os2, _ := ld.RawTable(tagOS2)
		post, _ := ld.RawTable(tagPost)
		if desc.Style == StyleItalic && isOblique(os2) {
			desc.Style = StyleOblique
		}
		desc.Monospaced = isFixedPitch(post) || hasMonospacedPanose(os2) ||
			strings.Contains(NormalizeFamily(desc.Family), "mono")
		descs = append(descs, desc)
	}
	return descs, nil
}

// 'post' table: isFixedPitch is a uint32 at offset 12.
func isFixedPitch(post []byte) bool {
	if len(post) < 16 {
		return false
	}
	return binary.BigEndian.Uint32(post[12:16]) != 0
}

// 'OS/2' table: panose starts at offset 32; family kind 2 (Latin text)
// with proportion 9 denotes a monospaced design.
func hasMonospacedPanose(os2 []byte) bool {
	if len(os2) < 42 {
		return false
	}
	return os2[32] == 2 && os2[35] == 9
}

// 'OS/2' table: fsSelection is a uint16 at offset 62, bit 9 flags oblique faces.
func isOblique(os2 []byte) bool {
	if len(os2) < 64 {
		return false
	}
	return binary.BigEndian.Uint16(os2[62:64])&(1<<9) != 0
}
