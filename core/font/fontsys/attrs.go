package fontsys

import (
	"fmt"
	"strings"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/font/fontdb"
)

// Family is either a concrete family name or a generic family.
// The zero value means "any family".
type Family struct {
	Name    string
	Generic fontdb.Generic
}

// FamilyName returns a family for a concrete name, e.g. "Fira Sans".
func FamilyName(name string) Family {
	return Family{Name: name}
}

// GenericFamily returns a family for a generic family class.
func GenericFamily(g fontdb.Generic) Family {
	return Family{Generic: g}
}

// ParseFamily interprets CSS keywords for generic families and treats
// everything else as a concrete family name.
func ParseFamily(s string) Family {
	if g, ok := fontdb.ParseGeneric(s); ok {
		return GenericFamily(g)
	}
	return FamilyName(strings.TrimSpace(s))
}

// IsZero is true for the unset family.
func (f Family) IsZero() bool {
	return f.Name == "" && f.Generic == fontdb.NoGeneric
}

func (f Family) String() string {
	if f.Name != "" {
		return f.Name
	}
	if f.Generic != fontdb.NoGeneric {
		return f.Generic.String()
	}
	return "*"
}

// Attrs is a request for fonts. All fields are optional, zero values leave a
// property unconstrained. Monospaced is considered only if Family is unset.
type Attrs struct {
	Family     Family
	Monospaced bool
	Weight     font.Weight
	Style      font.Style
	Stretch    font.Stretch
}

func (q Attrs) String() string {
	var b strings.Builder
	b.WriteString("{family=")
	b.WriteString(q.Family.String())
	if q.Monospaced {
		b.WriteString(" mono")
	}
	if q.Weight != 0 {
		fmt.Fprintf(&b, " weight=%d", q.Weight)
	}
	if q.Style != 0 {
		fmt.Fprintf(&b, " style=%s", q.Style)
	}
	if q.Stretch != 0 {
		fmt.Fprintf(&b, " stretch=%s", q.Stretch)
	}
	b.WriteString("}")
	return b.String()
}
