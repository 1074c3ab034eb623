package fontsys

import (
	"fmt"

	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
)

// FontLoadError is reported for faces present in the database which cannot
// be parsed.
type FontLoadError struct {
	ID     font.ID
	Family string
	Label  string // description of the face's source
	Err    error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("cannot load font face #%d [%s] from %s: %v", e.ID, e.Family, e.Label, e.Err)
}

func (e *FontLoadError) Unwrap() error {
	return e.Err
}

// ErrorCode is part of interface core.AppError.
func (e *FontLoadError) ErrorCode() int {
	return core.EINVALID
}

// UserMessage is part of interface core.AppError.
func (e *FontLoadError) UserMessage() string {
	return fmt.Sprintf("font %s (face #%d) is unusable", e.Family, e.ID)
}

var _ core.AppError = &FontLoadError{}
