/*
Package resources locates font sources on the host.

Font files are collected from three places:

   - the platform's user and system font directories (via go-findfont),
   - directories listed in configuration key `font-dirs`,
   - the output of fontconfig's `fc-list`, if configuration key `fontconfig`
     points to the binary.

Locating files never fails as a whole: directories which cannot be read and
misconfigured binaries are traced and skipped, possibly resulting in an
empty list.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'fontsys.resources'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.resources")
}
