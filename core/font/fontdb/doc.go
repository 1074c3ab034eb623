/*
Package fontdb manages a catalog of font faces available to an application.

A Database holds one FaceRecord per face, in the order the faces have been
loaded. Records carry just enough metadata to select faces for a text
style: family names, style, weight, stretch and whether the face is
monospaced. Faces are not parsed when loaded; parsing is deferred to the
moment a face is actually requested (see package fontsys).

Besides concrete families, a database knows a default family for each of
the generic families of CSS (monospace, sans-serif, serif, cursive and
fantasy).

Read-only methods of a Database may be called concurrently. Methods which
add or remove faces or change defaults must not run concurrently with any
other method; clients sharing a database have to synchronize.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontdb

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsys.fontdb'
func tracer() tracing.Trace {
	return tracing.Select("fontsys.fontdb")
}
