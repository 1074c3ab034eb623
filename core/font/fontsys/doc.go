/*
Package fontsys resolves text styling requests to fonts.

A FontSystem combines a font database (package fontdb) with a locale and a
cache of parsed fonts. Clients describe the font they need with Attrs, a
set of optional properties, and receive all matching fonts in database
order:

    fsys := fontsys.New(fontsys.WithLocale("de-AT"))
    fonts := fsys.MatchFonts(fontsys.Attrs{
        Family: fontsys.GenericFamily(fontdb.Monospace),
        Weight: font.WeightBold,
    })

Generic families are resolved to the database's default family for the
generic class. Weight and stretch follow the "nearest available" rule of CSS:
if no face of a family has the requested weight (or stretch), the closest
one present is chosen, with ties broken in the direction CSS prescribes.
Style and family names have to match exactly (family names ignoring case).

Faces are parsed when first requested and cached afterwards; at most one
parse is run per face, even for concurrent requests. Faces which fail to
parse are left out of query results and reported as *FontLoadError to the
trace and to an optional hook. Failures are not cached, a later request
will try again.

All methods of a FontSystem are safe for concurrent use. Reconfiguring
the database has to go through UpdateDB.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontsys

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontsys.match'
func tracer() tracing.Trace {
	return tracing.Select("fontsys.match")
}
