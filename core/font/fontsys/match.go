package fontsys

import (
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/font/fontdb"
)

// ResolveFamily returns the concrete family name for a request, substituting
// the database's default for generic families. An empty result means "any
// family".
func ResolveFamily(db *fontdb.Database, f Family) string {
	if f.Name != "" {
		return f.Name
	}
	if f.Generic != fontdb.NoGeneric {
		return db.DefaultFamily(f.Generic)
	}
	return ""
}

// MatchFace is the predicate selecting candidate faces for a request: family,
// monospacing and style. family is the resolved family name of q (see
// ResolveFamily). Weight and stretch are not checked here, as they are
// selected relative to the faces available (see SelectFaces).
func MatchFace(rec *fontdb.FaceRecord, q Attrs, family string) bool {
	if family != "" {
		if !rec.HasFamily(family) {
			return false
		}
	} else if q.Monospaced && !rec.Monospaced {
		return false
	}
	if q.Style != 0 && rec.Style != q.Style {
		return false
	}
	return true
}

// SelectFaces returns the records of db matching q, in database order.
//
// Candidates are grouped by primary family. Within each group, the stretch
// closest to q.Stretch and then the weight closest to q.Weight are selected,
// following the rules of CSS Fonts Level 4, §5.2. Only faces with exactly the
// selected values are kept.
func SelectFaces(db *fontdb.Database, q Attrs) []*fontdb.FaceRecord {
	family := ResolveFamily(db, q.Family)
	var candidates []*fontdb.FaceRecord
	db.EachFace(func(rec *fontdb.FaceRecord) bool {
		if MatchFace(rec, q, family) {
			candidates = append(candidates, rec)
		}
		return true
	})
	if len(candidates) == 0 || (q.Weight == 0 && q.Stretch == 0) {
		return candidates
	}
	groups := make(map[string][]*fontdb.FaceRecord)
	for _, rec := range candidates {
		key := font.NormalizeFamily(rec.Family())
		groups[key] = append(groups[key], rec)
	}
	type choice struct {
		stretch font.Stretch
		weight  font.Weight
	}
	chosen := make(map[string]choice, len(groups))
	for key, recs := range groups {
		c := choice{}
		if q.Stretch != 0 {
			c.stretch = nearestStretch(q.Stretch, recs)
			recs = withStretch(recs, c.stretch)
		}
		if q.Weight != 0 {
			c.weight = nearestWeight(q.Weight, recs)
		}
		tracer().Debugf("family %q: selected stretch=%s, weight=%d", key, c.stretch, c.weight)
		chosen[key] = c
	}
	selected := make([]*fontdb.FaceRecord, 0, len(candidates))
	for _, rec := range candidates {
		c := chosen[font.NormalizeFamily(rec.Family())]
		if c.stretch != 0 && rec.Stretch != c.stretch {
			continue
		}
		if c.weight != 0 && rec.Weight != c.weight {
			continue
		}
		selected = append(selected, rec)
	}
	return selected
}

func withStretch(recs []*fontdb.FaceRecord, s font.Stretch) []*fontdb.FaceRecord {
	var r []*fontdb.FaceRecord
	for _, rec := range recs {
		if rec.Stretch == s {
			r = append(r, rec)
		}
	}
	return r
}

// nearestWeight selects from the weights of recs. recs must not be empty.
//
// For a desired weight between 400 and 500, weights up to 500 are checked in
// ascending order, then weights below the desired one in descending order,
// then weights above 500 in ascending order. Below 400, lighter weights are
// preferred, above 500, heavier ones.
func nearestWeight(w font.Weight, recs []*fontdb.FaceRecord) font.Weight {
	var below, above font.Weight // closest weight lighter/heavier than w
	for _, rec := range recs {
		rw := rec.Weight
		switch {
		case rw == w:
			return w
		case rw < w && rw > below:
			below = rw
		case rw > w && (above == 0 || rw < above):
			above = rw
		}
	}
	switch {
	case w >= font.WeightNormal && w <= font.WeightMedium:
		if above != 0 && above <= font.WeightMedium {
			return above
		}
		if below != 0 {
			return below
		}
		return above
	case w < font.WeightNormal:
		if below != 0 {
			return below
		}
		return above
	}
	if above != 0 {
		return above
	}
	return below
}

// nearestStretch selects from the stretch values of recs. recs must not be
// empty. For condensed or normal requests, narrower faces are preferred,
// for expanded requests wider ones.
func nearestStretch(s font.Stretch, recs []*fontdb.FaceRecord) font.Stretch {
	var below, above font.Stretch
	for _, rec := range recs {
		rs := rec.Stretch
		switch {
		case rs == s:
			return s
		case rs < s && rs > below:
			below = rs
		case rs > s && (above == 0 || rs < above):
			above = rs
		}
	}
	if s <= font.StretchNormal {
		if below != 0 {
			return below
		}
		return above
	}
	if above != 0 {
		return above
	}
	return below
}

