package fontsys

import (
	"errors"
	"strconv"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/core/font/fontdb"
)

// fontFor returns the parsed font for rec, from the cache or by parsing it.
// Concurrent requests for the same face share a single parse.
func (fsys *FontSystem) fontFor(rec *fontdb.FaceRecord) (*font.Font, error) {
	if f, ok := fsys.cached(rec.ID); ok {
		return f, nil
	}
	v, err, shared := fsys.loading.Do(strconv.FormatUint(uint64(rec.ID), 10), func() (interface{}, error) {
		if f, ok := fsys.cached(rec.ID); ok { // a previous flight may just have finished
			return f, nil
		}
		f, err := fsys.parser.Parse(rec.Source)
		if err == nil && f == nil {
			err = errors.New("parser returned no font")
		}
		if err != nil {
			lerr := &FontLoadError{ID: rec.ID, Family: rec.Family(), Label: rec.Source.String(), Err: err}
			tracer().Errorf("%v", lerr)
			if fsys.onFailure != nil {
				fsys.onFailure(lerr)
			}
			return nil, lerr
		}
		fsys.cacheMx.Lock()
		fsys.cache[rec.ID] = f
		fsys.cacheMx.Unlock()
		tracer().Debugf("parsed font #%d [%s]", rec.ID, f.Fontname)
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		tracer().Debugf("font #%d shared between concurrent requests", rec.ID)
	}
	return v.(*font.Font), nil
}

func (fsys *FontSystem) cached(id font.ID) (*font.Font, bool) {
	fsys.cacheMx.RLock()
	defer fsys.cacheMx.RUnlock()
	f, ok := fsys.cache[id]
	return f, ok
}

// Evict removes the parsed font for a face from the cache. Clients holding
// the font are not affected; the next request will parse the face again.
func (fsys *FontSystem) Evict(id font.ID) {
	fsys.cacheMx.Lock()
	defer fsys.cacheMx.Unlock()
	delete(fsys.cache, id)
}

// Purge empties the font cache.
func (fsys *FontSystem) Purge() {
	fsys.cacheMx.Lock()
	defer fsys.cacheMx.Unlock()
	fsys.cache = make(map[font.ID]*font.Font)
}

// CacheLen returns the number of parsed fonts in the cache.
func (fsys *FontSystem) CacheLen() int {
	fsys.cacheMx.RLock()
	defer fsys.cacheMx.RUnlock()
	return len(fsys.cache)
}
