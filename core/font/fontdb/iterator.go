package fontdb

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// FaceIterator iterates over the faces of a database in load order.
//
//     it := db.Faces()
//     for it.Next() {
//         rec := it.Face()
//         …
//     }
//
// The database must not be modified during iteration.
type FaceIterator struct {
	it  linkedhashmap.Iterator
	rec *FaceRecord
}

// Faces returns a new iterator over all faces. Every call starts a fresh
// iteration.
func (db *Database) Faces() *FaceIterator {
	return &FaceIterator{it: db.faces.Iterator()}
}

// Next advances the iterator, returning false when no faces are left.
func (fi *FaceIterator) Next() bool {
	if fi.it.Next() {
		fi.rec = fi.it.Value().(*FaceRecord)
		return true
	}
	fi.rec = nil
	return false
}

// Face returns the current face.
func (fi *FaceIterator) Face() *FaceRecord {
	return fi.rec
}

// Reset restarts the iteration.
func (fi *FaceIterator) Reset() {
	fi.it.Begin()
	fi.rec = nil
}
