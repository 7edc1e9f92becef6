// Package pointmap provides associative containers keyed by Euclidean points,
// where key lookup uses epsilon equivalence from a precision.Context instead
// of exact equality. Map and Set variants exist for 1D (float64), 2D
// (r2.Point) and 3D (r3.Vector) keys, and entries can be traversed in order
// of distance from a reference point.
//
// Equivalence under a fixed epsilon is not transitive, so which stored key
// ends up representing a chain of mutually close points depends on insertion
// order: inserting 1.0, 1.075, 1.15 with epsilon 0.1 stores two keys, while
// inserting 1.075 first stores one. This is an inherent property of the
// equivalence model, not a defect.
//
// The backing tree assumes the comparator is consistent between any two live
// keys at query time; this holds whenever stored keys are separated by more
// than epsilon chains of pathological length, which the insertion rule
// (a new key is only stored when no existing key is equivalent) maintains in
// practice. Mutation is single-writer; concurrent reads of an unmodified
// container are safe.
package pointmap

import (
	"iter"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/btree"

	"github.com/geomlabs/euclid/precision"
)

// btreeDegree is the branching factor of the backing B-tree.
const btreeDegree = 8

type entry[P, V any] struct {
	key   P
	value V
}

// Map is an ordered associative container keyed by points under epsilon
// equivalence. The zero value is not usable; use one of the NewMap
// constructors.
type Map[P, V any] struct {
	prec precision.Context
	sp   *space[P]
	tree *btree.BTreeG[entry[P, V]]

	// Componentwise bounding interval of every key ever inserted, used to
	// bound distances during far-to-near traversal. Never shrunk on Remove;
	// a stale interval is still a valid (conservative) bound.
	lo, hi [maxDims]float64
}

func newMap[P, V any](prec precision.Context, sp *space[P]) *Map[P, V] {
	m := &Map[P, V]{
		prec: prec,
		sp:   sp,
	}
	m.tree = btree.NewG(btreeDegree, func(a, b entry[P, V]) bool {
		return sp.compare(prec, a.key, b.key) < 0
	})
	for i := range m.lo {
		m.lo[i] = math.Inf(1)
		m.hi[i] = math.Inf(-1)
	}
	return m
}

// NewMap1D returns a Map keyed by scalar values.
func NewMap1D[V any](prec precision.Context) *Map[float64, V] {
	return newMap[float64, V](prec, space1D())
}

// NewMap2D returns a Map keyed by r2.Point values, ordered lexicographically
// by X then Y.
func NewMap2D[V any](prec precision.Context) *Map[r2.Point, V] {
	return newMap[r2.Point, V](prec, space2D())
}

// NewMap3D returns a Map keyed by r3.Vector values, ordered lexicographically
// by X, Y, then Z.
func NewMap3D[V any](prec precision.Context) *Map[r3.Vector, V] {
	return newMap[r3.Vector, V](prec, space3D())
}

// Len returns the number of stored entries.
func (m *Map[P, V]) Len() int {
	return m.tree.Len()
}

// Precision returns the precision context keys are resolved with.
func (m *Map[P, V]) Precision() precision.Context {
	return m.prec
}

// Resolve returns the stored key equivalent to pt, if any. The returned key
// is the exact instance first inserted into its equivalence slot, which may
// differ bitwise from pt. Non-finite points resolve to nothing.
func (m *Map[P, V]) Resolve(pt P) (P, bool) {
	var zero P
	if !m.sp.isFinite(pt) {
		return zero, false
	}
	found, ok := m.tree.Get(entry[P, V]{key: pt})
	if !ok {
		return zero, false
	}
	return found.key, true
}

// Contains reports whether some stored key is equivalent to pt.
func (m *Map[P, V]) Contains(pt P) bool {
	_, ok := m.Resolve(pt)
	return ok
}

// Get returns the value associated with the stored key equivalent to pt.
func (m *Map[P, V]) Get(pt P) (V, bool) {
	var zero V
	if !m.sp.isFinite(pt) {
		return zero, false
	}
	found, ok := m.tree.Get(entry[P, V]{key: pt})
	if !ok {
		return zero, false
	}
	return found.value, true
}

// Set associates value with pt. If a stored key equivalent to pt exists, its
// value is updated and the stored key itself is kept unchanged; otherwise pt
// is inserted as a new key. Errors on non-finite coordinates.
func (m *Map[P, V]) Set(pt P, value V) error {
	if !m.sp.isFinite(pt) {
		return newNonFinitePointError(pt)
	}
	if found, ok := m.tree.Get(entry[P, V]{key: pt}); ok {
		// keep the original representative key
		m.tree.ReplaceOrInsert(entry[P, V]{key: found.key, value: value})
		return nil
	}
	m.tree.ReplaceOrInsert(entry[P, V]{key: pt, value: value})
	m.foldBounds(pt)
	return nil
}

// Remove deletes the entry whose stored key is equivalent to pt, returning
// its value.
func (m *Map[P, V]) Remove(pt P) (V, bool) {
	var zero V
	if !m.sp.isFinite(pt) {
		return zero, false
	}
	removed, ok := m.tree.Delete(entry[P, V]{key: pt})
	if !ok {
		return zero, false
	}
	return removed.value, true
}

// Clear removes all entries. The recorded bounding interval is reset as well.
func (m *Map[P, V]) Clear() {
	m.tree.Clear(false)
	for i := range m.lo {
		m.lo[i] = math.Inf(1)
		m.hi[i] = math.Inf(-1)
	}
}

// All traverses entries in the underlying key order.
func (m *Map[P, V]) All() iter.Seq2[P, V] {
	return func(yield func(P, V) bool) {
		m.tree.Ascend(func(item entry[P, V]) bool {
			return yield(item.key, item.value)
		})
	}
}

// Keys traverses stored keys in the underlying key order.
func (m *Map[P, V]) Keys() iter.Seq[P] {
	return func(yield func(P) bool) {
		m.tree.Ascend(func(item entry[P, V]) bool {
			return yield(item.key)
		})
	}
}

func (m *Map[P, V]) foldBounds(pt P) {
	var buf [maxDims]float64
	m.sp.coords(pt, &buf)
	for i := 0; i < m.sp.dims; i++ {
		m.lo[i] = math.Min(m.lo[i], buf[i])
		m.hi[i] = math.Max(m.hi[i], buf[i])
	}
}
