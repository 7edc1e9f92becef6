package pointmap

import (
	"iter"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/geomlabs/euclid/precision"
)

// Set is an ordered set of points under epsilon equivalence. Adding a point
// equivalent to a stored one is a no-op; the stored representative is kept.
type Set[P any] struct {
	m *Map[P, struct{}]
}

// NewSet1D returns a Set holding scalar values.
func NewSet1D(prec precision.Context) *Set[float64] {
	return &Set[float64]{m: NewMap1D[struct{}](prec)}
}

// NewSet2D returns a Set holding r2.Point values.
func NewSet2D(prec precision.Context) *Set[r2.Point] {
	return &Set[r2.Point]{m: NewMap2D[struct{}](prec)}
}

// NewSet3D returns a Set holding r3.Vector values.
func NewSet3D(prec precision.Context) *Set[r3.Vector] {
	return &Set[r3.Vector]{m: NewMap3D[struct{}](prec)}
}

// Len returns the number of stored points.
func (s *Set[P]) Len() int {
	return s.m.Len()
}

// Precision returns the precision context points are resolved with.
func (s *Set[P]) Precision() precision.Context {
	return s.m.Precision()
}

// Add stores pt unless an equivalent point is already present. Errors on
// non-finite coordinates.
func (s *Set[P]) Add(pt P) error {
	if s.m.Contains(pt) {
		return nil
	}
	return s.m.Set(pt, struct{}{})
}

// Contains reports whether a stored point is equivalent to pt.
func (s *Set[P]) Contains(pt P) bool {
	return s.m.Contains(pt)
}

// Resolve returns the stored point equivalent to pt, if any.
func (s *Set[P]) Resolve(pt P) (P, bool) {
	return s.m.Resolve(pt)
}

// Remove deletes the stored point equivalent to pt, reporting whether one
// was present.
func (s *Set[P]) Remove(pt P) bool {
	_, ok := s.m.Remove(pt)
	return ok
}

// Clear removes all points.
func (s *Set[P]) Clear() {
	s.m.Clear()
}

// All traverses stored points in the underlying key order.
func (s *Set[P]) All() iter.Seq[P] {
	return s.m.Keys()
}

// NearToFar returns stored points ordered by ascending distance from ref.
// See Map.NearToFar for ordering and mutation semantics.
func (s *Set[P]) NearToFar(ref P) (iter.Seq[P], error) {
	entries, err := s.m.NearToFar(ref)
	if err != nil {
		return nil, err
	}
	return keysOf(entries), nil
}

// FarToNear returns stored points ordered by descending distance from ref.
func (s *Set[P]) FarToNear(ref P) (iter.Seq[P], error) {
	entries, err := s.m.FarToNear(ref)
	if err != nil {
		return nil, err
	}
	return keysOf(entries), nil
}

func keysOf[P any](entries iter.Seq2[P, struct{}]) iter.Seq[P] {
	return func(yield func(P) bool) {
		for k := range entries {
			if !yield(k) {
				return
			}
		}
	}
}
