package pointmap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/geomlabs/euclid/precision"
)

func randomCloud(seed int64, n int) []r3.Vector {
	//nolint:gosec
	rng := rand.New(rand.NewSource(seed))
	pts := make([]r3.Vector, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, r3.Vector{
			X: rng.Float64()*20 - 10,
			Y: rng.Float64()*20 - 10,
			Z: rng.Float64()*20 - 10,
		})
	}
	return pts
}

func collectNearToFar(t *testing.T, m *Map[r3.Vector, int], ref r3.Vector) []r3.Vector {
	t.Helper()
	seq, err := m.NearToFar(ref)
	test.That(t, err, test.ShouldBeNil)
	var out []r3.Vector
	for k := range seq {
		out = append(out, k)
	}
	return out
}

func TestNearToFarCompleteness(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[int](ctx)
	pts := randomCloud(42, 250)
	for i, pt := range pts {
		test.That(t, m.Set(pt, i), test.ShouldBeNil)
	}
	ref := r3.Vector{X: 0.5, Y: -0.25, Z: 0.75}

	got := collectNearToFar(t, m, ref)
	test.That(t, len(got), test.ShouldEqual, m.Len())

	// distances must be non-decreasing and the result a permutation of the keys
	for i := 1; i < len(got); i++ {
		test.That(t, got[i].Sub(ref).Norm(), test.ShouldBeGreaterThanOrEqualTo, got[i-1].Sub(ref).Norm())
	}
	want := append([]r3.Vector{}, pts...)
	sort.Slice(want, func(i, j int) bool { return want[i].Sub(ref).Norm() < want[j].Sub(ref).Norm() })
	for i := range want {
		test.That(t, got[i].Sub(ref).Norm(), test.ShouldAlmostEqual, want[i].Sub(ref).Norm(), 1e-12)
	}
}

func TestFarToNearCompleteness(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[int](ctx)
	pts := randomCloud(7, 180)
	for i, pt := range pts {
		test.That(t, m.Set(pt, i), test.ShouldBeNil)
	}
	ref := r3.Vector{X: -1, Y: 2, Z: 0}

	seq, err := m.FarToNear(ref)
	test.That(t, err, test.ShouldBeNil)
	var got []r3.Vector
	for k := range seq {
		got = append(got, k)
	}
	test.That(t, len(got), test.ShouldEqual, m.Len())
	for i := 1; i < len(got); i++ {
		test.That(t, got[i].Sub(ref).Norm(), test.ShouldBeLessThanOrEqualTo, got[i-1].Sub(ref).Norm())
	}
}

func TestDistanceOrderingDeterministicTies(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[int](ctx)
	// four points equidistant from the origin
	for i, pt := range []r3.Vector{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	} {
		test.That(t, m.Set(pt, i), test.ShouldBeNil)
	}

	first := collectNearToFar(t, m, r3.Vector{})
	second := collectNearToFar(t, m, r3.Vector{})
	test.That(t, first, test.ShouldResemble, second)
	test.That(t, len(first), test.ShouldEqual, 4)
}

func TestNearToFarRestartable(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap1D[int](ctx)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		test.That(t, m.Set(v, 0), test.ShouldBeNil)
	}
	seq, err := m.NearToFar(3.1)
	test.That(t, err, test.ShouldBeNil)

	// early termination then a full re-walk of the same sequence value
	for k := range seq {
		test.That(t, k, test.ShouldEqual, 3.0)
		break
	}
	var full []float64
	for k := range seq {
		full = append(full, k)
	}
	test.That(t, full, test.ShouldResemble, []float64{3, 4, 2, 5, 1})
}

func TestNearestK(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[int](ctx)
	pts := randomCloud(99, 60)
	for i, pt := range pts {
		test.That(t, m.Set(pt, i), test.ShouldBeNil)
	}
	ref := r3.Vector{X: 1, Y: 1, Z: 1}

	_, err = m.NearestK(ref, -1)
	test.That(t, err, test.ShouldNotBeNil)

	empty, err := m.NearestK(ref, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(empty), test.ShouldEqual, 0)

	k5, err := m.NearestK(ref, 5)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(k5), test.ShouldEqual, 5)

	// NearestK must be a prefix of the full near-to-far walk
	full := collectNearToFar(t, m, ref)
	for i := range k5 {
		test.That(t, k5[i].Key, test.ShouldResemble, full[i])
	}

	all, err := m.NearestK(ref, 1000)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(all), test.ShouldEqual, m.Len())
}

func TestFarthestK(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-9)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap1D[int](ctx)
	for _, v := range []float64{0, 1, 2, 10} {
		test.That(t, m.Set(v, 0), test.ShouldBeNil)
	}
	far, err := m.FarthestK(0.0, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(far), test.ShouldEqual, 2)
	test.That(t, far[0].Key, test.ShouldEqual, 10.0)
	test.That(t, far[1].Key, test.ShouldEqual, 2.0)
}

func TestNearestWithin(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-6)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[int](ctx)
	for i, pt := range []r3.Vector{
		{X: 0.5}, {X: 1.5}, {X: 3}, {Y: 10},
	} {
		test.That(t, m.Set(pt, i), test.ShouldBeNil)
	}

	_, err = m.NearestWithin(r3.Vector{}, -1)
	test.That(t, err, test.ShouldNotBeNil)

	within, err := m.NearestWithin(r3.Vector{}, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(within), test.ShouldEqual, 2)
	test.That(t, within[0].Key, test.ShouldResemble, r3.Vector{X: 0.5})
	test.That(t, within[1].Key, test.ShouldResemble, r3.Vector{X: 1.5})
}

func TestNearest(t *testing.T) {
	ctx, err := precision.DoubleEquivalenceOfEpsilon(1e-6)
	test.That(t, err, test.ShouldBeNil)

	m := NewMap3D[string](ctx)
	_, _, ok := m.Nearest(r3.Vector{})
	test.That(t, ok, test.ShouldBeFalse)

	test.That(t, m.Set(r3.Vector{X: 2}, "far"), test.ShouldBeNil)
	test.That(t, m.Set(r3.Vector{X: 1, Y: 0.5}, "near"), test.ShouldBeNil)

	key, val, ok := m.Nearest(r3.Vector{})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, key, test.ShouldResemble, r3.Vector{X: 1, Y: 0.5})
	test.That(t, val, test.ShouldEqual, "near")
}
