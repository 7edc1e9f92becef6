package precision

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDoubleEquivalenceOfEpsilon(t *testing.T) {
	_, err := DoubleEquivalenceOfEpsilon(-1e-9)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = DoubleEquivalenceOfEpsilon(math.NaN())
	test.That(t, err, test.ShouldNotBeNil)
	_, err = DoubleEquivalenceOfEpsilon(math.Inf(1))
	test.That(t, err, test.ShouldNotBeNil)

	ctx, err := DoubleEquivalenceOfEpsilon(1e-6)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ctx.Epsilon(), test.ShouldEqual, 1e-6)
}

func TestCompare(t *testing.T) {
	ctx, err := DoubleEquivalenceOfEpsilon(0.1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, ctx.Compare(1.0, 1.05), test.ShouldEqual, 0)
	test.That(t, ctx.Compare(1.0, 1.1), test.ShouldEqual, 0) // boundary inclusive
	test.That(t, ctx.Compare(1.0, 1.11), test.ShouldEqual, -1)
	test.That(t, ctx.Compare(1.11, 1.0), test.ShouldEqual, 1)

	exact := Exact()
	test.That(t, exact.Compare(1.0, 1.0), test.ShouldEqual, 0)
	test.That(t, exact.Compare(1.0, math.Nextafter(1.0, 2.0)), test.ShouldEqual, -1)
}

func TestOneSided(t *testing.T) {
	ctx, err := DoubleEquivalenceOfEpsilon(0.1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, ctx.Gte(0.95, 1.0), test.ShouldBeTrue)
	test.That(t, ctx.Gte(0.85, 1.0), test.ShouldBeFalse)
	test.That(t, ctx.Lte(1.05, 1.0), test.ShouldBeTrue)
	test.That(t, ctx.Lte(1.15, 1.0), test.ShouldBeFalse)
	test.That(t, ctx.Gt(1.05, 1.0), test.ShouldBeFalse)
	test.That(t, ctx.Gt(1.15, 1.0), test.ShouldBeTrue)
	test.That(t, ctx.Lt(0.95, 1.0), test.ShouldBeFalse)
	test.That(t, ctx.Lt(0.85, 1.0), test.ShouldBeTrue)
}

func TestSign(t *testing.T) {
	ctx, err := DoubleEquivalenceOfEpsilon(1e-3)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, ctx.Sign(0), test.ShouldEqual, 0)
	test.That(t, ctx.Sign(5e-4), test.ShouldEqual, 0)
	test.That(t, ctx.Sign(-5e-4), test.ShouldEqual, 0)
	test.That(t, ctx.Sign(2e-3), test.ShouldEqual, 1)
	test.That(t, ctx.Sign(-2e-3), test.ShouldEqual, -1)
	test.That(t, ctx.EqZero(1e-3), test.ShouldBeTrue)
}

func TestNaNNeverEqual(t *testing.T) {
	ctx, err := DoubleEquivalenceOfEpsilon(1.0)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, ctx.Eq(math.NaN(), math.NaN()), test.ShouldBeFalse)
	test.That(t, ctx.Eq(math.NaN(), 0), test.ShouldBeFalse)
	test.That(t, ctx.EqZero(math.NaN()), test.ShouldBeFalse)
}
