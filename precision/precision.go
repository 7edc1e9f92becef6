// Package precision provides epsilon-based floating point equivalence used by
// every comparison, lookup and tree split in this module.
//
// Two values are equivalent when they are within epsilon of each other. Note
// that this relation is not transitive: a ~ b and b ~ c does not imply a ~ c.
// Containers built on top of a Context document how they cope with this.
package precision

import (
	"math"

	"github.com/pkg/errors"
)

// Context determines equality of floating point values to within a fixed,
// non-negative epsilon. The zero value compares exactly. Contexts are
// immutable and safe to share by copy.
type Context struct {
	eps float64
}

// DoubleEquivalenceOfEpsilon returns a Context that considers values within
// eps of each other equal. The epsilon must be finite and non-negative.
func DoubleEquivalenceOfEpsilon(eps float64) (Context, error) {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return Context{}, errors.Errorf("invalid epsilon: must be finite and non-negative, got %v", eps)
	}
	return Context{eps: eps}, nil
}

// Exact returns a Context with a zero epsilon, i.e. exact comparison.
func Exact() Context {
	return Context{}
}

// Epsilon returns the tolerance used by this context.
func (c Context) Epsilon() float64 {
	return c.eps
}

// Compare returns 0 when |a-b| <= epsilon, otherwise the sign of a-b.
// The result with NaN arguments is unspecified; NaN is never equal to
// anything, including itself.
func (c Context) Compare(a, b float64) int {
	if math.Abs(a-b) <= c.eps {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

// Eq returns true if a and b are equivalent under this context.
func (c Context) Eq(a, b float64) bool {
	return math.Abs(a-b) <= c.eps
}

// EqZero returns true if a is equivalent to zero.
func (c Context) EqZero(a float64) bool {
	return math.Abs(a) <= c.eps
}

// Sign returns 0 if a is equivalent to zero, otherwise the sign of a.
func (c Context) Sign(a float64) int {
	return c.Compare(a, 0)
}

// Lt returns true if a is strictly less than b, i.e. a < b - epsilon.
func (c Context) Lt(a, b float64) bool {
	return c.Compare(a, b) < 0
}

// Lte returns true if a is less than or equivalent to b, i.e. a <= b + epsilon.
func (c Context) Lte(a, b float64) bool {
	return c.Compare(a, b) <= 0
}

// Gt returns true if a is strictly greater than b, i.e. a > b + epsilon.
func (c Context) Gt(a, b float64) bool {
	return c.Compare(a, b) > 0
}

// Gte returns true if a is greater than or equivalent to b, i.e. a >= b - epsilon.
func (c Context) Gte(a, b float64) bool {
	return c.Compare(a, b) >= 0
}
