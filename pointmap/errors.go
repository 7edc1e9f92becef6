package pointmap

import "github.com/pkg/errors"

func newNonFinitePointError(pt any) error {
	return errors.Errorf("point coordinates must be finite, got %v", pt)
}

func newNegativeCountError(k int) error {
	return errors.Errorf("requested entry count must be non-negative, got %d", k)
}

func newNegativeRadiusError(radius float64) error {
	return errors.Errorf("search radius must be non-negative, got %v", radius)
}
