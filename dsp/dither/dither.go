// Package dither quantizes floating-point samples to integer PCM codes,
// optionally adding dither noise before rounding.
package dither

import (
	"errors"
	"fmt"
	"strings"
)

// Type selects the probability distribution of the dither noise.
type Type int

const (
	// None rounds to the nearest code.
	None Type = iota
	// Rectangular adds uniform noise of +-amplitude LSB.
	Rectangular
	// Triangular adds triangular noise of +-amplitude LSB (TPDF).
	Triangular

	typeCount
)

var typeNames = [typeCount]string{"none", "rectangular", "triangular"}

// ErrInvalidType is returned for unknown dither types.
var ErrInvalidType = errors.New("dither: invalid dither type")

// String returns the lower-case name of the dither type.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is a known dither type.
func (t Type) Valid() bool {
	return t >= 0 && t < typeCount
}

// ParseType parses a dither type name as returned by String. Matching is
// case-insensitive and "tpdf" is accepted for Triangular.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "tpdf" {
		return Triangular, nil
	}
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidType, name)
}
