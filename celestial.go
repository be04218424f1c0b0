package hohmann

import (
	"fmt"
	"strings"
)

const (
	// AU is one astronomical unit in meters.
	AU = 1.496e11
)

// CentralBody is the attracting body at the focus of every conic. It is
// immutable once created.
type CentralBody struct {
	Name string
	μ    float64
}

// NewCentralBody returns a central body of gravitational parameter μ (m^3/s^2).
func NewCentralBody(name string, μ float64) (CentralBody, error) {
	if !(μ > 0) {
		return CentralBody{}, fmt.Errorf("%w: gravitational parameter of %s must be positive (got %g)", ErrConfiguration, name, μ)
	}
	return CentralBody{name, μ}, nil
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CentralBody) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CentralBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided central body is the same.
func (c CentralBody) Equals(b CentralBody) bool {
	return c.Name == b.Name && c.μ == b.μ
}

// CentralBodyFromString returns the body from its name
func CentralBodyFromString(name string) (CentralBody, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "mars":
		return Mars, nil
	default:
		return CentralBody{}, fmt.Errorf("%w: undefined body '%s'", ErrConfiguration, name)
	}
}

/* Definitions */

// Sun is our closest star.
var Sun = CentralBody{"Sun", 1.32712440018e20}

// Earth is home.
var Earth = CentralBody{"Earth", 3.986004418e14}

// Mars is the vacation place.
var Mars = CentralBody{"Mars", 4.282837e13}
