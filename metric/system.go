package metric

import (
	"fmt"
	"strings"

	"github.com/hupe1980/dimgo/symbolic"
)

// System is a named metric system that assigns a canonical unit symbol to
// every base dimension.
type System struct {
	name  string
	bases map[string]string
}

var (
	// MKS is the meter-kilogram-second system.
	MKS = System{
		name: "mks",
		bases: map[string]string{
			Length:            "m",
			Mass:              "kg",
			Time:              "s",
			Current:           "A",
			Temperature:       "K",
			Amount:            "mol",
			LuminousIntensity: "cd",
			PlaneAngle:        "rad",
			SolidAngle:        "sr",
		},
	}

	// CGS is the centimeter-gram-second system.
	CGS = System{
		name: "cgs",
		bases: map[string]string{
			Length:            "cm",
			Mass:              "g",
			Time:              "s",
			Current:           "A",
			Temperature:       "K",
			Amount:            "mol",
			LuminousIntensity: "cd",
			PlaneAngle:        "rad",
			SolidAngle:        "sr",
		},
	}
)

// Systems returns the known metric systems.
func Systems() []System {
	return []System{MKS, CGS}
}

// SystemNamed returns the system with the given name, ignoring case.
func SystemNamed(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case MKS.name:
		return MKS, nil
	case CGS.name:
		return CGS, nil
	}
	return System{}, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
}

// Name returns the system name.
func (s System) Name() string {
	return s.name
}

func (s System) String() string {
	return s.name
}

// BaseUnit returns the canonical unit symbol for one base dimension.
func (s System) BaseUnit(dimension string) (string, bool) {
	symbol, ok := s.bases[dimension]
	return symbol, ok
}

// UnitFor composes the system's default unit for a dimension vector by
// raising each base unit symbol to the vector's exponent. For the dimension
// vector of energy it yields "kg m^2 s^-2" in mks and "cm^2 g s^-2" in cgs.
func (s System) UnitFor(dims Dimensions) Unit {
	terms := make([]symbolic.Term, 0, len(BaseDimensions))
	for _, d := range BaseDimensions {
		exp := dims.Exponent(d)
		if exp.IsZero() {
			continue
		}
		terms = append(terms, symbolic.NewTerm(s.bases[d], exp))
	}
	u, err := FromExpression(symbolic.FromTerms(terms...))
	if err != nil {
		panic(fmt.Sprintf("metric: base unit table for %s is inconsistent: %v", s.name, err))
	}
	return u
}

// Quantity resolves a named quantity from the catalog, following alias and
// formula definitions. Underscores in the name are treated as spaces.
func (s System) Quantity(name string) (Quantity, error) {
	return s.resolveQuantity(normalizeQuantity(name), 0)
}

// UnitOf returns the system's default unit for a named quantity, such as
// "J" for energy in mks and "erg" in cgs.
func (s System) UnitOf(name string) (Unit, error) {
	q, err := s.Quantity(name)
	if err != nil {
		return Unit{}, err
	}
	return q.Unit, nil
}

// DimensionsOf returns the dimension vector of a named quantity in this
// system.
func (s System) DimensionsOf(name string) (Dimensions, error) {
	q, err := s.Quantity(name)
	if err != nil {
		return Dimensions{}, err
	}
	return q.Dims, nil
}
