package metric

import (
	"fmt"
	"strings"

	"github.com/hupe1980/dimgo/symbolic"
)

// systemDef is the dimension vector and default unit of a quantity within
// one metric system.
type systemDef struct {
	dims string
	unit string
}

// quantityDef pairs the mks and cgs definitions of a quantity. The cgs
// electromagnetic entries keep the Gaussian dimension formulas even though
// conversions always run through the reference table's vectors.
type quantityDef struct {
	mks systemDef
	cgs systemDef
}

// quantityDefs is the catalog of concretely defined physical quantities.
var quantityDefs = map[string]quantityDef{
	"amount":             {mks: systemDef{"N", "mol"}, cgs: systemDef{"N", "mol"}},
	"capacitance":        {mks: systemDef{"(T^2 I)^2 / (M L^2)", "F"}, cgs: systemDef{"L", "cm"}},
	"charge":             {mks: systemDef{"I T", "C"}, cgs: systemDef{"(M^1/2 L^3/2) / T", "statC"}},
	"conductance":        {mks: systemDef{"(T^3 I^2) / (M L^2)", "S"}, cgs: systemDef{"L / T", "cm / s"}},
	"current":            {mks: systemDef{"I", "A"}, cgs: systemDef{"(M^1/2 L^3/2) / T^2", "statA"}},
	"displacement":       {mks: systemDef{"I T / L^2", "C / m^2"}, cgs: systemDef{"M^1/2 / (L^1/2 T)", "statC / m^2"}},
	"dosage":             {mks: systemDef{"L^2 / T^2", "Gy"}, cgs: systemDef{"L^2 / T^2", "erg / g"}},
	"energy":             {mks: systemDef{"(M L^2) / T^2", "J"}, cgs: systemDef{"(M L^2) / T^2", "erg"}},
	"force":              {mks: systemDef{"(M L) / T^2", "N"}, cgs: systemDef{"(M L) / T^2", "dyn"}},
	"frequency":          {mks: systemDef{"1 / T", "Hz"}, cgs: systemDef{"1 / T", "Hz"}},
	"identity":           {mks: systemDef{"1", "1"}, cgs: systemDef{"1", "1"}},
	"illuminance":        {mks: systemDef{"J O / L^2", "cd sr / m^2"}, cgs: systemDef{"J O / L^2", "cd sr / cm^2"}},
	"impedance":          {mks: systemDef{"(M L^2) / (T^3 I^2)", "ohm"}, cgs: systemDef{"T / L", "s / cm"}},
	"inductance":         {mks: systemDef{"(M L^2) / (I T)^2", "H"}, cgs: systemDef{"T^2 / L", "s^2 / cm"}},
	"length":             {mks: systemDef{"L", "m"}, cgs: systemDef{"L", "cm"}},
	"luminous flux":      {mks: systemDef{"J O", "cd sr"}, cgs: systemDef{"J O", "cd sr"}},
	"luminous intensity": {mks: systemDef{"J", "cd"}, cgs: systemDef{"J", "cd"}},
	"magnetic flux":      {mks: systemDef{"(M L^2) / (T^2 I)", "Wb"}, cgs: systemDef{"(M^1/2 L^3/2) / T", "Mx"}},
	"magnetic induction": {mks: systemDef{"M / (T^2 I)", "T"}, cgs: systemDef{"M^1/2 / (L^1/2 T)", "G"}},
	"magnetic intensity": {mks: systemDef{"I / L", "A / m"}, cgs: systemDef{"M^1/2 / (L^1/2 T)", "Oe"}},
	"magnetic moment":    {mks: systemDef{"I L^2", "A m^2"}, cgs: systemDef{"(M^1/2 L^5/2) / T", "Oe cm^3"}},
	"mass":               {mks: systemDef{"M", "kg"}, cgs: systemDef{"M", "g"}},
	"momentum":           {mks: systemDef{"(M L) / T", "kg m / s"}, cgs: systemDef{"(M L) / T", "g cm / s"}},
	"permeability":       {mks: systemDef{"(M L) / (I T)^2", "H / m"}, cgs: systemDef{"1", "1"}},
	"permittivity":       {mks: systemDef{"T^4 I^2 / (M L^3)", "F / m"}, cgs: systemDef{"1", "1"}},
	"plane angle":        {mks: systemDef{"A", "rad"}, cgs: systemDef{"A", "rad"}},
	"potential":          {mks: systemDef{"(M L^2) / (T^3 I)", "V"}, cgs: systemDef{"(M^1/2 L^1/2) / T", "statV"}},
	"power":              {mks: systemDef{"M L^2 / T^3", "W"}, cgs: systemDef{"M L^2 / T^3", "erg / s"}},
	"pressure":           {mks: systemDef{"M / (L T^2)", "Pa"}, cgs: systemDef{"M / (L T^2)", "dyn / cm^2"}},
	"radioactivity":      {mks: systemDef{"1 / T", "Bq"}, cgs: systemDef{"1 / T", "Ci"}},
	"reluctance":         {mks: systemDef{"(I T)^2 / (M L^2)", "A / Wb"}, cgs: systemDef{"1 / L", "1 / cm"}},
	"solid angle":        {mks: systemDef{"O", "sr"}, cgs: systemDef{"O", "sr"}},
	"temperature":        {mks: systemDef{"H", "K"}, cgs: systemDef{"H", "K"}},
	"time":               {mks: systemDef{"T", "s"}, cgs: systemDef{"T", "s"}},
	"vector potential":   {mks: systemDef{"(M L) / (T^2 I)", "Wb / m"}, cgs: systemDef{"(M^1/2 L^1/2) / T", "G cm"}},
	"viscosity":          {mks: systemDef{"M / (L T)", "kg / (m s)"}, cgs: systemDef{"M / (L T)", "P"}},
}

// quantityFormulas defines quantities algebraically in terms of other
// catalog entries. A value that is itself a catalog key is an alias.
// Multi-word references inside formulas use underscores.
var quantityFormulas = map[string]string{
	"acceleration":          "velocity / time",
	"area":                  "length^2",
	"charge density":        "charge / volume",
	"conductivity":          "conductance / length",
	"current density":       "current / area",
	"electric charge":       "charge",
	"electric field":        "potential / length",
	"electromotance":        "potential",
	"energy density":        "energy / volume",
	"fluence":               "particle fluence",
	"flux":                  "particle flux",
	"induction":             "magnetic induction",
	"integral flux":         "flux * energy",
	"magnetic field":        "magnetic induction",
	"magnetization":         "magnetic intensity",
	"magnetomotance":        "current",
	"mass density":          "mass / volume",
	"mass number":           "number",
	"momentum density":      "momentum / volume",
	"number":                "identity",
	"number density":        "1 / volume",
	"particle distribution": "1 / (length * velocity)^3",
	"particle fluence":      "number / (area * solid_angle * energy / mass_number)",
	"particle flux":         "fluence / time",
	"polarization":          "charge / area",
	"power density":         "power / volume",
	"rate":                  "frequency",
	"ratio":                 "identity",
	"resistance":            "impedance",
	"resistivity":           "resistance * length",
	"speed":                 "velocity",
	"thermal conductivity":  "power / (length * temperature)",
	"velocity":              "length / time",
	"volume":                "length^3",
	"vorticity":             "frequency",
	"wavenumber":            "1 / length",
	"work":                  "energy",
}

// maxQuantityDepth bounds alias and formula chains in the catalog.
const maxQuantityDepth = 16

// Quantity is a catalog entry resolved within one metric system.
type Quantity struct {
	Name string
	Unit Unit
	Dims Dimensions
}

// normalizeQuantity maps a caller-supplied quantity name onto catalog form.
func normalizeQuantity(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.ReplaceAll(name, "_", " ")
}

func (s System) resolveQuantity(name string, depth int) (Quantity, error) {
	if depth > maxQuantityDepth {
		return Quantity{}, fmt.Errorf("metric: quantity definition for %q is circular", name)
	}
	if def, ok := quantityDefs[name]; ok {
		return s.resolveDef(name, def)
	}
	formula, ok := quantityFormulas[name]
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, name)
	}
	if _, isAlias := quantityDefs[formula]; isAlias {
		return s.resolveQuantity(formula, depth+1)
	}
	if _, isAlias := quantityFormulas[formula]; isAlias {
		return s.resolveQuantity(formula, depth+1)
	}
	return s.resolveFormula(name, formula, depth)
}

func (s System) resolveDef(name string, def quantityDef) (Quantity, error) {
	chosen := def.mks
	if s.name == CGS.name {
		chosen = def.cgs
	}
	dims, err := ParseDimensions(chosen.dims)
	if err != nil {
		return Quantity{}, fmt.Errorf("metric: bad dimensions for quantity %q: %w", name, err)
	}
	unit, err := Parse(chosen.unit)
	if err != nil {
		return Quantity{}, fmt.Errorf("metric: bad unit for quantity %q: %w", name, err)
	}
	return Quantity{Name: name, Unit: unit, Dims: dims}, nil
}

// resolveFormula composes a quantity from the entries its formula names,
// multiplying their dimension vectors and default units term by term.
func (s System) resolveFormula(name, formula string, depth int) (Quantity, error) {
	expr, err := symbolic.Parse(formula)
	if err != nil {
		return Quantity{}, fmt.Errorf("metric: bad formula for quantity %q: %w", name, err)
	}
	dims := Dimensionless
	unitExpr := symbolic.Identity()
	for _, term := range expr.Terms() {
		component, err := s.resolveQuantity(normalizeQuantity(term.Symbol), depth+1)
		if err != nil {
			return Quantity{}, err
		}
		dims = dims.Times(component.Dims.Pow(term.Exponent))
		unitExpr = unitExpr.Times(component.Unit.Expression().Pow(term.Exponent))
	}
	unit, err := FromExpression(unitExpr)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Name: name, Unit: unit, Dims: dims}, nil
}
