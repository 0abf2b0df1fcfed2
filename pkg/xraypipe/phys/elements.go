package phys

import "fmt"

// Shell identifies an inner atomic shell whose ionization produces
// characteristic X-rays.
type Shell int

// Shells in order of decreasing binding energy within an element.
const (
	ShellK Shell = iota
	ShellL1
	ShellL2
	ShellL3
	numShells
)

// String returns the spectroscopic shell name.
func (s Shell) String() string {
	switch s {
	case ShellK:
		return "K"
	case ShellL1:
		return "L1"
	case ShellL2:
		return "L2"
	case ShellL3:
		return "L3"
	}
	return fmt.Sprintf("Shell(%d)", int(s))
}

// ShellFamily groups shells with the same principal quantum number.
type ShellFamily int

// Shell families.
const (
	FamilyK ShellFamily = iota
	FamilyL
)

// Family returns the family the shell belongs to.
func (s Shell) Family() ShellFamily {
	if s == ShellK {
		return FamilyK
	}
	return FamilyL
}

// Transition identifies one characteristic X-ray line of one element.
// The zero value is not a valid transition.
type Transition struct {
	// Z is the atomic number of the emitting element.
	Z int
	// Shell is the ionized inner shell the transition fills.
	Shell Shell
	// Line is the Siegbahn line name, e.g. "Ka1" or "Lb1".
	Line string
}

// IsValid reports whether the transition names an actual line.
func (t Transition) IsValid() bool { return t.Z != 0 && t.Line != "" }

// String formats the transition as "Fe Ka1".
func (t Transition) String() string {
	if d, ok := elementTable[t.Z]; ok {
		return d.symbol + " " + t.Line
	}
	return fmt.Sprintf("Z%d %s", t.Z, t.Line)
}

// Element carries the per-element quantities the pipeline needs.
type Element struct {
	// Z is the atomic number.
	Z int
	// Symbol is the chemical symbol.
	Symbol string
	// A is the standard atomic weight in g/mol.
	A float64
	// NominalDensity is the pure-element density in kg/m^3.
	NominalDensity float64
}

type lineSpec struct {
	name      string
	shell     Shell
	energyKeV float64
	weight    float64 // relative emission rate within the shell
}

type elementSpec struct {
	symbol   string
	a        float64    // g/mol
	density  float64    // kg/m^3
	edgesKeV [4]float64 // indexed by Shell; 0 means the shell is not tabulated
	lines    []lineSpec
}

// elementTable is the embedded element data set. Edge and line energies are
// in keV; line weights are relative within each shell and renormalized when
// transition tables are built.
var elementTable = map[int]elementSpec{
	6: {
		symbol: "C", a: 12.011, density: 2266,
		edgesKeV: [4]float64{0.284, 0, 0, 0},
		lines: []lineSpec{
			{"Ka1", ShellK, 0.277, 1.0},
		},
	},
	13: {
		symbol: "Al", a: 26.982, density: 2699,
		edgesKeV: [4]float64{1.560, 0.118, 0.073, 0.072},
		lines: []lineSpec{
			{"Ka1", ShellK, 1.487, 1.0},
			{"Ka2", ShellK, 1.486, 0.50},
			{"Kb1", ShellK, 1.554, 0.008},
		},
	},
	14: {
		symbol: "Si", a: 28.085, density: 2329,
		edgesKeV: [4]float64{1.839, 0.149, 0.100, 0.099},
		lines: []lineSpec{
			{"Ka1", ShellK, 1.740, 1.0},
			{"Ka2", ShellK, 1.739, 0.50},
			{"Kb1", ShellK, 1.836, 0.02},
		},
	},
	22: {
		symbol: "Ti", a: 47.867, density: 4506,
		edgesKeV: [4]float64{4.966, 0.563, 0.460, 0.454},
		lines: []lineSpec{
			{"Ka1", ShellK, 4.511, 1.0},
			{"Ka2", ShellK, 4.505, 0.50},
			{"Kb1", ShellK, 4.932, 0.15},
			{"La1", ShellL3, 0.452, 1.0},
			{"Lb1", ShellL2, 0.458, 1.0},
		},
	},
	26: {
		symbol: "Fe", a: 55.845, density: 7874,
		edgesKeV: [4]float64{7.112, 0.845, 0.720, 0.707},
		lines: []lineSpec{
			{"Ka1", ShellK, 6.404, 1.0},
			{"Ka2", ShellK, 6.391, 0.51},
			{"Kb1", ShellK, 7.058, 0.17},
			{"La1", ShellL3, 0.705, 1.0},
			{"La2", ShellL3, 0.705, 0.11},
			{"Lb1", ShellL2, 0.718, 1.0},
			{"Lb3", ShellL1, 0.792, 1.0},
		},
	},
	28: {
		symbol: "Ni", a: 58.693, density: 8908,
		edgesKeV: [4]float64{8.333, 1.009, 0.870, 0.853},
		lines: []lineSpec{
			{"Ka1", ShellK, 7.478, 1.0},
			{"Ka2", ShellK, 7.461, 0.51},
			{"Kb1", ShellK, 8.265, 0.17},
			{"La1", ShellL3, 0.852, 1.0},
			{"Lb1", ShellL2, 0.869, 1.0},
		},
	},
	29: {
		symbol: "Cu", a: 63.546, density: 8960,
		edgesKeV: [4]float64{8.979, 1.097, 0.952, 0.933},
		lines: []lineSpec{
			{"Ka1", ShellK, 8.048, 1.0},
			{"Ka2", ShellK, 8.028, 0.51},
			{"Kb1", ShellK, 8.905, 0.17},
			{"La1", ShellL3, 0.930, 1.0},
			{"Lb1", ShellL2, 0.950, 1.0},
		},
	},
	79: {
		symbol: "Au", a: 196.967, density: 19300,
		edgesKeV: [4]float64{80.725, 14.353, 13.734, 11.919},
		lines: []lineSpec{
			{"Ka1", ShellK, 68.804, 1.0},
			{"Ka2", ShellK, 66.990, 0.59},
			{"Kb1", ShellK, 77.985, 0.22},
			{"La1", ShellL3, 9.713, 1.0},
			{"La2", ShellL3, 9.628, 0.11},
			{"Lb2", ShellL3, 11.585, 0.22},
			{"Lb1", ShellL2, 11.442, 1.0},
			{"Lg1", ShellL2, 13.382, 0.21},
			{"Lb3", ShellL1, 11.610, 1.0},
			{"Lb4", ShellL1, 11.205, 0.74},
		},
	},
}

// jumpRatio approximates the absorption jump ratio of one shell.
// The K expression is the usual 125/Z + 3.5 fit; L ratios are near-constant
// across the mid-Z range.
func jumpRatio(z int, s Shell) float64 {
	switch s {
	case ShellK:
		return 125.0/float64(z) + 3.5
	case ShellL1:
		return 1.16
	case ShellL2:
		return 1.41
	case ShellL3:
		return 2.50
	}
	return 1
}

// fluorescenceYield approximates the shell fluorescence yield with the
// Z^4/(C + Z^4) fit.
func fluorescenceYield(z int, s Shell) float64 {
	z4 := math4(float64(z))
	if s == ShellK {
		return z4 / (1.12e6 + z4)
	}
	return z4 / (1.02e8 + z4)
}

func math4(x float64) float64 { return x * x * x * x }
