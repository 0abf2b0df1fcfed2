package phys

// Physical constants in SI units.
const (
	// EV is one electron volt in joules.
	EV = 1.602176634e-19

	// KeV is one kilo-electron-volt in joules.
	KeV = 1e3 * EV

	// ElectronRestEnergy is the electron rest mass energy m_e*c^2 in joules
	// (510.99895 keV).
	ElectronRestEnergy = 8.1871057769e-14

	// ClassicalElectronRadius is r_e in meters.
	ClassicalElectronRadius = 2.8179403262e-15

	// AvogadroNumber is in 1/mol.
	AvogadroNumber = 6.02214076e23
)

// ToKeV converts an energy in joules to kilo-electron-volts.
func ToKeV(j float64) float64 { return j / KeV }

// FromKeV converts an energy in kilo-electron-volts to joules.
func FromKeV(kev float64) float64 { return kev * KeV }
