package phys

// macConstant calibrates the photoelectric cross-section fit so that Fe just
// above its K edge lands near the tabulated 400 cm^2/g.
const macConstant = 18.0

// MassAbsorption returns the mass-absorption coefficient of element z at the
// given photon energy, in m^2/kg. The model is the classic Z^4/(A E^3)
// photoelectric fit with a discontinuity at every tabulated edge: below an
// edge the coefficient drops by that shell's jump ratio.
func (db *Database) MassAbsorption(z int, energyJ float64) (float64, error) {
	if energyJ <= 0 {
		return 0, &PhysicsError{Z: z, EnergyJ: energyJ, Op: "mac", Err: ErrNonPositiveEnergy}
	}
	d, ok := elementTable[z]
	if !ok {
		return 0, &PhysicsError{Z: z, EnergyJ: energyJ, Op: "mac", Err: ErrUnknownElement}
	}

	eKeV := ToKeV(energyJ)
	mac := macConstant * math4(float64(z)) / (d.a * eKeV * eKeV * eKeV) // cm^2/g
	for s := ShellK; s < numShells; s++ {
		if edge := d.edgesKeV[s]; edge > 0 && eKeV < edge {
			mac /= jumpRatio(z, s)
		}
	}
	return mac * 0.1, nil // cm^2/g -> m^2/kg
}
