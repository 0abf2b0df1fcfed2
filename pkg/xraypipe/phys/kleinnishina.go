package phys

import "math"

// kappa below which the Thomson limit is used to avoid catastrophic
// cancellation in the closed-form total cross section.
const thomsonLimit = 1e-4

// ComptonShift returns the photon energy after Compton scattering through
// the angle whose cosine is cosTheta, for an incident energy in joules.
//
//	E' = E / (1 + (E/mec2)(1 - cos theta))
func ComptonShift(energyJ, cosTheta float64) float64 {
	k := energyJ / ElectronRestEnergy
	return energyJ / (1 + k*(1-cosTheta))
}

// KleinNishinaTotal returns the total Klein-Nishina cross section per
// electron in m^2 for the given photon energy.
func KleinNishinaTotal(energyJ float64) float64 {
	k := energyJ / ElectronRestEnergy
	re2 := ClassicalElectronRadius * ClassicalElectronRadius
	if k < thomsonLimit {
		return 8 * math.Pi / 3 * re2
	}
	k2 := k * k
	ln := math.Log(1 + 2*k)
	term := (1+k)/k2*(2*(1+k)/(1+2*k)-ln/k) + ln/(2*k) - (1+3*k)/((1+2*k)*(1+2*k))
	return 2 * math.Pi * re2 * term
}

// KleinNishinaDifferential returns the Klein-Nishina differential cross
// section per electron in m^2/sr at the scattering angle whose cosine is
// cosTheta.
func KleinNishinaDifferential(energyJ, cosTheta float64) float64 {
	k := energyJ / ElectronRestEnergy
	p := 1 / (1 + k*(1-cosTheta)) // E'/E
	re2 := ClassicalElectronRadius * ClassicalElectronRadius
	sin2 := 1 - cosTheta*cosTheta
	return 0.5 * re2 * p * p * (p + 1/p - sin2)
}

// KleinNishinaAngular returns the Klein-Nishina angular distribution at the
// scattering angle whose cosine is cosTheta, normalized so its integral over
// the full solid angle is 1. Units are 1/sr.
func KleinNishinaAngular(energyJ, cosTheta float64) float64 {
	return KleinNishinaDifferential(energyJ, cosTheta) / KleinNishinaTotal(energyJ)
}
