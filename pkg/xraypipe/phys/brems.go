package phys

import "math"

// AngularEvaluator is the Bremsstrahlung angular-distribution contract the
// pipeline stages consume. cosTheta is the cosine of the angle between the
// emitting electron's direction and the outgoing photon direction; energies
// are in joules. The returned weight is normalized over solid angle (1/sr
// relative to the isotropic 1/(4 pi), so an isotropic emitter returns 1).
type AngularEvaluator func(z int, cosTheta, electronEnergyJ, photonEnergyJ float64) float64

// BremsAngular evaluates the relativistic dipole angular distribution of
// Bremsstrahlung emission,
//
//	f(theta) ~ sin^2(theta) / (1 - beta cos theta)^4
//
// normalized so the integral over solid angle is 1, then rescaled by 4 pi so
// the weight is relative to isotropic emission. beta is taken at the mean
// electron energy over the emission, T - E_photon/2.
func BremsAngular(z int, cosTheta, electronEnergyJ, photonEnergyJ float64) float64 {
	t := electronEnergyJ - 0.5*photonEnergyJ
	if t < 0 {
		t = 0
	}
	gamma := 1 + t/ElectronRestEnergy
	beta := math.Sqrt(1 - 1/(gamma*gamma))

	sin2 := 1 - cosTheta*cosTheta
	if beta < 1e-6 {
		// Non-relativistic dipole limit.
		return 4 * math.Pi * 3 / (8 * math.Pi) * sin2
	}

	d := 1 - beta*cosTheta
	f := sin2 / (d * d * d * d)
	return 4 * math.Pi * f / (2 * math.Pi * dipoleNorm(beta))
}

// dipoleNorm is the closed-form value of
// integral_{-1}^{1} (1-u^2)/(1-beta u)^4 du.
func dipoleNorm(beta float64) float64 {
	prim := func(t float64) float64 {
		return 1/t - 1/(t*t) + (1-beta*beta)/(3*t*t*t)
	}
	return (prim(1+beta) - prim(1-beta)) / (beta * beta * beta)
}
