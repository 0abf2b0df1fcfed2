package phys_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// The angular weight is relative to isotropic emission, so averaging it
// over the full solid angle must give 1.
func TestBremsAngularNormalization(t *testing.T) {
	for _, tc := range []struct {
		electronKeV float64
		photonKeV   float64
	}{
		{5, 1},
		{20, 5},
		{100, 30},
		{500, 100},
	} {
		const n = 20000
		integral := 0.0
		dTheta := math.Pi / n
		for i := 0; i < n; i++ {
			theta := (float64(i) + 0.5) * dTheta
			w := phys.BremsAngular(29, math.Cos(theta), phys.FromKeV(tc.electronKeV), phys.FromKeV(tc.photonKeV))
			integral += w / (4 * math.Pi) * 2 * math.Pi * math.Sin(theta) * dTheta
		}
		assert.InDelta(t, 1.0, integral, 1e-3, "T = %v keV", tc.electronKeV)
	}
}

func TestBremsAngularForwardPeaking(t *testing.T) {
	// Relativistic electrons radiate preferentially forward.
	e := phys.FromKeV(300)
	forward := phys.BremsAngular(29, math.Cos(0.2), e, phys.FromKeV(50))
	backward := phys.BremsAngular(29, math.Cos(math.Pi-0.2), e, phys.FromKeV(50))
	assert.Greater(t, forward, backward)

	// Emission along the electron axis vanishes for the dipole shape.
	assert.InDelta(t, 0.0, phys.BremsAngular(29, 1, e, phys.FromKeV(50)), 1e-12)
}

func TestBremsAngularNonNegative(t *testing.T) {
	for cos := -1.0; cos <= 1.0; cos += 0.05 {
		w := phys.BremsAngular(26, cos, phys.FromKeV(15), phys.FromKeV(10))
		assert.GreaterOrEqual(t, w, 0.0)
		assert.False(t, math.IsNaN(w))
	}
}

// A photon carrying the electron's whole kinetic energy must not produce a
// negative effective energy.
func TestBremsAngularFullEnergyTransfer(t *testing.T) {
	e := phys.FromKeV(10)
	w := phys.BremsAngular(26, 0, e, 2*e)
	assert.False(t, math.IsNaN(w))
	assert.GreaterOrEqual(t, w, 0.0)
}
