package phys_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

func TestMassAbsorptionEdgeJump(t *testing.T) {
	db := phys.NewDatabase()

	// Fe K edge at 7.112 keV: the coefficient jumps by the K jump ratio.
	below, err := db.MassAbsorption(26, phys.FromKeV(7.0))
	require.NoError(t, err)
	above, err := db.MassAbsorption(26, phys.FromKeV(7.2))
	require.NoError(t, err)

	assert.Greater(t, above, below)
	ratio := above / below
	assert.Greater(t, ratio, 5.0)
	assert.Less(t, ratio, 12.0)
}

func TestMassAbsorptionDecreasesWithEnergy(t *testing.T) {
	db := phys.NewDatabase()

	// Away from edges the coefficient falls off as E^-3.
	at10, err := db.MassAbsorption(29, phys.FromKeV(10))
	require.NoError(t, err)
	at20, err := db.MassAbsorption(29, phys.FromKeV(20))
	require.NoError(t, err)

	assert.Greater(t, at10, at20)
	assert.InDelta(t, 8.0, at10/at20, 0.1)
}

func TestMassAbsorptionCalibration(t *testing.T) {
	db := phys.NewDatabase()

	// Fe just above its K edge lands near the tabulated 400 cm^2/g
	// (40 m^2/kg).
	mac, err := db.MassAbsorption(26, phys.FromKeV(7.2))
	require.NoError(t, err)
	assert.InDelta(t, 40.0, mac, 10.0)
}

func TestMassAbsorptionErrors(t *testing.T) {
	db := phys.NewDatabase()

	_, err := db.MassAbsorption(999, phys.FromKeV(10))
	assert.ErrorIs(t, err, phys.ErrUnknownElement)

	_, err = db.MassAbsorption(26, 0)
	assert.ErrorIs(t, err, phys.ErrNonPositiveEnergy)

	_, err = db.MassAbsorption(26, -phys.FromKeV(1))
	assert.ErrorIs(t, err, phys.ErrNonPositiveEnergy)
}
