// Package specimen models the piecewise-homogeneous sample geometry the
// X-ray pipeline transports photons through. The Specimen contract covers
// region lookup by point and decomposition of a straight segment into
// (material, length) pairs; the electron-trajectory engine provides it in
// production, and the package ships two analytic reference geometries used
// in tests and standalone runs.
package specimen

import (
	"math"

	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// Component is one element of a material composition.
type Component struct {
	// Z is the atomic number.
	Z int
	// Weight is the mass fraction.
	Weight float64
}

// Material is a homogeneous material: a name, a density, and a mass-fraction
// composition. Materials are treated as immutable once constructed.
type Material struct {
	// Name identifies the material in logs and reports.
	Name string
	// Density is in kg/m^3.
	Density float64
	// Composition lists the elements by mass fraction.
	Composition []Component
}

// Vacuum is the shared null material. Its density is zero, so it never
// absorbs and any region carrying it contributes nothing to path integrals.
var Vacuum = &Material{Name: "vacuum"}

// IsVacuum reports whether the material absorbs nothing. A nil material
// counts as vacuum.
func (m *Material) IsVacuum() bool {
	return m == nil || m.Density <= 0 || len(m.Composition) == 0
}

// Pure builds a single-element material at the element's nominal density.
func Pure(el phys.Element) *Material {
	return &Material{
		Name:        el.Symbol,
		Density:     el.NominalDensity,
		Composition: []Component{{Z: el.Z, Weight: 1}},
	}
}

// MassAbsorption returns the composition-weighted mass-absorption
// coefficient in m^2/kg at the given photon energy.
func (m *Material) MassAbsorption(db *phys.Database, energyJ float64) (float64, error) {
	if m.IsVacuum() {
		return 0, nil
	}
	var mac float64
	for _, c := range m.Composition {
		elMac, err := db.MassAbsorption(c.Z, energyJ)
		if err != nil {
			return 0, err
		}
		mac += c.Weight * elMac
	}
	return mac, nil
}

// LinearAbsorption returns the linear attenuation coefficient in 1/m.
func (m *Material) LinearAbsorption(db *phys.Database, energyJ float64) (float64, error) {
	mac, err := m.MassAbsorption(db, energyJ)
	if err != nil {
		return 0, err
	}
	return mac * m.Density, nil
}

// MeanFreePath returns the photoelectric mean free path in meters, +Inf for
// vacuum.
func (m *Material) MeanFreePath(db *phys.Database, energyJ float64) (float64, error) {
	mu, err := m.LinearAbsorption(db, energyJ)
	if err != nil {
		return 0, err
	}
	if mu <= 0 {
		return math.Inf(1), nil
	}
	return 1 / mu, nil
}

// ElectronsPerKg returns the electron density of the material per unit mass.
func (m *Material) ElectronsPerKg(db *phys.Database) (float64, error) {
	if m.IsVacuum() {
		return 0, nil
	}
	var n float64
	for _, c := range m.Composition {
		el, err := db.Element(c.Z)
		if err != nil {
			return 0, err
		}
		n += c.Weight * float64(el.Z) / (el.A * 1e-3) * phys.AvogadroNumber
	}
	return n, nil
}

// ComptonMeanFreePath returns the incoherent-scattering mean free path in
// meters, from the Klein-Nishina total cross section and the material's
// electron density. +Inf for vacuum.
func (m *Material) ComptonMeanFreePath(db *phys.Database, energyJ float64) (float64, error) {
	nPerKg, err := m.ElectronsPerKg(db)
	if err != nil {
		return 0, err
	}
	mu := nPerKg * m.Density * phys.KleinNishinaTotal(energyJ)
	if mu <= 0 {
		return math.Inf(1), nil
	}
	return 1 / mu, nil
}

// Region is a connected volume of one material.
type Region interface {
	// Material returns the region's material; Vacuum for empty space.
	Material() *Material
}

// Segment is one homogeneous piece of a straight path through a specimen.
type Segment struct {
	// Material is the material traversed.
	Material *Material
	// Length is the traversed length in meters.
	Length float64
}

// Specimen is the geometry contract the pipeline stages consume.
type Specimen interface {
	// RegionAt returns the region containing the point. Points outside all
	// modeled volumes resolve to a vacuum region, never nil.
	RegionAt(p geom.Vec3) Region

	// Segments decomposes the straight path from one point to another into
	// ordered (material, length) pairs. The lengths sum to the distance
	// between the points.
	Segments(from, to geom.Vec3) []Segment
}

// homogeneousRegion is the Region implementation shared by the reference
// geometries.
type homogeneousRegion struct {
	mat *Material
}

func (r *homogeneousRegion) Material() *Material { return r.mat }
