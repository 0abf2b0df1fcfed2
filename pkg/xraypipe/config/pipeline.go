package config

// Model-fraction bounds. Values outside are clamped, not rejected.
const (
	MinModelFraction = 0.01
	MaxModelFraction = 1.0
)

// Defaults for the march and detector parameters.
const (
	DefaultModelFraction    = 0.1
	DefaultVacuumThreshold  = 1e-2 // kg/m^3
	DefaultBoundaryNudge    = 1e-9 // m
	DefaultMaxMarchRadius   = 1e-2 // m
	DefaultDetectorDistance = 0.05 // m
)

// Pipeline carries the tunables of one pipeline instance.
type Pipeline struct {
	// FluorescenceFraction is the Monte Carlo thinning fraction of the
	// fluorescence stage, in [MinModelFraction, MaxModelFraction].
	FluorescenceFraction float64

	// ComptonFraction is the thinning fraction of the Compton stage.
	ComptonFraction float64

	// Seed seeds the per-stage random generators.
	Seed int64

	// Detector is the fixed detection point in meters.
	Detector [3]float64

	// VacuumDensityThreshold is the density below which a material is
	// treated as non-absorbing during ray marching, in kg/m^3.
	VacuumDensityThreshold float64

	// BoundaryNudge is the epsilon advance past a region boundary, in
	// meters.
	BoundaryNudge float64

	// MaxMarchRadius bounds the total travel of a marched photon from its
	// origin, in meters.
	MaxMarchRadius float64
}

// DefaultPipeline returns the default parameter set: a detector on the
// surface normal above the beam impact point.
func DefaultPipeline() Pipeline {
	return Pipeline{
		FluorescenceFraction:   DefaultModelFraction,
		ComptonFraction:        DefaultModelFraction,
		Detector:               [3]float64{0, 0, -DefaultDetectorDistance},
		VacuumDensityThreshold: DefaultVacuumThreshold,
		BoundaryNudge:          DefaultBoundaryNudge,
		MaxMarchRadius:         DefaultMaxMarchRadius,
	}
}

// Normalized clamps fractions and fills zero march parameters with
// defaults. The stage constructors apply it, so a hand-built Pipeline
// literal is as safe as a loaded one.
func (p Pipeline) Normalized() Pipeline {
	p.FluorescenceFraction = clampFraction(p.FluorescenceFraction)
	p.ComptonFraction = clampFraction(p.ComptonFraction)
	if p.VacuumDensityThreshold < 0 {
		p.VacuumDensityThreshold = DefaultVacuumThreshold
	}
	if p.BoundaryNudge <= 0 {
		p.BoundaryNudge = DefaultBoundaryNudge
	}
	if p.MaxMarchRadius <= 0 {
		p.MaxMarchRadius = DefaultMaxMarchRadius
	}
	return p
}

// PipelineFrom extracts a Pipeline from a loaded Config, filling defaults
// and clamping out-of-range values.
func PipelineFrom(c Config) Pipeline {
	def := DefaultPipeline()
	p := Pipeline{
		FluorescenceFraction:   c.Float("fluorescence_fraction", def.FluorescenceFraction),
		ComptonFraction:        c.Float("compton_fraction", def.ComptonFraction),
		Seed:                   c.Int64("seed", def.Seed),
		VacuumDensityThreshold: c.Float("vacuum_density_threshold", def.VacuumDensityThreshold),
		BoundaryNudge:          c.Float("boundary_nudge", def.BoundaryNudge),
		MaxMarchRadius:         c.Float("max_march_radius", def.MaxMarchRadius),
	}
	p.Detector = def.Detector
	if d := c.Floats("detector", nil); len(d) == 3 {
		p.Detector = [3]float64{d[0], d[1], d[2]}
	}
	return p.Normalized()
}

func clampFraction(f float64) float64 {
	if f == 0 {
		return DefaultModelFraction
	}
	if f < MinModelFraction {
		return MinModelFraction
	}
	if f > MaxModelFraction {
		return MaxModelFraction
	}
	return f
}
