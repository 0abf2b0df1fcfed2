package xraypipe

import (
	"context"
	"math/rand"

	"github.com/probelab/xraypipe/pkg/xraypipe/config"
	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/observability"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

// FluorescenceStage consumes upstream photon events, Monte-Carlo samples a
// subset of them, marches each sampled photon to an absorption point, and
// emits the characteristic photons of the re-excited atom there.
//
// Sampling is re-weighted importance sampling: with model fraction f, a
// photon is processed with probability f and its intensity scaled by 1/f,
// keeping the expected emitted intensity unbiased at the cost of higher
// variance.
type FluorescenceStage struct {
	*Stage

	db       *phys.Database
	spec     specimen.Specimen
	params   marchParams
	fraction float64
	rng      *rand.Rand
	angular  phys.AngularEvaluator

	angularStat phys.RunningStat

	// region cache for consecutive events sharing one position
	cachedPos    geom.Vec3
	cachedRegion specimen.Region
	haveCached   bool
}

// NewFluorescenceStage creates a fluorescence stage over the given physics
// database and specimen, configured by cfg. The stage owns a private random
// generator derived from cfg.Seed.
func NewFluorescenceStage(db *phys.Database, sp specimen.Specimen, cfg config.Pipeline, opts ...StageOption) *FluorescenceStage {
	cfg = cfg.Normalized()
	f := &FluorescenceStage{
		Stage: NewStage("fluorescence", opts...),
		db:    db,
		spec:  sp,
		params: marchParams{
			vacuumThreshold: cfg.VacuumDensityThreshold,
			nudge:           cfg.BoundaryNudge,
			maxRadius:       cfg.MaxMarchRadius,
		},
		rng:     rand.New(rand.NewSource(cfg.Seed + 1)),
		angular: phys.BremsAngular,
	}
	f.SetModelFraction(cfg.FluorescenceFraction)
	return f
}

// ModelFraction returns the Monte Carlo thinning fraction.
func (f *FluorescenceStage) ModelFraction() float64 { return f.fraction }

// SetModelFraction sets the thinning fraction, clamping it to the legal
// range rather than rejecting it.
func (f *FluorescenceStage) SetModelFraction(v float64) {
	f.fraction = phys.Clamp(v, config.MinModelFraction, config.MaxModelFraction)
}

// SetAngularEvaluator replaces the continuum angular-distribution
// evaluator. Intended for tests; the default is phys.BremsAngular.
func (f *FluorescenceStage) SetAngularEvaluator(eval phys.AngularEvaluator) {
	f.angular = eval
}

// AngularWeightStat returns the running statistic of the continuum
// angular-weight factor, a variance diagnostic for the importance sampling.
func (f *FluorescenceStage) AngularWeightStat() *phys.RunningStat {
	return &f.angularStat
}

// OnNotify implements Listener. Lifecycle notifications are forwarded
// unchanged; a new-events notification runs one fluorescence cycle.
func (f *FluorescenceStage) OnNotify(n Notification, src *Stage) {
	if n.Kind != NotifyNewEvents {
		f.NotifyListeners(n)
		return
	}

	f.Reset()
	f.haveCached = false

	for i := src.EventCount() - 1; i >= 0; i-- {
		if err := f.process(src.Event(i)); err != nil {
			observability.LogEventError(f.logger, f.name, i, err)
			f.metrics.RecordEventError(context.Background(), f.name)
		}
	}

	observability.LogCycleComplete(f.logger, f.name, src.EventCount(), f.EventCount())
	f.metrics.RecordCycle(context.Background(), f.name, src.EventCount(), f.EventCount())
	f.NotifyListeners(Notification{Kind: NotifyNewEvents})
}

// process runs the fluorescence physics for one upstream event. A returned
// error affects only this event; siblings in the cycle are untouched.
func (f *FluorescenceStage) process(ev *Event) error {
	// Monte Carlo thinning: skip with probability 1-f, rescale by 1/f.
	if f.rng.Float64() >= f.fraction {
		return nil
	}
	scaledIntensity := ev.Intensity() / f.fraction

	region := f.regionAt(ev.Position())
	dir := geom.IsotropicDirection(f.rng)

	scale := 1.0
	if ev.Kind() == EventContinuum {
		cosTheta := geom.CosAngleBetween(ev.ElectronDirection(), dir)
		scale = f.angular(ev.SourceElement(), cosTheta, ev.ElectronEnergy(), ev.Energy())
		f.angularStat.Add(scale)
	}

	res, err := march(f.spec, f.db, f.params, ev.Position(), region, dir, ev.Energy(),
		func(m *specimen.Material) (float64, error) { return m.MeanFreePath(f.db, ev.Energy()) },
		f.rng)
	f.metrics.RecordMarchSteps(context.Background(), f.name, res.steps)
	if err != nil {
		return err
	}
	if !res.absorbed {
		observability.LogMarchAborted(f.logger, f.name, f.params.maxRadius)
		return nil
	}

	z, err := f.selectElement(res.region.Material(), ev.Energy())
	if err != nil {
		return err
	}
	shell, ionized, err := f.selectShell(z, ev.Energy())
	if err != nil {
		return err
	}
	if !ionized {
		return nil
	}

	lines, err := f.db.Transitions(z, shell.Shell)
	if err != nil {
		return err
	}
	for _, line := range lines {
		weight := line.Probability * scale * scaledIntensity
		f.AddCharacteristicXRay(res.pos, line.EnergyJ, weight, weight, line.Transition)
	}
	return nil
}

// regionAt looks up the region at p, reusing the previous lookup when
// consecutive events share one position.
func (f *FluorescenceStage) regionAt(p geom.Vec3) specimen.Region {
	if f.haveCached && p == f.cachedPos {
		return f.cachedRegion
	}
	f.cachedPos = p
	f.cachedRegion = f.spec.RegionAt(p)
	f.haveCached = true
	return f.cachedRegion
}

// selectElement picks the absorbing element of the material, weighting each
// component by its mass fraction times its mass-absorption coefficient at
// the photon energy.
func (f *FluorescenceStage) selectElement(mat *specimen.Material, energyJ float64) (int, error) {
	weights := make([]float64, len(mat.Composition))
	for i, c := range mat.Composition {
		mac, err := f.db.MassAbsorption(c.Z, energyJ)
		if err != nil {
			return 0, err
		}
		weights[i] = c.Weight * mac
	}
	total := phys.Sum(weights)
	if total <= 0 {
		return 0, &phys.PhysicsError{EnergyJ: energyJ, Op: "element selection", Err: phys.ErrNoShellData}
	}

	choice := f.rng.Float64() * total
	accum := 0.0
	for i, w := range weights {
		accum += w
		if choice < accum {
			return mat.Composition[i].Z, nil
		}
	}
	return mat.Composition[len(mat.Composition)-1].Z, nil
}

// selectShell picks the ionized shell of element z by sequential rejection:
// shells are tried from the highest binding energy below the photon energy
// downward, each accepted with its ionization fraction times the
// probability remaining after rejecting the higher shells of its family.
// The full acceptance budget is accounted before sampling so a tabulated
// data quirk (summed probabilities over 1) is reported whether or not a
// shell is accepted.
func (f *FluorescenceStage) selectShell(z int, energyJ float64) (phys.ShellData, bool, error) {
	shells, err := f.db.Shells(z)
	if err != nil {
		return phys.ShellData{}, false, err
	}

	remaining := map[phys.ShellFamily]float64{}
	eligible := make([]int, 0, len(shells))
	probs := make([]float64, 0, len(shells))
	probSum := 0.0
	for i, sd := range shells {
		if sd.EdgeJ > energyJ {
			continue
		}
		fam := sd.Shell.Family()
		rem, ok := remaining[fam]
		if !ok {
			rem = 1
		}
		p := sd.IonizationFraction * rem
		probSum += p
		eligible = append(eligible, i)
		probs = append(probs, p)
		remaining[fam] = rem * (1 - sd.IonizationFraction)
	}
	if probSum > 1 {
		observability.LogShellOverflow(f.logger, f.name, z, probSum)
	}

	for j, p := range probs {
		if f.rng.Float64() < p {
			return shells[eligible[j]], true, nil
		}
	}
	return phys.ShellData{}, false, nil
}
