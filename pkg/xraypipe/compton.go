package xraypipe

import (
	"context"
	"math"
	"math/rand"

	"github.com/probelab/xraypipe/pkg/xraypipe/config"
	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/observability"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

// ComptonStage consumes upstream photon events, Monte-Carlo samples a
// subset, marches each sampled photon to a scattering point using the
// incoherent mean free path, and emits a direction-carrying scattered event
// attenuated by the photoelectric absorption accumulated along the path.
//
// Scattered events are only meaningful to a transport stage, which resolves
// the outgoing energy shift toward its detector; when no transport-capable
// subscriber exists downstream, the stage emits nothing.
type ComptonStage struct {
	*Stage

	db       *phys.Database
	spec     specimen.Specimen
	params   marchParams
	fraction float64
	rng      *rand.Rand
	angular  phys.AngularEvaluator

	angularStat phys.RunningStat

	cachedPos    geom.Vec3
	cachedRegion specimen.Region
	haveCached   bool
}

// NewComptonStage creates a Compton stage over the given physics database
// and specimen, configured by cfg. The stage owns a private random
// generator derived from cfg.Seed.
func NewComptonStage(db *phys.Database, sp specimen.Specimen, cfg config.Pipeline, opts ...StageOption) *ComptonStage {
	cfg = cfg.Normalized()
	c := &ComptonStage{
		Stage: NewStage("compton", opts...),
		db:    db,
		spec:  sp,
		params: marchParams{
			vacuumThreshold: cfg.VacuumDensityThreshold,
			nudge:           cfg.BoundaryNudge,
			maxRadius:       cfg.MaxMarchRadius,
		},
		rng:     rand.New(rand.NewSource(cfg.Seed + 2)),
		angular: phys.BremsAngular,
	}
	c.SetModelFraction(cfg.ComptonFraction)
	return c
}

// ModelFraction returns the Monte Carlo thinning fraction.
func (c *ComptonStage) ModelFraction() float64 { return c.fraction }

// SetModelFraction sets the thinning fraction, clamping it to the legal
// range rather than rejecting it.
func (c *ComptonStage) SetModelFraction(v float64) {
	c.fraction = phys.Clamp(v, config.MinModelFraction, config.MaxModelFraction)
}

// SetAngularEvaluator replaces the continuum angular-distribution
// evaluator. Intended for tests; the default is phys.BremsAngular.
func (c *ComptonStage) SetAngularEvaluator(eval phys.AngularEvaluator) {
	c.angular = eval
}

// AngularWeightStat returns the running statistic of the continuum
// angular-weight factor.
func (c *ComptonStage) AngularWeightStat() *phys.RunningStat {
	return &c.angularStat
}

// hasTransportListener reports whether a transport stage is subscribed.
func (c *ComptonStage) hasTransportListener() bool {
	for _, l := range c.listeners {
		if _, ok := l.(*TransportStage); ok {
			return true
		}
	}
	return false
}

// OnNotify implements Listener. Lifecycle notifications are forwarded
// unchanged; a new-events notification runs one scattering cycle.
func (c *ComptonStage) OnNotify(n Notification, src *Stage) {
	if n.Kind != NotifyNewEvents {
		c.NotifyListeners(n)
		return
	}

	c.Reset()
	c.haveCached = false

	if c.hasTransportListener() {
		for i := src.EventCount() - 1; i >= 0; i-- {
			if err := c.process(src.Event(i)); err != nil {
				observability.LogEventError(c.logger, c.name, i, err)
				c.metrics.RecordEventError(context.Background(), c.name)
			}
		}
	}

	observability.LogCycleComplete(c.logger, c.name, src.EventCount(), c.EventCount())
	c.metrics.RecordCycle(context.Background(), c.name, src.EventCount(), c.EventCount())
	c.NotifyListeners(Notification{Kind: NotifyNewEvents})
}

// process runs the scattering physics for one upstream event.
func (c *ComptonStage) process(ev *Event) error {
	if c.rng.Float64() >= c.fraction {
		return nil
	}
	scaledIntensity := ev.Intensity() / c.fraction

	region := c.regionAt(ev.Position())
	dir := geom.IsotropicDirection(c.rng)

	scale := 1.0
	if ev.Kind() == EventContinuum {
		cosTheta := geom.CosAngleBetween(ev.ElectronDirection(), dir)
		scale = c.angular(ev.SourceElement(), cosTheta, ev.ElectronEnergy(), ev.Energy())
		c.angularStat.Add(scale)
	}

	res, err := march(c.spec, c.db, c.params, ev.Position(), region, dir, ev.Energy(),
		func(m *specimen.Material) (float64, error) { return m.ComptonMeanFreePath(c.db, ev.Energy()) },
		c.rng)
	c.metrics.RecordMarchSteps(context.Background(), c.name, res.steps)
	if err != nil {
		return err
	}
	if !res.absorbed {
		observability.LogMarchAborted(c.logger, c.name, c.params.maxRadius)
		return nil
	}

	intensity := scale * scaledIntensity * math.Exp(-res.accumulated)
	c.AddComptonXRay(res.pos, dir, intensity, ev)
	return nil
}

// regionAt looks up the region at p, reusing the previous lookup when
// consecutive events share one position.
func (c *ComptonStage) regionAt(p geom.Vec3) specimen.Region {
	if c.haveCached && p == c.cachedPos {
		return c.cachedRegion
	}
	c.cachedPos = p
	c.cachedRegion = c.spec.RegionAt(p)
	c.haveCached = true
	return c.cachedRegion
}
