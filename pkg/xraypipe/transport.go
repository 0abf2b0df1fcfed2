package xraypipe

import (
	"context"
	"math"

	"github.com/probelab/xraypipe/pkg/xraypipe/config"
	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/observability"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

// TransportStage is the terminal physics stage. For every upstream event it
// integrates the absorption coefficient along the straight path from the
// event position to a fixed detector point, applies inverse-square
// geometric fall-off, and for continuum and Compton events applies the
// respective angular-distribution weighting, then re-emits a detector-bound
// event carrying (generated, transmitted) as (generated, intensity).
type TransportStage struct {
	*Stage

	db       *phys.Database
	spec     specimen.Specimen
	detector geom.Vec3
	angular  phys.AngularEvaluator

	// path cache for consecutive events sharing one source position;
	// invalidated every cycle
	cachedFrom geom.Vec3
	cachedSegs []specimen.Segment
	haveCached bool
}

// NewTransportStage creates a transport stage toward the detector point
// fixed in cfg. The detector is immutable thereafter.
func NewTransportStage(db *phys.Database, sp specimen.Specimen, cfg config.Pipeline, opts ...StageOption) *TransportStage {
	cfg = cfg.Normalized()
	return &TransportStage{
		Stage:    NewStage("transport", opts...),
		db:       db,
		spec:     sp,
		detector: geom.Vec3{X: cfg.Detector[0], Y: cfg.Detector[1], Z: cfg.Detector[2]},
		angular:  phys.BremsAngular,
	}
}

// Detector returns the fixed detection point.
func (t *TransportStage) Detector() geom.Vec3 { return t.detector }

// SetAngularEvaluator replaces the continuum angular-distribution
// evaluator. Intended for tests; the default is phys.BremsAngular.
func (t *TransportStage) SetAngularEvaluator(eval phys.AngularEvaluator) {
	t.angular = eval
}

// OnNotify implements Listener. Lifecycle notifications are forwarded
// unchanged; a new-events notification transports the upstream batch to the
// detector.
func (t *TransportStage) OnNotify(n Notification, src *Stage) {
	if n.Kind != NotifyNewEvents {
		t.NotifyListeners(n)
		return
	}

	t.Reset()
	t.haveCached = false

	for i := src.EventCount() - 1; i >= 0; i-- {
		if err := t.process(src.Event(i)); err != nil {
			observability.LogEventError(t.logger, t.name, i, err)
			t.metrics.RecordEventError(context.Background(), t.name)
		}
	}

	observability.LogCycleComplete(t.logger, t.name, src.EventCount(), t.EventCount())
	t.metrics.RecordCycle(context.Background(), t.name, src.EventCount(), t.EventCount())
	t.NotifyListeners(Notification{Kind: NotifyNewEvents})
}

// process transports one upstream event to the detector.
func (t *TransportStage) process(ev *Event) error {
	d2 := ev.Position().SquaredDistanceTo(t.detector)
	if d2 == 0 {
		return ErrDetectorCoincident
	}
	geometric := 1 / d2
	outDir := t.detector.Sub(ev.Position()).Unit()

	var generated, transmitted float64
	switch ev.Kind() {
	case EventContinuum:
		cosTheta := geom.CosAngleBetween(ev.ElectronDirection(), outDir)
		weight := t.angular(ev.SourceElement(), cosTheta, ev.ElectronEnergy(), ev.Energy())
		generated = geometric * weight * ev.Intensity()
		absorb, err := t.absorption(ev.Position(), ev.Energy())
		if err != nil {
			return err
		}
		transmitted = generated * math.Exp(-absorb)

	case EventCompton:
		cosTheta := geom.CosAngleBetween(ev.IncidentDirection(), outDir)
		shifted := phys.ComptonShift(ev.Energy(), cosTheta)
		weight := phys.KleinNishinaAngular(ev.Energy(), cosTheta)
		generated = geometric * weight * ev.Intensity()
		// Attenuation applies to the photon after the scatter, at the
		// shifted energy.
		absorb, err := t.absorption(ev.Position(), shifted)
		if err != nil {
			return err
		}
		transmitted = generated * math.Exp(-absorb)

	default:
		generated = geometric * ev.Intensity()
		absorb, err := t.absorption(ev.Position(), ev.Energy())
		if err != nil {
			return err
		}
		transmitted = generated * math.Exp(-absorb)
	}

	t.AddXRay(ev, t.detector, transmitted, generated)
	return nil
}

// absorption integrates mu*rho*length over the material segments between
// the source position and the detector. Vacuum segments contribute zero.
// The path decomposition is reused while consecutive events share one
// source position and discarded with the cycle.
func (t *TransportStage) absorption(from geom.Vec3, energyJ float64) (float64, error) {
	if !t.haveCached || from != t.cachedFrom {
		t.cachedFrom = from
		t.cachedSegs = t.spec.Segments(from, t.detector)
		t.haveCached = true
	}
	segs := t.cachedSegs

	var integral float64
	for _, seg := range segs {
		if seg.Material.IsVacuum() {
			continue
		}
		mac, err := seg.Material.MassAbsorption(t.db, energyJ)
		if err != nil {
			return 0, err
		}
		integral += mac * seg.Material.Density * seg.Length
	}
	return integral, nil
}
