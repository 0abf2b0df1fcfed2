package xraypipe

import (
	"github.com/probelab/xraypipe/pkg/xraypipe/config"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

// Pipeline wires the standard stage chain:
//
//	source -> fluorescence -> transport
//	source -> compton      -> transport
//	source -> transport
//	transport -> accumulator
//
// Each stage owns its own seeded random generator, so a Pipeline is fully
// deterministic for a fixed seed and fully independent of other Pipeline
// instances. The phys.Database may be shared across pipelines; everything
// else is per-instance.
type Pipeline struct {
	// Source records primary emission; the trajectory engine drives it.
	Source *SourceStage
	// Fluorescence generates secondary characteristic photons.
	Fluorescence *FluorescenceStage
	// Compton generates scattered photons.
	Compton *ComptonStage
	// Transport attenuates everything toward the detector.
	Transport *TransportStage
	// Accumulator sums the detector-side output.
	Accumulator *Accumulator
}

// NewPipeline builds and wires a pipeline over the given physics database
// and specimen. Stage options (logger, metrics) are applied to every stage.
func NewPipeline(db *phys.Database, sp specimen.Specimen, cfg config.Pipeline, opts ...StageOption) *Pipeline {
	p := &Pipeline{
		Source:       NewSourceStage(opts...),
		Fluorescence: NewFluorescenceStage(db, sp, cfg, opts...),
		Compton:      NewComptonStage(db, sp, cfg, opts...),
		Transport:    NewTransportStage(db, sp, cfg, opts...),
		Accumulator:  NewAccumulator(),
	}

	p.Source.Subscribe(p.Fluorescence)
	p.Source.Subscribe(p.Compton)
	p.Source.Subscribe(p.Transport)
	p.Fluorescence.Subscribe(p.Transport)
	p.Compton.Subscribe(p.Transport)
	p.Transport.Subscribe(p.Accumulator)

	return p
}
