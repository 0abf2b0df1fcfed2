package benchmarks

import (
	"testing"

	"github.com/probelab/xraypipe/pkg/xraypipe"
	"github.com/probelab/xraypipe/pkg/xraypipe/config"
	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

func ironBulk(b *testing.B) *specimen.Bulk {
	b.Helper()
	db := phys.NewDatabase()
	fe, err := db.Element(26)
	if err != nil {
		b.Fatal(err)
	}
	return specimen.NewBulk(specimen.Pure(fe))
}

var cuKa1 = phys.Transition{Z: 29, Shell: phys.ShellK, Line: "Ka1"}

// BenchmarkNewPipeline measures pipeline construction overhead.
func BenchmarkNewPipeline(b *testing.B) {
	db := phys.NewDatabase()
	bulk := ironBulk(b)
	cfg := config.DefaultPipeline()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		xraypipe.NewPipeline(db, bulk, cfg)
	}
}

// BenchmarkStepVacuum measures framework overhead of one source step with
// no physics: a vacuum specimen makes every stage a near no-op.
func BenchmarkStepVacuum(b *testing.B) {
	db := phys.NewDatabase()
	cfg := config.DefaultPipeline()
	p := xraypipe.NewPipeline(db, specimen.Empty{}, cfg)
	pos := geom.Vec3{Z: 1e-6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Source.BeginStep()
		p.Source.RecordCharacteristic(pos, phys.FromKeV(8.048), 1.0, cuKa1)
		p.Source.EndStep()
	}
}

// BenchmarkStepBulk measures one full step through iron, including the
// randomized marches and absorption integrals.
func BenchmarkStepBulk(b *testing.B) {
	db := phys.NewDatabase()
	cfg := config.DefaultPipeline()
	cfg.FluorescenceFraction = 1.0
	cfg.ComptonFraction = 1.0
	p := xraypipe.NewPipeline(db, ironBulk(b), cfg)
	pos := geom.Vec3{Z: 2e-6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Source.BeginStep()
		p.Source.RecordCharacteristic(pos, phys.FromKeV(8.048), 1.0, cuKa1)
		p.Source.EndStep()
	}
}

// BenchmarkStepBulk_10 measures a step carrying 10 photons.
func BenchmarkStepBulk_10(b *testing.B) {
	db := phys.NewDatabase()
	cfg := config.DefaultPipeline()
	p := xraypipe.NewPipeline(db, ironBulk(b), cfg)
	pos := geom.Vec3{Z: 2e-6}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Source.BeginStep()
		for j := 0; j < 10; j++ {
			p.Source.RecordCharacteristic(pos, phys.FromKeV(8.048), 1.0, cuKa1)
		}
		p.Source.EndStep()
	}
}
