package benchmarks

import (
	"testing"

	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
)

// BenchmarkMassAbsorption measures one absorption-coefficient evaluation.
func BenchmarkMassAbsorption(b *testing.B) {
	db := phys.NewDatabase()
	energy := phys.FromKeV(8.048)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := db.MassAbsorption(26, energy); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkTransitions measures the memoized transition-table lookup.
func BenchmarkTransitions(b *testing.B) {
	db := phys.NewDatabase()
	if _, err := db.Transitions(26, phys.ShellK); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := db.Transitions(26, phys.ShellK); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkKleinNishinaAngular measures one scattering-weight evaluation.
func BenchmarkKleinNishinaAngular(b *testing.B) {
	energy := phys.FromKeV(20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		phys.KleinNishinaAngular(energy, 0.3)
	}
}

// BenchmarkBremsAngular measures one continuum-weight evaluation.
func BenchmarkBremsAngular(b *testing.B) {
	electron := phys.FromKeV(20)
	photon := phys.FromKeV(4)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		phys.BremsAngular(26, 0.3, electron, photon)
	}
}
