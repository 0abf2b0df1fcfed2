package xraypipe

import (
	"math"
	"math/rand"

	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
	"github.com/probelab/xraypipe/pkg/xraypipe/phys"
	"github.com/probelab/xraypipe/pkg/xraypipe/specimen"
)

// marchParams bounds the randomized ray march shared by the fluorescence
// and Compton stages.
type marchParams struct {
	// vacuumThreshold is the density below which a material is treated as
	// non-absorbing, in kg/m^3.
	vacuumThreshold float64
	// nudge is the epsilon advance past a region boundary, in meters.
	nudge float64
	// maxRadius bounds the cumulative travel from the origin, in meters.
	// The only termination guarantee in near-vacuum specimens.
	maxRadius float64
}

// marchResult is the outcome of one randomized ray march.
type marchResult struct {
	// pos is the terminal point.
	pos geom.Vec3
	// region contains pos.
	region specimen.Region
	// absorbed is true when the march ended at an interaction point, false
	// when it ran into near-vacuum or hit the travel bound.
	absorbed bool
	// accumulated is the photoelectric absorption integral
	// sum(mu * length) over the traveled path.
	accumulated float64
	// steps counts the exponential steps taken.
	steps int
}

// meanFreePathFunc yields the sampling mean free path in the given
// material at the marched photon's energy.
type meanFreePathFunc func(m *specimen.Material) (float64, error)

// march advances from start along dir through the specimen, drawing an
// exponentially distributed step length from the current material's mean
// free path at every step. Crossing a region boundary re-samples in the new
// material after a small nudge past the boundary, so the same boundary is
// not re-triggered.
func march(sp specimen.Specimen, db *phys.Database, p marchParams, start geom.Vec3, region specimen.Region, dir geom.Vec3, energyJ float64, mfpOf meanFreePathFunc, rng *rand.Rand) (marchResult, error) {
	res := marchResult{pos: start, region: region}
	traveled := 0.0

	for {
		mat := res.region.Material()
		if mat.IsVacuum() || mat.Density < p.vacuumThreshold {
			// Long step, no physics: nothing left to absorb this photon.
			return res, nil
		}

		mfp, err := mfpOf(mat)
		if err != nil {
			return res, err
		}
		mu, err := mat.LinearAbsorption(db, energyJ)
		if err != nil {
			return res, err
		}

		res.steps++
		step := -mfp * math.Log(1-rng.Float64())
		if traveled+step > p.maxRadius {
			return res, nil
		}
		end := res.pos.Add(dir.Scale(step))
		segs := sp.Segments(res.pos, end)

		if len(segs) > 0 && segs[0].Material != mat {
			// Started exactly on a boundary with a different region ahead:
			// nudge into it and re-sample there.
			res.pos = res.pos.Add(dir.Scale(p.nudge))
			res.region = sp.RegionAt(res.pos)
			traveled += p.nudge
			continue
		}

		if len(segs) > 1 {
			// The step crossed a boundary: advance just past it and
			// re-sample in the new material.
			advance := segs[0].Length + p.nudge
			res.pos = res.pos.Add(dir.Scale(advance))
			res.region = sp.RegionAt(res.pos)
			res.accumulated += mu * advance
			traveled += advance
			continue
		}

		res.pos = end
		res.accumulated += mu * step
		traveled += step
		res.absorbed = true
		return res, nil
	}
}
