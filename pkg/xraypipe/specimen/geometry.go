package specimen

import (
	"sort"

	"github.com/probelab/xraypipe/pkg/xraypipe/geom"
)

// Empty is a specimen containing nothing but vacuum. Useful for geometric
// fall-off checks where absorption must be exactly zero.
type Empty struct{}

var vacuumRegion = &homogeneousRegion{mat: Vacuum}

// RegionAt returns the vacuum region.
func (Empty) RegionAt(geom.Vec3) Region { return vacuumRegion }

// Segments returns a single vacuum segment spanning the whole path.
func (Empty) Segments(from, to geom.Vec3) []Segment {
	return []Segment{{Material: Vacuum, Length: from.DistanceTo(to)}}
}

// Bulk is a semi-infinite specimen: one material fills the half-space
// z >= 0 (the beam enters at the surface plane z = 0 and travels toward
// +z), vacuum fills z < 0.
type Bulk struct {
	region *homogeneousRegion
}

// NewBulk creates a bulk specimen of the given material.
func NewBulk(mat *Material) *Bulk {
	return &Bulk{region: &homogeneousRegion{mat: mat}}
}

// RegionAt returns the bulk region for z >= 0, vacuum above the surface.
func (b *Bulk) RegionAt(p geom.Vec3) Region {
	if p.Z >= 0 {
		return b.region
	}
	return vacuumRegion
}

// Segments decomposes the path against the single surface plane.
func (b *Bulk) Segments(from, to geom.Vec3) []Segment {
	return planarSegments(from, to, []float64{0}, b.RegionAt)
}

// Layer is one slab of a multilayer specimen.
type Layer struct {
	// Material fills the layer.
	Material *Material
	// Thickness is in meters.
	Thickness float64
}

// Multilayer is a stack of planar layers starting at the surface z = 0 and
// extending toward +z, on top of a semi-infinite substrate. Vacuum lies
// above the surface.
type Multilayer struct {
	layers    []Layer
	substrate *homogeneousRegion
	regions   []*homogeneousRegion
	bounds    []float64 // layer interface depths, ascending, starting at 0
}

// NewMultilayer creates a layered specimen. A nil substrate means vacuum
// below the last layer.
func NewMultilayer(layers []Layer, substrate *Material) *Multilayer {
	if substrate == nil {
		substrate = Vacuum
	}
	m := &Multilayer{
		layers:    layers,
		substrate: &homogeneousRegion{mat: substrate},
	}
	depth := 0.0
	for _, l := range layers {
		m.bounds = append(m.bounds, depth)
		m.regions = append(m.regions, &homogeneousRegion{mat: l.Material})
		depth += l.Thickness
	}
	m.bounds = append(m.bounds, depth)
	return m
}

// RegionAt returns the layer containing the point, the substrate below the
// stack, or vacuum above the surface.
func (m *Multilayer) RegionAt(p geom.Vec3) Region {
	if p.Z < 0 {
		return vacuumRegion
	}
	for i := range m.regions {
		if p.Z < m.bounds[i+1] {
			return m.regions[i]
		}
	}
	return m.substrate
}

// Segments decomposes the path against every layer interface.
func (m *Multilayer) Segments(from, to geom.Vec3) []Segment {
	return planarSegments(from, to, m.bounds, m.RegionAt)
}

// planarSegments splits the from->to segment at each z = plane crossing and
// assigns each piece the material found at its midpoint. Zero-length pieces
// are dropped and adjacent pieces of the same material merged.
func planarSegments(from, to geom.Vec3, planes []float64, lookup func(geom.Vec3) Region) []Segment {
	total := from.DistanceTo(to)
	if total == 0 {
		return nil
	}
	dz := to.Z - from.Z

	ts := []float64{0, 1}
	if dz != 0 {
		for _, plane := range planes {
			t := (plane - from.Z) / dz
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	sort.Float64s(ts)

	dir := to.Sub(from)
	var segs []Segment
	for i := 0; i+1 < len(ts); i++ {
		span := ts[i+1] - ts[i]
		if span <= 0 {
			continue
		}
		mid := from.Add(dir.Scale((ts[i] + ts[i+1]) / 2))
		mat := lookup(mid).Material()
		length := span * total
		if n := len(segs); n > 0 && segs[n-1].Material == mat {
			segs[n-1].Length += length
			continue
		}
		segs = append(segs, Segment{Material: mat, Length: length})
	}
	return segs
}
