// Package geom provides the small amount of 3-D vector math the X-ray
// pipeline needs: positions, directions, and isotropic direction sampling.
package geom

import (
	"math"
	"math/rand"
)

// Vec3 is a 3-component vector used for both positions (meters) and
// unit directions. It is a value type; all operations return new values.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// DistanceTo returns the Euclidean distance between v and w.
func (v Vec3) DistanceTo(w Vec3) float64 {
	return v.Sub(w).Norm()
}

// SquaredDistanceTo returns the squared Euclidean distance between v and w.
func (v Vec3) SquaredDistanceTo(w Vec3) float64 {
	d := v.Sub(w)
	return d.Dot(d)
}

// CosAngleBetween returns the cosine of the angle between a and b.
// Returns 1 when either vector has zero length.
func CosAngleBetween(a, b Vec3) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 1
	}
	c := a.Dot(b) / (na * nb)
	// Rounding can push the cosine marginally outside [-1, 1].
	return math.Max(-1, math.Min(1, c))
}

// IsotropicDirection samples a unit direction uniformly over the sphere
// using the supplied generator.
func IsotropicDirection(rng *rand.Rand) Vec3 {
	cosTheta := 1 - 2*rng.Float64()
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * rng.Float64()
	return Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}
