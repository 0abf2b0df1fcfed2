package phys

// RunningStat accumulates a running mean and variance (Welford's method).
// Used by the secondary-generation stages to track the angular-weight
// factor for variance diagnostics.
type RunningStat struct {
	n    int
	mean float64
	m2   float64
}

// Add folds one sample into the statistic.
func (r *RunningStat) Add(x float64) {
	r.n++
	delta := x - r.mean
	r.mean += delta / float64(r.n)
	r.m2 += delta * (x - r.mean)
}

// Count returns the number of samples seen.
func (r *RunningStat) Count() int { return r.n }

// Mean returns the sample mean, 0 before any samples.
func (r *RunningStat) Mean() float64 { return r.mean }

// Variance returns the unbiased sample variance, 0 with fewer than two
// samples.
func (r *RunningStat) Variance() float64 {
	if r.n < 2 {
		return 0
	}
	return r.m2 / float64(r.n-1)
}

// Reset discards all samples.
func (r *RunningStat) Reset() {
	r.n = 0
	r.mean = 0
	r.m2 = 0
}
