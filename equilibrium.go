package fluvtree

import "math"

// EquilibriumSlope inverts the closure for the slope that carries transport
// qs at discharge q (the graded condition: flux divergence-free).
func (tw ThresholdWidth) EquilibriumSlope(q, qs float64) float64 {
	if q <= 0. || qs <= 0. {
		return 0.
	}
	return math.Pow(qs/(tw.KQs*tw.Intermittency*q), 1./tw.P)
}

// GradedProfile returns the uniform-slope (transport-balanced) bed dropping
// to zOut at the last node of x.
func GradedProfile(x []float64, s, zOut float64) []float64 {
	n := len(x)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = zOut + s*(x[n-1]-x[i])
	}
	return z
}
