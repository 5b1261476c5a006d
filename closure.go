package fluvtree

import "math"

// TransportLaw closes the Exner equation, giving gravel transport from the
// local slope, channel-forming discharge and width. Implementations must be
// monotonic increasing in slope and discharge.
type TransportLaw interface {
	// Flux returns the volumetric transport rate [m³/s]; odd in s, so an
	// adverse slope moves material upstream.
	Flux(s, q, b float64) float64
	// Coefficient returns the secant linearization Flux/s about slope s, the
	// diffusivity carried by the implicit stepper. Must be nonnegative.
	Coefficient(s, q, b float64) float64
}

// ThresholdWidth is the near-threshold gravel-bed closure: the channel
// adjusts its width so bank shear sits just above the threshold of motion,
// collapsing transport to Qs = KQs·I·Q·S^P, independent of the imposed
// valley width (width still scales the bed area in the mass balance).
type ThresholdWidth struct {
	KQs           float64 // transport coefficient
	P             float64 // slope exponent
	Intermittency float64 // fraction of time at the channel-forming flow
}

// DefaultThresholdWidth returns the stock closure: P = 7/6 with a continuous
// intermittency of one.
func DefaultThresholdWidth() ThresholdWidth {
	return ThresholdWidth{KQs: 0.041, P: 7. / 6., Intermittency: 1.}
}

func (tw ThresholdWidth) Flux(s, q, b float64) float64 {
	return tw.Coefficient(s, q, b) * s
}

func (tw ThresholdWidth) Coefficient(s, q, b float64) float64 {
	sa := math.Abs(s)
	if sa == 0. {
		if tw.P == 1. {
			return tw.KQs * tw.Intermittency * q
		}
		return 0. // degenerate limit; keeps a flat bed flat
	}
	return tw.KQs * tw.Intermittency * q * math.Pow(sa, tw.P-1.)
}
