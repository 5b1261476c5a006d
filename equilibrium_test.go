package fluvtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEquilibriumSlopeInvertsFlux(t *testing.T) {
	law := DefaultThresholdWidth()
	for _, s := range []float64{0.001, 0.012, 0.05} {
		qs := law.Flux(s, 10., 100.)
		require.InDelta(t, s, law.EquilibriumSlope(10., qs), 1e-12)
	}
	require.Equal(t, 0., law.EquilibriumSlope(0., 1.))
	require.Equal(t, 0., law.EquilibriumSlope(10., 0.))
}

func TestGradedProfile(t *testing.T) {
	x := []float64{0., 500., 1500., 2000.}
	z := GradedProfile(x, 0.01, 5.)
	require.Equal(t, 5., z[len(z)-1])
	for i := 0; i < len(x)-1; i++ {
		require.InDelta(t, 0.01, (z[i]-z[i+1])/(x[i+1]-x[i]), 1e-12)
	}
}

func TestClosureMonotonicity(t *testing.T) {
	law := DefaultThresholdWidth()
	// monotonic increasing in slope and discharge
	require.Less(t, law.Flux(0.005, 10., 100.), law.Flux(0.01, 10., 100.))
	require.Less(t, law.Flux(0.01, 5., 100.), law.Flux(0.01, 10., 100.))
	// odd in slope
	require.Equal(t, -law.Flux(0.01, 10., 100.), law.Flux(-0.01, 10., 100.))
	// flat bed carries nothing
	require.Equal(t, 0., law.Flux(0., 10., 100.))
	require.Equal(t, 0., law.Coefficient(0., 10., 100.))
}
