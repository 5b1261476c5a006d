package fluvtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleSegmentLargeStep(t *testing.T) {
	// one headwater reach straight to base level: 5 nodes, uniform
	// discharge 10 and width 100, imposed upstream slope 0.01, base level 0;
	// the initial bed is steeper than the boundary can feed
	x := []float64{0., 1000., 2000., 3000., 4000.}
	z := GradedProfile(x, 0.02, 0.)
	net, err := Build([][]int{{}}, []int{-1},
		[][]float64{x}, [][]float64{z},
		[][]float64{uniform(5, 10.)}, [][]float64{uniform(5, 100.)},
		map[int]float64{0: 0.01}, 4500., 0., nil)
	require.NoError(t, err)

	require.NoError(t, net.AdvanceOneStep(3.15e9)) // ~100 yr

	sg := net.Segs[0]
	for i, v := range sg.Z {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite elevation at node %d", i)
	}

	// outlet pinned to base level exactly
	require.Equal(t, 0., sg.Z[4])
	// headwater slope snaps to the imposed boundary slope
	require.InDelta(t, 0.01, (sg.Z[0]-sg.Z[1])/(x[1]-x[0]), 1e-9)
	// overall downstream gradient is preserved, not reversed
	require.Greater(t, sg.Z[0], sg.Z[4])
	for i := 0; i < 4; i++ {
		require.GreaterOrEqual(t, sg.Z[i], sg.Z[i+1]-1e-9)
	}
}

func TestSteadyStateIdempotence(t *testing.T) {
	law := DefaultThresholdWidth()
	q0, q1, q2 := 5., 15., 20.
	s0, s1 := 0.02, 0.01

	// trunk slope balancing the summed tributary transport
	qs := law.Flux(s0, q0, 100.) + law.Flux(s1, q1, 100.)
	s2 := law.EquilibriumSlope(q2, qs)

	x2 := []float64{1000., 1500., 2000., 2500.}
	z2 := GradedProfile(x2, s2, 0.)
	zj := z2[0]
	z0 := GradedProfile([]float64{0., 500., 1000.}, s0, zj)
	z1 := GradedProfile([]float64{0., 250., 500., 1000.}, s1, zj)

	net := buildY(t, law, z0, z1, z2, q0, q1, q2, s0, s1, 0.)
	before := net.CopyZ()

	for i := 0; i < 3; i++ {
		require.NoError(t, net.AdvanceOneStep(3.15e9))
	}
	after := net.CopyZ()
	for k := range before {
		for i := range before[k] {
			require.InDeltaf(t, before[k][i], after[k][i], 1e-8, "drift at segment %d node %d", k, i)
		}
	}
}

func TestJunctionContinuity(t *testing.T) {
	law := DefaultThresholdWidth()
	// start away from equilibrium
	z2 := GradedProfile([]float64{1000., 1500., 2000., 2500.}, 0.005, 0.)
	z0 := GradedProfile([]float64{0., 500., 1000.}, 0.03, z2[0]+5.)
	z1 := GradedProfile([]float64{0., 250., 500., 1000.}, 0.02, z2[0]-2.)
	net := buildY(t, law, z0, z1, z2, 10., 10., 20., 0.03, 0.02, 0.)

	for i := 0; i < 5; i++ {
		require.NoError(t, net.AdvanceOneStep(3.15e8))
		for _, u := range net.Upstream[2] {
			us := net.Segs[u]
			require.InDeltaf(t, net.Segs[2].Z[0], us.Z[us.Nodes()-1], 1e-8,
				"elevation continuity broken at junction after step %d", net.Step)
		}
	}
}

func TestJunctionFluxConservation(t *testing.T) {
	law := DefaultThresholdWidth()
	dt := 3.15e8
	z2 := GradedProfile([]float64{1000., 1500., 2000., 2500.}, 0.006, 0.)
	z0 := GradedProfile([]float64{0., 500., 1000.}, 0.025, z2[0])
	z1 := GradedProfile([]float64{0., 250., 500., 1000.}, 0.018, z2[0])
	net := buildY(t, law, z0, z1, z2, 10., 10., 20., 0.025, 0.018, 0.)

	// frozen coefficients, as the step will see them
	sts := make([]*stencil, len(net.Segs))
	for k, sg := range net.Segs {
		sts[k] = sg.discretize(net.Law(), net.Porosity, dt)
	}
	zj0 := net.Segs[2].Z[0]

	require.NoError(t, net.AdvanceOneStep(dt))

	// discrete junction balance: storage change in the junction control
	// volume equals summed tributary inflow minus trunk outflow
	d := net.Segs[2]
	vol := (1. - net.Porosity) * d.B[0] * (d.X[1] - d.X[0]) / 2.
	fin := 0.
	for _, u := range net.Upstream[2] {
		us := net.Segs[u]
		nu := us.Nodes()
		vol += (1. - net.Porosity) * us.B[nu-1] * (us.X[nu-1] - us.X[nu-2]) / 2.
		fin += sts[u].df[nu-2] * (us.Z[nu-2] - us.Z[nu-1])
	}
	fout := sts[2].df[0] * (d.Z[0] - d.Z[1])
	sto := (d.Z[0] - zj0) * vol / dt
	require.InDelta(t, fin-fout, sto, 1e-6*math.Max(1., math.Abs(fin)))
}

func TestGridImmutable(t *testing.T) {
	law := DefaultThresholdWidth()
	z2 := GradedProfile([]float64{1000., 1500., 2000., 2500.}, 0.01, 0.)
	z0 := GradedProfile([]float64{0., 500., 1000.}, 0.02, z2[0])
	z1 := GradedProfile([]float64{0., 250., 500., 1000.}, 0.02, z2[0])
	net := buildY(t, law, z0, z1, z2, 10., 10., 20., 0.02, 0.02, 0.)

	xs := make([][]float64, len(net.Segs))
	for k, sg := range net.Segs {
		xs[k] = append([]float64{}, sg.X...)
	}
	require.NoError(t, net.Run(5, 3.15e8, nil))
	for k, sg := range net.Segs {
		require.Equal(t, xs[k], sg.X)
	}
}

type nanLaw struct{}

func (nanLaw) Flux(s, q, b float64) float64        { return math.NaN() }
func (nanLaw) Coefficient(s, q, b float64) float64 { return math.NaN() }

func TestNoPartialCommitOnNumericalError(t *testing.T) {
	x := []float64{0., 1000., 2000., 3000., 4000.}
	z := GradedProfile(x, 0.01, 0.)
	net, err := Build([][]int{{}}, []int{-1},
		[][]float64{x}, [][]float64{z},
		[][]float64{uniform(5, 10.)}, [][]float64{uniform(5, 100.)},
		map[int]float64{0: 0.01}, 4500., 0., nanLaw{})
	require.NoError(t, err)

	before := net.CopyZ()
	err = net.AdvanceOneStep(3.15e8)
	var num *NumericalError
	require.ErrorAs(t, err, &num)
	require.Equal(t, 0, num.Step)

	// the failed step must not touch state
	require.Equal(t, before, net.CopyZ())
	require.Equal(t, 0, net.Step)
	require.Equal(t, 0., net.Time)
}

func TestRunRecorder(t *testing.T) {
	x := []float64{0., 1000., 2000., 3000., 4000.}
	z := GradedProfile(x, 0.02, 0.)
	net, err := Build([][]int{{}}, []int{-1},
		[][]float64{x}, [][]float64{z},
		[][]float64{uniform(5, 10.)}, [][]float64{uniform(5, 100.)},
		map[int]float64{0: 0.01}, 4500., 0., nil)
	require.NoError(t, err)

	var steps []int
	var last [][]float64
	require.NoError(t, net.Run(4, 3.15e7, func(step int, tm float64, zs [][]float64) {
		steps = append(steps, step)
		last = zs
	}))
	require.Equal(t, []int{1, 2, 3, 4}, steps)
	require.Equal(t, net.CopyZ(), last)

	// recorded copies must not alias live state
	last[0][0] += 1.
	require.NotEqual(t, net.Segs[0].Z[0], last[0][0])
}

func TestThetaWeightedStep(t *testing.T) {
	x := []float64{0., 1000., 2000., 3000., 4000.}
	z := GradedProfile(x, 0.02, 0.)
	net, err := Build([][]int{{}}, []int{-1},
		[][]float64{x}, [][]float64{z},
		[][]float64{uniform(5, 10.)}, [][]float64{uniform(5, 100.)},
		map[int]float64{0: 0.01}, 4500., 0., nil)
	require.NoError(t, err)
	net.Theta = 0.5 // Crank-Nicolson

	require.NoError(t, net.Run(10, 3.15e7, nil))
	sg := net.Segs[0]
	for i, v := range sg.Z {
		require.Falsef(t, math.IsNaN(v) || math.IsInf(v, 0), "non-finite elevation at node %d", i)
	}
	require.Equal(t, 0., sg.Z[4])
	require.InDelta(t, 0.01, (sg.Z[0]-sg.Z[1])/(x[1]-x[0]), 1e-9)
}
