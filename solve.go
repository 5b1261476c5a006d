package fluvtree

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// AdvanceOneStep advances the whole network's bed by one implicit increment.
// Coefficients are frozen at the prior-step state, so the step is a single
// exact linear solve; either every segment updates or, on failure, none do.
func (net *Network) AdvanceOneStep(dt float64) error {
	if dt <= 0. {
		return cfgErrf(-1, "non-positive dt %g", dt)
	}

	// per-segment coefficients, concurrent by round, all reading the same
	// frozen prior-step state
	sts := make([]*stencil, len(net.Segs))
	var wg sync.WaitGroup
	for _, inner := range net.Outer {
		wg.Add(len(inner))
		for _, k := range inner {
			go func(k int) {
				sts[k] = net.Segs[k].discretize(net.law, net.Porosity, dt)
				wg.Done()
			}(k)
		}
		wg.Wait()
	}

	a, r := net.assemble(sts, dt)

	var lu mat.LU
	lu.Factorize(a)
	x := mat.NewVecDense(net.Nz, nil)
	if err := lu.SolveVecTo(x, false, r); err != nil {
		return &NumericalError{Step: net.Step, Msg: "singular or ill-conditioned system: " + err.Error()}
	}
	for k, sg := range net.Segs {
		o := net.Offs[k]
		for i := range sg.Z {
			if v := x.AtVec(o + i); math.IsNaN(v) || math.IsInf(v, 0) {
				return &NumericalError{Step: net.Step, Msg: fmt.Sprintf("non-finite elevation at segment %d node %d", k, i)}
			}
		}
	}

	// commit
	for k, sg := range net.Segs {
		o := net.Offs[k]
		for i := range sg.Z {
			sg.Z[i] = x.AtVec(o + i)
		}
	}
	out := net.Segs[net.Outlet]
	out.Z[out.Nodes()-1] = net.ZBase // pinned, solver roundoff notwithstanding
	for _, sg := range net.Segs {
		sg.updateDerived(net.law)
	}
	net.Step++
	net.Time += dt
	return nil
}
