package fluvtree

import "gonum.org/v1/gonum/mat"

// assemble stitches the per-segment stencils into the global step system
// A·z' = r over every node of every segment. Interior rows are the implicit
// Exner balance; headwaters carry the imposed-slope row, the outlet the
// base-level row, and junctions an elevation-continuity row on each upstream
// side plus a flux-summing balance on the downstream first node.
func (net *Network) assemble(sts []*stencil, dt float64) (*mat.Dense, *mat.VecDense) {
	a := mat.NewDense(net.Nz, net.Nz, nil)
	r := mat.NewVecDense(net.Nz, nil)
	th := net.Theta

	for _, k := range net.Order {
		sg, st, o := net.Segs[k], sts[k], net.Offs[k]
		n := sg.Nodes()

		// upstream boundary
		if sg.Head {
			// fixed slope: z0 - z1 = S0·h
			a.Set(o, o, 1.)
			a.Set(o, o+1, -1.)
			r.SetVec(o, sg.S0*(sg.X[1]-sg.X[0]))
		} else {
			// junction balance: every upstream segment's outgoing flux
			// enters the first-node control volume, which spans the
			// downstream half-cell plus the upstream segments' last
			// half-cells
			vol := (1. - net.Porosity) * sg.B[0] * (sg.X[1] - sg.X[0]) / 2.
			for _, u := range net.Upstream[k] {
				us := net.Segs[u]
				nu := us.Nodes()
				vol += (1. - net.Porosity) * us.B[nu-1] * (us.X[nu-1] - us.X[nu-2]) / 2.
			}
			al := dt / vol

			a.Set(o, o, 1.+th*al*st.df[0])
			a.Set(o, o+1, -th*al*st.df[0])
			rhs := sg.Z[0] - (1.-th)*al*st.fold[0]
			for _, u := range net.Upstream[k] {
				us, ust, uo := net.Segs[u], sts[u], net.Offs[u]
				nu := us.Nodes()
				dfu := ust.df[nu-2]
				a.Set(o, uo+nu-2, -th*al*dfu)
				a.Set(o, uo+nu-1, th*al*dfu)
				rhs += (1. - th) * al * ust.fold[nu-2]
			}
			r.SetVec(o, rhs)
		}

		// interior
		for i := 1; i < n-1; i++ {
			ro := o + i
			al := st.al[i]
			a.Set(ro, ro-1, -th*al*st.df[i-1])
			a.Set(ro, ro, 1.+th*al*(st.df[i-1]+st.df[i]))
			a.Set(ro, ro+1, -th*al*st.df[i])
			r.SetVec(ro, sg.Z[i]+(1.-th)*al*(st.fold[i-1]-st.fold[i]))
		}

		// downstream boundary
		ro := o + n - 1
		if d := net.Dseg[k]; d < 0 {
			// outlet pinned to base level
			a.Set(ro, ro, 1.)
			r.SetVec(ro, net.ZBase)
		} else {
			// elevation continuity into the receiving segment's first node
			a.Set(ro, ro, 1.)
			a.Set(ro, net.Offs[d], -1.)
			r.SetVec(ro, 0.)
		}
	}
	return a, r
}
