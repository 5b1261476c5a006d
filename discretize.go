package fluvtree

// stencil is one segment's contribution to the global step system,
// linearized about the prior-step bed (explicit coefficients, implicit
// unknowns). Boundary and junction rows are completed during assembly.
type stencil struct {
	df   []float64 // face diffusivity over spacing, D/h (len n-1)
	fold []float64 // prior-step face flux [m³/s] (len n-1), for theta-weighting
	al   []float64 // dt/((1-porosity)·B·w) per node cell (len n)
}

// discretize builds the implicit finite-volume coefficients for one segment
// about the prior-step state. The implicit stencil carries no diffusive
// time-step restriction, so dt can sit at geomorphic scales (years) far
// beyond any explicit Courant limit.
func (sg *Segment) discretize(law TransportLaw, porosity, dt float64) *stencil {
	n := sg.Nodes()
	st := &stencil{
		df:   make([]float64, n-1),
		fold: make([]float64, n-1),
		al:   make([]float64, n),
	}
	for i := 0; i < n-1; i++ {
		h := sg.X[i+1] - sg.X[i]
		s := (sg.Z[i] - sg.Z[i+1]) / h
		qf, bf := (sg.Q[i]+sg.Q[i+1])/2., (sg.B[i]+sg.B[i+1])/2.
		d := law.Coefficient(s, qf, bf)
		st.df[i] = d / h
		st.fold[i] = d * s
	}
	for i := 0; i < n; i++ {
		var w float64 // control-volume width
		switch i {
		case 0:
			w = (sg.X[1] - sg.X[0]) / 2.
		case n - 1:
			w = (sg.X[n-1] - sg.X[n-2]) / 2.
		default:
			w = (sg.X[i+1] - sg.X[i-1]) / 2.
		}
		st.al[i] = dt / ((1. - porosity) * sg.B[i] * w)
	}
	return st
}
