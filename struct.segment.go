package fluvtree

// Segment is one river reach: a 1-D along-channel node grid bounded by a
// headwater or junction upstream and a junction or the network outlet
// downstream. Positions are fixed for the segment's life; bed elevation is
// rewritten in place by each successful network solve.
type Segment struct {
	X, Z  []float64 // along-channel position [m]; bed elevation [m]
	Q, B  []float64 // channel-forming discharge [m³/s]; valley width [m]
	S, Qs []float64 // face slopes [-] and transport flux [m³/s] (len n-1), refreshed each step
	S0    float64   // imposed upstream slope (headwater segments only)
	ID    int
	Head  bool // no upstream segments; S0 applies at the first node
}

// Nodes returns the grid size.
func (sg *Segment) Nodes() int { return len(sg.X) }

func (sg *Segment) validate() error {
	n := len(sg.X)
	if n < 2 {
		return cfgErrf(sg.ID, "needs at least 2 nodes, has %d", n)
	}
	if len(sg.Z) != n || len(sg.Q) != n || len(sg.B) != n {
		return cfgErrf(sg.ID, "array length mismatch: x:%d z:%d q:%d b:%d", n, len(sg.Z), len(sg.Q), len(sg.B))
	}
	for i := 1; i < n; i++ {
		if sg.X[i] <= sg.X[i-1] {
			return cfgErrf(sg.ID, "positions not strictly increasing at node %d", i)
		}
	}
	for i := 0; i < n; i++ {
		if sg.Q[i] < 0. || sg.B[i] < 0. {
			return cfgErrf(sg.ID, "negative discharge or width at node %d", i)
		}
	}
	return nil
}

// updateDerived refreshes face slopes and transport flux from the current
// bed. Faces carry the mean of the bounding nodes' discharge and width.
func (sg *Segment) updateDerived(law TransportLaw) {
	n := len(sg.X)
	if sg.S == nil {
		sg.S, sg.Qs = make([]float64, n-1), make([]float64, n-1)
	}
	for i := 0; i < n-1; i++ {
		h := sg.X[i+1] - sg.X[i]
		qf, bf := (sg.Q[i]+sg.Q[i+1])/2., (sg.B[i]+sg.B[i+1])/2.
		sg.S[i] = (sg.Z[i] - sg.Z[i+1]) / h
		sg.Qs[i] = law.Flux(sg.S[i], qf, bf)
	}
}
