package fluvtree

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Network owns the segments of a branching channel and their adjacency: a
// directed acyclic graph draining to a single outlet at base level.
// Topology and geometry are fixed for the network's life; only bed elevation
// (and its derived slope and flux fields) evolves.
type Network struct {
	Segs         []*Segment
	Upstream     [][]int // per segment, ids draining into its first node
	Dseg         []int   // per segment, receiving id (-1 at the outlet)
	Order        []int   // topological, headwaters first
	Outer        [][]int // concurrent-safe rounds of Order
	Offs         []int   // segment offsets into the global unknown vector
	Nz           int     // total unknowns (nodes) network-wide
	Outlet       int
	XBase, ZBase float64 // base-level datum position and elevation
	Porosity     float64 // bed sediment porosity (lambda_p)
	Theta        float64 // time weighting: 1 fully implicit, 0.5 Crank-Nicolson
	Step         int
	Time         float64 // [s]

	law TransportLaw
}

// Law returns the transport closure in effect.
func (net *Network) Law() TransportLaw { return net.law }

// SetLaw swaps the transport closure and refreshes derived fields; takes
// effect from the next step.
func (net *Network) SetLaw(law TransportLaw) {
	net.law = law
	for _, sg := range net.Segs {
		sg.updateDerived(law)
	}
}

// CopyZ returns a deep copy of every segment's bed elevation.
func (net *Network) CopyZ() [][]float64 {
	zs := make([][]float64, len(net.Segs))
	for k, sg := range net.Segs {
		cpy := make([]float64, len(sg.Z))
		copy(cpy, sg.Z)
		zs[k] = cpy
	}
	return zs
}

func (net *Network) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" Network.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(net); err != nil {
		return fmt.Errorf(" Network.SaveGob %v", err)
	}
	return nil
}

// LoadGobNetwork restores a snapshot. Closures are not serialized; the
// caller re-supplies the transport law (nil restores the stock
// threshold-width closure).
func LoadGobNetwork(fp string, law TransportLaw) (*Network, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf(" LoadGobNetwork %v", err)
	}
	defer f.Close()
	var net Network
	if err := gob.NewDecoder(f).Decode(&net); err != nil {
		return nil, fmt.Errorf(" LoadGobNetwork %v", err)
	}
	for k, uu := range net.Upstream {
		if uu == nil { // gob decodes empty adjacency as nil
			net.Upstream[k] = []int{}
		}
	}
	if law == nil {
		law = DefaultThresholdWidth()
	}
	net.SetLaw(law)
	return &net, nil
}
