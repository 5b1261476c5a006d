package fluvtree

import (
	"github.com/maseology/mmaths/slice"
	"github.com/maseology/mmaths/topology"
)

const defaultPorosity = 0.35

// Build assembles a Network from per-segment geometry, flow and boundary
// data. ups and dns give, for every segment id, the ids draining into its
// first node and the id receiving its last node (-1 at the outlet); both are
// required and must agree. s0 imposes an upstream slope on every headwater
// id. xbl,zbl set the base-level datum pinning the outlet. A nil law gets
// the stock threshold-width closure.
func Build(ups [][]int, dns []int, x, z, q, b [][]float64, s0 map[int]float64, xbl, zbl float64, law TransportLaw) (*Network, error) {
	ns := len(dns)
	if ns == 0 {
		return nil, cfgErrf(-1, "no segments")
	}
	if len(ups) != ns || len(x) != ns || len(z) != ns || len(q) != ns || len(b) != ns {
		return nil, cfgErrf(-1, "per-segment inputs disagree on segment count: ups:%d dns:%d x:%d z:%d q:%d b:%d",
			len(ups), ns, len(x), len(z), len(q), len(b))
	}
	outlet, err := checkTopology(ups, dns)
	if err != nil {
		return nil, err
	}
	if law == nil {
		law = DefaultThresholdWidth()
	}

	segs := make([]*Segment, ns)
	for i := range segs {
		sg := &Segment{ID: i, X: x[i], Z: z[i], Q: q[i], B: b[i], Head: len(ups[i]) == 0}
		if sg.Head {
			v, ok := s0[i]
			if !ok {
				return nil, cfgErrf(i, "headwater segment missing upstream boundary slope")
			}
			sg.S0 = v
		}
		if err := sg.validate(); err != nil {
			return nil, err
		}
		segs[i] = sg
	}

	// topological ordering, headwaters first
	dn := make(map[int]int, ns)
	for i, d := range dns {
		dn[i] = d
	}
	order := topology.OrderFromToTree(dn, -1)

	// concurrent-safe rounds: a segment's round is its longest path from a
	// headwater, so every round's members are mutually independent
	outer := func() [][]int {
		var recurs func(i, l int)
		cnt := make(map[int]int, ns)
		recurs = func(i, l int) {
			if l >= cnt[i] {
				cnt[i] = l + 1
			}
			if d := dns[i]; d > -1 {
				recurs(d, cnt[i])
			}
		}
		for i := 0; i < ns; i++ {
			recurs(i, cnt[i])
		}

		mord, lord := slice.InvertMap(cnt)
		ord := make([][]int, len(lord))
		for i, k := range lord {
			cpy := make([]int, len(mord[k]))
			copy(cpy, mord[k])
			ord[i] = cpy
		}
		return ord
	}()

	offs, nz := make([]int, ns), 0
	for i, sg := range segs {
		offs[i] = nz
		nz += sg.Nodes()
	}

	upcpy := make([][]int, ns)
	for i, uu := range ups {
		upcpy[i] = append([]int{}, uu...)
	}
	dncpy := append([]int{}, dns...)

	net := &Network{
		Segs:     segs,
		Upstream: upcpy,
		Dseg:     dncpy,
		Order:    order,
		Outer:    outer,
		Offs:     offs,
		Nz:       nz,
		Outlet:   outlet,
		XBase:    xbl,
		ZBase:    zbl,
		Porosity: defaultPorosity,
		Theta:    1.,
		law:      law,
	}
	for _, sg := range segs {
		sg.updateDerived(law)
	}
	return net, nil
}

// checkTopology verifies the adjacency is a mutually-consistent DAG with
// exactly one sink, returning the outlet id.
func checkTopology(ups [][]int, dns []int) (int, error) {
	ns := len(dns)
	valid := func(i int) bool { return i >= 0 && i < ns }

	outlet := -1
	for i, d := range dns {
		if d == -1 {
			if outlet > -1 {
				return -1, topoErrf(i, "second outlet (first was segment %d)", outlet)
			}
			outlet = i
			continue
		}
		if !valid(d) {
			return -1, topoErrf(i, "downstream id %d out of range", d)
		}
		if d == i {
			return -1, topoErrf(i, "segment drains to itself")
		}
		found := false
		for _, u := range ups[d] {
			if u == i {
				found = true
				break
			}
		}
		if !found {
			return -1, topoErrf(i, "drains to segment %d, but %d does not list it upstream", d, d)
		}
	}
	if outlet == -1 {
		return -1, topoErrf(-1, "no outlet segment")
	}

	for i, uu := range ups {
		for j, u := range uu {
			if !valid(u) {
				return -1, topoErrf(i, "upstream id %d out of range", u)
			}
			if dns[u] != i {
				return -1, topoErrf(i, "lists segment %d upstream, but %d drains to %d", u, u, dns[u])
			}
			for _, v := range uu[:j] {
				if v == u {
					return -1, topoErrf(i, "lists segment %d upstream more than once", u)
				}
			}
		}
	}

	// every downstream walk must terminate (no cycles off the main line)
	for i := range dns {
		j, hops := i, 0
		for dns[j] != -1 {
			j = dns[j]
			if hops++; hops > ns {
				return -1, topoErrf(i, "downstream walk does not terminate at the outlet (cycle)")
			}
		}
	}
	return outlet, nil
}
