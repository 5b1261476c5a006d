package fluvtree

import "fmt"

// Checkandprint summarizes the network topology and its computational
// ordering to stdout.
func (net *Network) Checkandprint() {
	fmt.Printf("   %d segments (%d nodes) in %d rounds, computationally ordered:\n", len(net.Segs), net.Nz, len(net.Outer))
	println("        ID        nodes  drains to")
	for k, inner := range net.Outer {
		fmt.Printf("    round %d (%d)\n", k+1, len(inner))
		for _, is := range inner {
			sg := net.Segs[is]
			if d := net.Dseg[is]; d < 0 {
				fmt.Printf("%10d%13d  base level (%.1f at x=%.1f)\n", sg.ID, sg.Nodes(), net.ZBase, net.XBase)
			} else {
				fmt.Printf("%10d%13d  segment %d\n", sg.ID, sg.Nodes(), d)
			}
		}
	}
}
