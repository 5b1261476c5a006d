package fluvtree

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/maseology/mmio"
)

// WriteProfilesCSV writes the joined long profile, one row per node, ordered
// headwaters to outlet, so any downstream walk to base level reads
// contiguously.
func (net *Network) WriteProfilesCSV(fp string) {
	is, xs, zs, qs, bs := make([]interface{}, 0, net.Nz), make([]interface{}, 0, net.Nz), make([]interface{}, 0, net.Nz), make([]interface{}, 0, net.Nz), make([]interface{}, 0, net.Nz)
	for _, k := range net.Order {
		sg := net.Segs[k]
		for i := range sg.X {
			is = append(is, sg.ID)
			xs = append(xs, sg.X[i])
			zs = append(zs, sg.Z[i])
			qs = append(qs, sg.Q[i])
			bs = append(bs, sg.B[i])
		}
	}
	mmio.WriteCSV(fp, "segment,x,z,q,b", is, xs, zs, qs, bs)
}

// SaveProfileBins dumps every segment's bed elevation as little-endian
// float32, one file per segment.
func (net *Network) SaveProfileBins(prfx string) error {
	for _, sg := range net.Segs {
		if err := writeFloats(fmt.Sprintf("%sseg%d.z.bin", prfx, sg.ID), sg.Z); err != nil {
			return err
		}
	}
	return nil
}

func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}
