package fluvtree

import (
	"fmt"

	"github.com/gosuri/uiprogress"
)

// Run advances nt steps of size dt. rec, when non-nil, receives the step
// index, simulation time and a copy of every segment's bed elevation after
// each successful step. The first error stops the run with the network left
// at its last valid state.
func (net *Network) Run(nt int, dt float64, rec func(step int, time float64, z [][]float64)) error {
	if nt < 0 {
		return cfgErrf(-1, "negative step count %d", nt)
	}
	for i := 0; i < nt; i++ {
		if err := net.AdvanceOneStep(dt); err != nil {
			return err
		}
		if rec != nil {
			rec(net.Step, net.Time, net.CopyZ())
		}
	}
	return nil
}

// Evolve is Run with a progress bar, for long interactive runs.
func (net *Network) Evolve(nt int, dt float64) error {
	uiprogress.Start()
	bar := uiprogress.AddBar(nt).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("step %d", net.Step)
	})
	for i := 0; i < nt; i++ {
		if err := net.AdvanceOneStep(dt); err != nil {
			uiprogress.Stop()
			return err
		}
		bar.Incr()
	}
	uiprogress.Stop()
	return nil
}
