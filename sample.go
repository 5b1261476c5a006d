package fluvtree

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// SampleClosure sweeps the closure box with a Latin hypercube, scoring every
// realization against observed bed elevations (whole-network RMSE after nt
// steps of dt). Sampled laws and objectives are returned and, when csvfp is
// non-empty, written as CSV.
func SampleClosure(mk func(law TransportLaw) (*Network, error), obs [][]float64, nt int, dt, intermittency float64, cr ClosureRange, nsmpl int, csvfp string) ([]ThresholdWidth, []float64, error) {
	o := flatten(obs)

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, nsmpl, 2, false)

	laws, ofs := make([]ThresholdWidth, nsmpl), make([]float64, nsmpl)
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, 2)
		for j := 0; j < 2; j++ {
			ut[j] = sp.U[j][k]
		}
		kqs, p := cr.par2(ut)
		laws[k] = ThresholdWidth{KQs: kqs, P: p, Intermittency: intermittency}

		net, err := mk(laws[k])
		if err != nil {
			return nil, nil, err
		}
		if err := net.Run(nt, dt, nil); err != nil {
			ofs[k] = ofPenalty
		} else {
			ofs[k] = objfunc.RMSE(o, flatten(net.CopyZ()))
		}
		fmt.Print(".")
	}
	fmt.Println()

	if len(csvfp) > 0 {
		ik, ip, io := make([]interface{}, nsmpl), make([]interface{}, nsmpl), make([]interface{}, nsmpl)
		for k := 0; k < nsmpl; k++ {
			ik[k] = laws[k].KQs
			ip[k] = laws[k].P
			io[k] = ofs[k]
		}
		mmio.WriteCSV(csvfp, "kqs,p,rmse", ik, ip, io)
	}
	return laws, ofs, nil
}
