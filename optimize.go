package fluvtree

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

const ofPenalty = 9999. // objective returned for realizations that fail to evolve

// ClosureRange bounds the threshold-width parameter search: KQs is sampled
// log-linearly, P linearly.
type ClosureRange struct {
	KQsMin, KQsMax float64
	PMin, PMax     float64
}

// DefaultClosureRange spans the transport coefficients reported for
// gravel-bed rivers.
func DefaultClosureRange() ClosureRange {
	return ClosureRange{KQsMin: 1e-4, KQsMax: 1., PMin: 1., PMax: 1.5}
}

func (cr ClosureRange) par2(u []float64) (kqs, p float64) {
	kqs = mmaths.LogLinearTransform(cr.KQsMin, cr.KQsMax, u[0])
	p = mmaths.LinearTransform(cr.PMin, cr.PMax, u[1])
	return
}

func flatten(zs [][]float64) []float64 {
	n := 0
	for _, z := range zs {
		n += len(z)
	}
	o := make([]float64, 0, n)
	for _, z := range zs {
		o = append(o, z...)
	}
	return o
}

// closureObjective scores one hypercube sample: build a fresh network for
// the sampled law, evolve it, and return whole-network RMSE against obs.
// Realizations that fail to build or evolve are penalized, never fatal;
// SCE may call this from concurrent complexes so it carries no shared state.
func closureObjective(mk func(law TransportLaw) (*Network, error), o []float64, nt int, dt, intermittency float64, cr ClosureRange) func(u []float64) float64 {
	return func(u []float64) float64 {
		kqs, p := cr.par2(u)
		law := ThresholdWidth{KQs: kqs, P: p, Intermittency: intermittency}
		net, err := mk(law)
		if err != nil {
			return ofPenalty
		}
		if err := net.Run(nt, dt, nil); err != nil {
			return ofPenalty
		}
		return objfunc.RMSE(o, flatten(net.CopyZ()))
	}
}

// CalibrateClosure searches threshold-width parameters against observed bed
// elevations by shuffled complex evolution. mk must return a freshly-built
// network for the given law; obs holds one elevation array per segment id,
// node-for-node with the network's grids. The network is evolved nt steps of
// dt per realization and scored by whole-network RMSE.
func CalibrateClosure(mk func(law TransportLaw) (*Network, error), obs [][]float64, nt int, dt, intermittency float64, cr ClosureRange) (ThresholdWidth, float64, error) {
	gen := closureObjective(mk, flatten(obs), nt, dt, intermittency, cr)

	fmt.Println(" optimizing..")
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	uFinal, ofFinal := glbopt.SCE(32, 2, rng, gen, true)
	if ofFinal >= ofPenalty {
		return ThresholdWidth{}, 0., fmt.Errorf(" CalibrateClosure: no realization evolved")
	}

	kqs, p := cr.par2(uFinal)
	fmt.Printf("\nfinal closure:\n\tkQs:\t%v\n\tP:\t%v\n\tRMSE:\t%v\n\n", kqs, p, ofFinal)
	return ThresholdWidth{KQs: kqs, P: p, Intermittency: intermittency}, ofFinal, nil
}
