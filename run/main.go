package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/BurntSushi/toml"
	fluvtree "github.com/MNiMORPH/FluvTree"
	"github.com/maseology/mmio"
)

type segmentConfig struct {
	ID         int       `toml:"id"`
	Upstream   []int     `toml:"upstream"`
	Downstream int       `toml:"downstream"` // -1 at the outlet
	X          []float64 `toml:"x"`
	Z          []float64 `toml:"z"` // optional, defaults to zeros
	Q          float64   `toml:"q"` // uniform within the segment
	B          float64   `toml:"b"`
	S0         *float64  `toml:"s0"` // required for headwater segments
}

type config struct {
	Nt            int             `toml:"nt"`
	Dt            float64         `toml:"dt"`
	Theta         float64         `toml:"theta"`
	Porosity      float64         `toml:"porosity"`
	KQs           float64         `toml:"kqs"`
	P             float64         `toml:"p"`
	Intermittency float64         `toml:"intermittency"`
	XBase         float64         `toml:"xbase"`
	ZBase         float64         `toml:"zbase"`
	OutCSV        string          `toml:"outcsv"`
	OutPrfx       string          `toml:"outprfx"`
	Segment       []segmentConfig `toml:"segment"`
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: fluvtree <control.toml>")
	}

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	cfg := config{Theta: 1., Porosity: 0.35, KQs: 0.041, P: 7. / 6., Intermittency: 1.}
	md, err := toml.DecodeFile(flag.Arg(0), &cfg)
	if err != nil {
		log.Fatalf(" control file load: %v", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		log.Fatalf(" unrecognized control options: %v", und)
	}
	if cfg.Nt <= 0 || cfg.Dt <= 0. {
		log.Fatalf(" control file needs positive nt and dt (got nt=%d dt=%g)", cfg.Nt, cfg.Dt)
	}

	ns := len(cfg.Segment)
	ups, dns := make([][]int, ns), make([]int, ns)
	xs, zs, qs, bs := make([][]float64, ns), make([][]float64, ns), make([][]float64, ns), make([][]float64, ns)
	s0 := make(map[int]float64, ns)
	for _, sc := range cfg.Segment {
		if sc.ID < 0 || sc.ID >= ns {
			log.Fatalf(" segment id %d out of range (need 0..%d)", sc.ID, ns-1)
		}
		if xs[sc.ID] != nil {
			log.Fatalf(" segment id %d given twice", sc.ID)
		}
		n := len(sc.X)
		z := sc.Z
		if z == nil {
			z = make([]float64, n)
		}
		q, b := make([]float64, n), make([]float64, n)
		for i := 0; i < n; i++ {
			q[i], b[i] = sc.Q, sc.B
		}
		ups[sc.ID], dns[sc.ID] = sc.Upstream, sc.Downstream
		xs[sc.ID], zs[sc.ID], qs[sc.ID], bs[sc.ID] = sc.X, z, q, b
		if len(sc.Upstream) == 0 {
			if sc.S0 == nil {
				log.Fatalf(" headwater segment %d needs s0", sc.ID)
			}
			s0[sc.ID] = *sc.S0
		}
	}

	law := fluvtree.ThresholdWidth{KQs: cfg.KQs, P: cfg.P, Intermittency: cfg.Intermittency}
	net, err := fluvtree.Build(ups, dns, xs, zs, qs, bs, s0, cfg.XBase, cfg.ZBase, law)
	if err != nil {
		log.Fatalf(" network build: %v", err)
	}
	net.Theta, net.Porosity = cfg.Theta, cfg.Porosity
	net.Checkandprint()
	tt.Print("network build complete\n")

	if err := net.Evolve(cfg.Nt, cfg.Dt); err != nil {
		log.Fatalf(" evolve: %v", err)
	}

	if len(cfg.OutCSV) > 0 {
		net.WriteProfilesCSV(cfg.OutCSV)
	}
	if len(cfg.OutPrfx) > 0 {
		if err := net.SaveProfileBins(cfg.OutPrfx); err != nil {
			log.Fatalf(" output: %v", err)
		}
		if err := net.SaveGob(cfg.OutPrfx + "network.gob"); err != nil {
			log.Fatalf(" output: %v", err)
		}
	}
}
