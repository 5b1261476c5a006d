package main

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

// a headwater block without s0 must be distinguishable from s0 = 0
func TestControlFileS0Optionality(t *testing.T) {
	var cfg config
	_, err := toml.Decode(`
nt = 10
dt = 3.15e7

[[segment]]
id = 0
upstream = []
downstream = 1
x = [0.0, 500.0]
q = 10.0
b = 100.0
s0 = 0.0

[[segment]]
id = 1
upstream = [0]
downstream = -1
x = [500.0, 1000.0]
q = 10.0
b = 100.0
`, &cfg)
	require.NoError(t, err)
	require.Len(t, cfg.Segment, 2)
	require.NotNil(t, cfg.Segment[0].S0)
	require.Equal(t, 0., *cfg.Segment[0].S0)
	require.Nil(t, cfg.Segment[1].S0)
}
