package fluvtree

import "fmt"

// ConfigurationError reports malformed or missing initialization data:
// array-length mismatches, non-monotone grids, absent boundary conditions.
type ConfigurationError struct {
	Seg int // offending segment id, -1 when network-wide
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Seg < 0 {
		return fmt.Sprintf("configuration: %s", e.Msg)
	}
	return fmt.Sprintf("configuration: segment %d: %s", e.Seg, e.Msg)
}

func cfgErrf(seg int, format string, a ...interface{}) error {
	return &ConfigurationError{Seg: seg, Msg: fmt.Sprintf(format, a...)}
}

// TopologyError reports inconsistent network adjacency: one-way links,
// cycles, or anything other than a single outlet.
type TopologyError struct {
	Seg int
	Msg string
}

func (e *TopologyError) Error() string {
	if e.Seg < 0 {
		return fmt.Sprintf("topology: %s", e.Msg)
	}
	return fmt.Sprintf("topology: segment %d: %s", e.Seg, e.Msg)
}

func topoErrf(seg int, format string, a ...interface{}) error {
	return &TopologyError{Seg: seg, Msg: fmt.Sprintf(format, a...)}
}

// NumericalError reports a failed network solve. The failed step's solution
// is never applied, so the network remains usable at its last valid state.
type NumericalError struct {
	Step int
	Msg  string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("numerical: step %d: %s", e.Step, e.Msg)
}
