package search

import "time"

// Options tunes the search driver. Mirrors spec.md's SolverOptions: a
// plain struct with a DefaultOptions constructor, the same pattern
// flow.FlowOptions uses for its own tunable knobs, rather than variadic
// functional options (those are reserved in this codebase's idiom for
// packages with many optional hooks).
type Options struct {
	// Verbosity gates Monitor's progress output; 0 disables it entirely.
	Verbosity int
	// SingleThread forces Concurrency to 1 regardless of GOMAXPROCS.
	SingleThread bool
	// DistW and HeurW weight the priority formula: distance*DistW +
	// heuristic*HeurW.
	DistW, HeurW uint32
	// Alt is reserved for interface parity with the source's alternate
	// solver selector; this driver only implements the one search
	// strategy described in spec.md §4.H, so Alt has no effect.
	Alt bool
	// Monitor enables the periodic progress goroutine.
	Monitor bool
	// Debug prints the popped state before each expansion when true and
	// Verbosity > 0.
	Debug bool
	// MaxTime bounds wall-clock search time; 0 means unlimited.
	MaxTime time.Duration
}

// DefaultOptions returns the driver's default tuning.
func DefaultOptions() Options {
	return Options{
		Verbosity: 0,
		DistW:     1,
		HeurW:     3,
		Monitor:   true,
	}
}
