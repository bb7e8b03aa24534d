package engine

import (
	"log/slog"
	"runtime"
	"time"

	"source-irfitter/internal/match"
)

// Config controls a run. Cancelling the context given to Run only stops
// new jobs from starting; jobs already running finish, and Run then returns
// the context error with no result.
type Config struct {
	// Jobs bounds the number of type jobs matched concurrently.
	Jobs int
	// Heuristic enables line-overlap matching of compiler-generated nodes.
	Heuristic bool
	// Positional enables the nearest-candidate fallback.
	Positional bool
	// MaxSuggestions bounds the suggestions attached to unmatched records.
	MaxSuggestions int

	Logger   *slog.Logger
	Recorder Recorder
}

// DefaultConfig returns a config with every phase enabled and one job per
// available CPU.
func DefaultConfig() Config {
	return Config{
		Jobs:           runtime.GOMAXPROCS(0),
		Heuristic:      true,
		Positional:     true,
		MaxSuggestions: 3,
	}
}

func (c Config) matchOptions(logger *slog.Logger) match.Options {
	return match.Options{
		Heuristic:      c.Heuristic,
		Positional:     c.Positional,
		MaxSuggestions: c.MaxSuggestions,
		Logger:         logger,
	}
}

// Recorder receives run statistics. Implementations must be safe for
// concurrent use: RecordJob is called from job goroutines.
type Recorder interface {
	RecordJob(job string, elapsed time.Duration, records []match.Record)
	RecordFailure(unit string, side Side)
	RecordResult(records []match.Record)
}

type nopRecorder struct{}

func (nopRecorder) RecordJob(string, time.Duration, []match.Record) {}
func (nopRecorder) RecordFailure(string, Side)                       {}
func (nopRecorder) RecordResult([]match.Record)                      {}
