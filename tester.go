package gfp

import (
	"go.uber.org/zap"
)

// minPerm is the permutation count below which results are considered
// unreliable. Smaller runs still complete, with a warning.
const minPerm = 100

// A Tester runs permutation tests with a fixed configuration.
type Tester struct {
	// NPerm is the number of rows in every null distribution, including
	// the real labeling at row 0. Must be at least 1.
	NPerm int

	// Alpha is the supra-threshold level used by ClusterCorrect.
	Alpha float64

	// Seed seeds the per-subject random streams, so that sequential and
	// parallel runs draw identical partitions. A negative seed picks a
	// fresh one on every run.
	Seed int64

	// Workers bounds the number of concurrently permuted subjects.
	// Values below 2 mean sequential execution.
	Workers int

	// Verbose enables progress and summary logging.
	Verbose bool

	// Logger receives warnings and, when Verbose, progress. Nil disables
	// logging.
	Logger *zap.Logger
}

func (t *Tester) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func (t *Tester) workers() int {
	if t.Workers > 1 {
		return t.Workers
	}
	return 1
}

func (t *Tester) warnSmall(what string, n int) {
	if n < minPerm {
		t.logger().Warn("permutation count below recommended minimum",
			zap.String("what", what), zap.Int("n", n), zap.Int("recommended", minPerm))
	}
}
