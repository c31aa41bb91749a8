package gfp

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A Result is the outcome of a group-level permutation run.
type Result struct {
	// P holds the uncorrected two-tailed p-value per time sample.
	P []float64

	// GroupA and GroupB are the group-level null distributions, averaged
	// across subjects row by row. Row 0 is the true group-mean GFP per
	// condition.
	GroupA [][]float64
	GroupB [][]float64

	// PerSubject holds the per-subject null distributions, in input order.
	PerSubject []SubjectPair
}

// Run permutes every subject independently and aggregates the group-level
// null distributions and uncorrected p-value series. a and b hold one
// TrialSet per subject, in the same subject order. A failure for any
// subject fails the whole run.
func (t *Tester) Run(ctx context.Context, a, b []TrialSet) (*Result, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrSubjectCountMismatch, "%d vs %d subjects", len(a), len(b))
	}
	if len(a) == 0 {
		return nil, errors.Wrap(ErrSubjectCountMismatch, "no subjects")
	}
	t.warnSmall("permutations", t.NPerm)

	pairs := make([]SubjectPair, len(a))
	err := t.mapSubjects(ctx, len(a), func(s int, rng *rand.Rand) error {
		pair, err := t.Permute(a[s], b[s], rng)
		if err != nil {
			return errors.Wrapf(err, "subject %d", s)
		}
		pairs[s] = pair
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t.aggregate(pairs)
}

// mapSubjects runs fn once per subject index, bounded by Workers. Every
// subject gets its own seeded random stream, so sequential and parallel
// runs draw identical partitions.
func (t *Tester) mapSubjects(ctx context.Context, n int, fn func(s int, rng *rand.Rand) error) error {
	seed := t.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.workers())
	for s := 0; s < n; s++ {
		s := s
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if t.Verbose {
				t.logger().Info("permuting subject", zap.Int("subject", s))
			}
			return fn(s, rand.New(rand.NewSource(seed+int64(s))))
		})
	}
	return g.Wait()
}

func (t *Tester) aggregate(pairs []SubjectPair) (*Result, error) {
	// Permute checks A against B within one subject only; subjects must
	// also agree with each other before their rows can be averaged.
	n := len(pairs[0].A[0])
	for s, pair := range pairs {
		if len(pair.A[0]) != n || len(pair.B[0]) != n {
			return nil, errors.Wrapf(ErrSizeMismatch, "subject %d has %d samples, want %d", s, len(pair.A[0]), n)
		}
	}
	groupA := meanAcross(pairs, func(p SubjectPair) [][]float64 { return p.A })
	groupB := meanAcross(pairs, func(p SubjectPair) [][]float64 { return p.B })
	diff := rowDiff(groupA, groupB)
	if t.Verbose {
		if s, err := Describe(diff); err == nil {
			t.logger().Info("group difference null distribution",
				zap.Float64("mean", s.Mean), zap.Float64("std", s.Std),
				zap.Float64("median", s.Median), zap.Int("nperm", s.NPerm))
		}
	}
	p, err := t.Pvalue(diff, diff[0])
	if err != nil {
		return nil, err
	}
	return &Result{P: p, GroupA: groupA, GroupB: groupB, PerSubject: pairs}, nil
}

// meanAcross averages one condition's null distributions across subjects,
// row by row.
func meanAcross(pairs []SubjectPair, get func(SubjectPair) [][]float64) [][]float64 {
	first := get(pairs[0])
	out := make([][]float64, len(first))
	for i := range out {
		row := make([]float64, len(first[i]))
		for s, pair := range pairs {
			for j, v := range get(pair)[i] {
				row[j] += (v - row[j]) / float64(s+1)
			}
		}
		out[i] = row
	}
	return out
}

func rowDiff(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		row := make([]float64, len(a[i]))
		for j := range row {
			row[j] = a[i][j] - b[i][j]
		}
		out[i] = row
	}
	return out
}

func checkAligned(groupA, groupB [][]float64) error {
	if len(groupA) == 0 || len(groupA) != len(groupB) {
		return errors.Wrapf(ErrSizeMismatch, "group distributions have %d and %d rows", len(groupA), len(groupB))
	}
	n := len(groupA[0])
	for i := range groupA {
		if len(groupA[i]) != n || len(groupB[i]) != n {
			return errors.Wrapf(ErrSizeMismatch, "row %d has %d and %d columns, want %d", i, len(groupA[i]), len(groupB[i]), n)
		}
	}
	return nil
}
