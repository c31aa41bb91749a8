package gfp

import (
	"math/rand"

	"github.com/pkg/errors"
)

// A SubjectPair holds one subject's null distributions for the two
// conditions. Rows are aligned: row i of A and row i of B come from the
// same relabeling draw, and row 0 is the true labeling.
type SubjectPair struct {
	A [][]float64
	B [][]float64
}

// Permute builds one subject's null distributions by pooling the subject's
// trials from both conditions and redrawing the condition labels without
// replacement, one independent draw per row. Trial counts may differ
// between conditions. Row 0 of both outputs is the per-condition trial-mean
// GFP of the unshuffled input. A nil rng draws a fresh seed.
func (t *Tester) Permute(a, b TrialSet, rng *rand.Rand) (SubjectPair, error) {
	if t.NPerm < 1 {
		return SubjectPair{}, errors.Errorf("nperm must be positive, got %d", t.NPerm)
	}
	if a.NumSamples() != b.NumSamples() {
		return SubjectPair{}, errors.Wrapf(ErrSizeMismatch, "conditions have %d and %d samples", a.NumSamples(), b.NumSamples())
	}
	if a.NumTrials() == 0 || b.NumTrials() == 0 {
		return SubjectPair{}, errors.Wrapf(ErrSizeMismatch, "conditions have %d and %d trials", a.NumTrials(), b.NumTrials())
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	nA, nB := a.NumTrials(), b.NumTrials()
	pair := SubjectPair{A: make([][]float64, t.NPerm), B: make([][]float64, t.NPerm)}
	pair.A[0] = meanGFP(a, seq(nA))
	pair.B[0] = meanGFP(b, seq(nB))

	pool := seq(nA + nB)
	for i := 1; i < t.NPerm; i++ {
		rng.Shuffle(len(pool), func(x, y int) { pool[x], pool[y] = pool[y], pool[x] })
		pair.A[i] = pooledMeanGFP(a, b, pool[:nA])
		pair.B[i] = pooledMeanGFP(a, b, pool[nA:])
	}
	return pair, nil
}
