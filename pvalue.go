package gfp

import (
	"github.com/pkg/errors"
)

// Squeeze reduces a two-dimensional probe to a vector. It fails with
// ErrBadProbe unless the probe has exactly one non-trivial dimension or is
// a scalar.
func Squeeze(probe [][]float64) ([]float64, error) {
	switch {
	case len(probe) == 0:
		return nil, errors.Wrap(ErrBadProbe, "empty probe")
	case len(probe) == 1:
		return probe[0], nil
	}
	out := make([]float64, len(probe))
	for i, row := range probe {
		if len(row) != 1 {
			return nil, errors.Wrapf(ErrBadProbe, "%dx%d probe", len(probe), len(row))
		}
		out[i] = row[0]
	}
	return out, nil
}

// Pvalue computes the two-tailed empirical p-value of probe against each
// column of dist independently. A distribution value exactly equal to the
// probe counts toward both tails, so when the probe is one of dist's own
// rows the smallest attainable p-value is 2/nperm. Ties can inflate both
// tail counts past nperm/2; the result is clamped to 1.
func (t *Tester) Pvalue(dist [][]float64, probe []float64) ([]float64, error) {
	if len(dist) == 0 {
		return nil, errors.Wrap(ErrSizeMismatch, "empty distribution")
	}
	for i, row := range dist {
		if len(row) != len(probe) {
			return nil, errors.Wrapf(ErrSizeMismatch, "distribution row %d has %d columns, probe has %d", i, len(row), len(probe))
		}
	}
	t.warnSmall("distribution", len(dist))
	return pvalues(dist, probe), nil
}

// pvalues is Pvalue without validation or warnings; rows of dist must all
// have len(probe) columns.
func pvalues(dist [][]float64, probe []float64) []float64 {
	nperm := float64(len(dist))
	p := make([]float64, len(probe))
	for j, v := range probe {
		var ngt, nlt int
		for _, row := range dist {
			if row[j] >= v {
				ngt++
			}
			if row[j] <= v {
				nlt++
			}
		}
		pj := 2 * float64(min(ngt, nlt)) / nperm
		if pj > 1 {
			pj = 1
		}
		p[j] = pj
	}
	return p
}
