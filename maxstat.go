package gfp

import (
	"gonum.org/v1/gonum/floats"
)

// MaxStatCorrect applies the max-statistic multiple-comparisons correction
// to the group-level null distributions. Every sample's real group
// difference is tested against the null distributions of the time-course
// maximum and minimum of the difference, so a single pair of extreme-value
// distributions controls family-wise error for the whole series. Central
// samples can push 2*min(ndmax, ndmin) past nperm; the excess is a property
// of the method and is clamped to 1.
func (t *Tester) MaxStatCorrect(groupA, groupB [][]float64) ([]float64, error) {
	if err := checkAligned(groupA, groupB); err != nil {
		return nil, err
	}
	t.warnSmall("distribution", len(groupA))
	diff := rowDiff(groupA, groupB)
	real := diff[0]
	if len(real) == 0 {
		return []float64{}, nil
	}

	nperm := len(diff)
	dmax := make([]float64, nperm)
	dmin := make([]float64, nperm)
	for i, row := range diff {
		dmax[i] = floats.Max(row)
		dmin[i] = floats.Min(row)
	}

	p := make([]float64, len(real))
	for j, v := range real {
		var ndmax, ndmin int
		for i := 0; i < nperm; i++ {
			if dmax[i] >= v {
				ndmax++
			}
			if dmin[i] <= v {
				ndmin++
			}
		}
		pj := 2 * float64(min(ndmax, ndmin)) / float64(nperm)
		if pj > 1 {
			pj = 1
		}
		p[j] = pj
	}
	return p, nil
}
