package gfp

import (
	"math"

	moremath "github.com/aclements/go-moremath/stats"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// A Summary describes the pooled spread of a null distribution's
// permutation rows.
type Summary struct {
	Mean   float64
	Std    float64
	Median float64
	Q1, Q3 float64

	NPerm    int
	NSamples int
}

// Describe pools a null distribution's permutation rows (row 0, the real
// labeling, excluded) and summarizes their spread.
func Describe(dist [][]float64) (Summary, error) {
	if len(dist) < 2 {
		return Summary{}, errors.Errorf("distribution has %d rows, need at least 2", len(dist))
	}
	pooled := make([]float64, 0, (len(dist)-1)*len(dist[0]))
	for _, row := range dist[1:] {
		pooled = append(pooled, row...)
	}
	if len(pooled) == 0 {
		return Summary{}, errors.New("distribution has no columns")
	}

	s := Summary{NPerm: len(dist), NSamples: len(dist[0])}
	s.Mean = moremath.Mean(pooled)
	s.Std = math.Sqrt(moremath.Variance(pooled))
	var err error
	if s.Median, err = stats.Median(pooled); err != nil {
		return Summary{}, errors.Wrap(err, "median")
	}
	if s.Q1, err = stats.Percentile(pooled, 25); err != nil {
		return Summary{}, errors.Wrap(err, "first quartile")
	}
	if s.Q3, err = stats.Percentile(pooled, 75); err != nil {
		return Summary{}, errors.Wrap(err, "third quartile")
	}
	return s, nil
}
