package gfp

import (
	"golang.org/x/sync/errgroup"
)

// A cluster is a maximal run of consecutive supra-threshold samples,
// spanning start..end inclusive.
type cluster struct {
	start, end int
}

func (c cluster) size() int { return c.end - c.start + 1 }

// ClusterCorrect applies the cluster-mass multiple-comparisons correction
// to the group-level null distributions. Each row's uncorrected p-value
// series is thresholded at Alpha; the null distribution of maximal
// supra-threshold run lengths across all rows assigns a corrected p-value
// to every sample of each real-data cluster. Samples outside row 0's
// clusters keep p-value 1, and if row 0 has no supra-threshold samples the
// whole series is 1.
func (t *Tester) ClusterCorrect(groupA, groupB [][]float64) ([]float64, error) {
	if err := checkAligned(groupA, groupB); err != nil {
		return nil, err
	}
	t.warnSmall("distribution", len(groupA))
	diff := rowDiff(groupA, groupB)
	nperm := len(diff)
	out := ones(len(diff[0]))

	realClusters := clusters(pvalues(diff, diff[0]), t.Alpha)
	if len(realClusters) == 0 {
		return out, nil
	}

	maxSizes := make([]int, nperm)
	maxSizes[0] = maxClusterSize(realClusters)
	var g errgroup.Group
	g.SetLimit(t.workers())
	for i := 1; i < nperm; i++ {
		i := i
		g.Go(func() error {
			p := pvalues(diff, diff[i])
			maxSizes[i] = maxClusterSize(clusters(p, t.Alpha))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, cl := range realClusters {
		var count int
		for _, m := range maxSizes {
			if m >= cl.size() {
				count++
			}
		}
		pc := float64(count) / float64(nperm)
		for j := cl.start; j <= cl.end; j++ {
			out[j] = pc
		}
	}
	return out, nil
}

// clusters scans p for maximal runs of values below alpha.
func clusters(p []float64, alpha float64) []cluster {
	var out []cluster
	inRun := false
	var start int
	for j, v := range p {
		supra := v < alpha
		switch {
		case supra && !inRun:
			start, inRun = j, true
		case !supra && inRun:
			out = append(out, cluster{start: start, end: j - 1})
			inRun = false
		}
	}
	if inRun {
		out = append(out, cluster{start: start, end: len(p) - 1})
	}
	return out
}

func maxClusterSize(cs []cluster) int {
	var max int
	for _, c := range cs {
		if c.size() > max {
			max = c.size()
		}
	}
	return max
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for j := range out {
		out[j] = 1
	}
	return out
}
