// Package gfp implements nonparametric permutation testing of EEG global
// field power between two conditions or groups of subjects.
//
// The test relabels trials within each subject to build empirical null
// distributions of the mean GFP time course, averages those across subjects,
// and derives two-tailed p-values per time sample. Cluster-mass and
// max-statistic corrections control family-wise error across the sample
// sequence.
package gfp

import (
	"gonum.org/v1/gonum/stat"
)

// A TrialSet holds one subject's trials for one condition, indexed as
// [channel][sample][trial]. It is never mutated.
type TrialSet [][][]float64

// NumChannels returns the number of channels.
func (ts TrialSet) NumChannels() int { return len(ts) }

// NumSamples returns the number of time samples.
func (ts TrialSet) NumSamples() int {
	if len(ts) == 0 {
		return 0
	}
	return len(ts[0])
}

// NumTrials returns the number of trials.
func (ts TrialSet) NumTrials() int {
	if ts.NumSamples() == 0 {
		return 0
	}
	return len(ts[0][0])
}

// GFP reduces a channel-by-sample trial to its global field power, the
// spatial standard deviation across channels at each sample.
func GFP(trial [][]float64) []float64 {
	if len(trial) == 0 {
		return nil
	}
	out := make([]float64, len(trial[0]))
	col := make([]float64, len(trial))
	for j := range out {
		for c, channel := range trial {
			col[c] = channel[j]
		}
		out[j] = stat.PopStdDev(col, nil)
	}
	return out
}

// trialGFP computes the global field power of trial t at every sample.
func trialGFP(ts TrialSet, t int, out []float64) {
	col := make([]float64, len(ts))
	for j := range out {
		for c := range ts {
			col[c] = ts[c][j][t]
		}
		out[j] = stat.PopStdDev(col, nil)
	}
}

// meanGFP averages the per-trial GFP over the given trials.
func meanGFP(ts TrialSet, trials []int) []float64 {
	mean := make([]float64, ts.NumSamples())
	g := make([]float64, ts.NumSamples())
	for i, t := range trials {
		trialGFP(ts, t, g)
		for j, v := range g {
			mean[j] += (v - mean[j]) / float64(i+1)
		}
	}
	return mean
}

// pooledMeanGFP averages the per-trial GFP over pooled trial indices, where
// an index below a.NumTrials() selects a trial of a and the rest select
// trials of b.
func pooledMeanGFP(a, b TrialSet, idx []int) []float64 {
	nA := a.NumTrials()
	mean := make([]float64, a.NumSamples())
	g := make([]float64, a.NumSamples())
	for i, t := range idx {
		if t < nA {
			trialGFP(a, t, g)
		} else {
			trialGFP(b, t-nA, g)
		}
		for j, v := range g {
			mean[j] += (v - mean[j]) / float64(i+1)
		}
	}
	return mean
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
