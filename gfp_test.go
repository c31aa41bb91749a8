package gfp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGFP(t *testing.T) {
	// Channels {1,3} at sample 0 have mean 2 and spatial deviation 1;
	// channels {2,6} at sample 1 have deviation 2.
	trial := [][]float64{{1, 2}, {3, 6}}
	assert.InDeltaSlice(t, []float64{1, 2}, GFP(trial), 1e-12)

	assert.Nil(t, GFP(nil))
}

func TestMeanGFP(t *testing.T) {
	ts := randomTrialSet(3, 4, 5, rand.New(rand.NewSource(3)))

	got := meanGFP(ts, seq(ts.NumTrials()))
	require.Len(t, got, ts.NumSamples())

	// Average the per-trial GFP computed through the exported reduction.
	want := make([]float64, ts.NumSamples())
	for k := 0; k < ts.NumTrials(); k++ {
		g := GFP(trialMatrix(ts, k))
		for j, v := range g {
			want[j] += v / float64(ts.NumTrials())
		}
	}
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestTrialSetDims(t *testing.T) {
	ts := randomTrialSet(2, 6, 3, rand.New(rand.NewSource(4)))
	assert.Equal(t, 2, ts.NumChannels())
	assert.Equal(t, 6, ts.NumSamples())
	assert.Equal(t, 3, ts.NumTrials())

	var empty TrialSet
	assert.Equal(t, 0, empty.NumChannels())
	assert.Equal(t, 0, empty.NumSamples())
	assert.Equal(t, 0, empty.NumTrials())
}

// randomTrialSet fills a [channel][sample][trial] set with uniform noise.
func randomTrialSet(nChan, nSamp, nTrial int, rng *rand.Rand) TrialSet {
	ts := make(TrialSet, nChan)
	for c := range ts {
		ts[c] = make([][]float64, nSamp)
		for j := range ts[c] {
			ts[c][j] = make([]float64, nTrial)
			for k := range ts[c][j] {
				ts[c][j][k] = 2*rng.Float64() - 1
			}
		}
	}
	return ts
}

// constGFPTrialSet builds a two-channel set whose every trial has global
// field power g at every sample.
func constGFPTrialSet(nSamp, nTrial int, g float64) TrialSet {
	ts := make(TrialSet, 2)
	for c := range ts {
		sign := 1.0
		if c == 1 {
			sign = -1
		}
		ts[c] = make([][]float64, nSamp)
		for j := range ts[c] {
			ts[c][j] = make([]float64, nTrial)
			for k := range ts[c][j] {
				ts[c][j][k] = sign * g
			}
		}
	}
	return ts
}

// trialMatrix extracts trial k as a channel-by-sample matrix.
func trialMatrix(ts TrialSet, k int) [][]float64 {
	m := make([][]float64, ts.NumChannels())
	for c := range m {
		m[c] = make([]float64, ts.NumSamples())
		for j := range m[c] {
			m[c][j] = ts[c][j][k]
		}
	}
	return m
}
