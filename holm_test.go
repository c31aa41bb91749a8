package gfp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolm(t *testing.T) {
	pvals := []float64{0.0003, 0.003, 0.054, 0.32, 0.50}
	rejects := Holm(pvals, func(f float64) float64 { return f }, 0.05)
	assert.Equal(t, []float64{0.0003, 0.003}, rejects)

	assert.Empty(t, Holm([]float64{0.04, 0.2}, func(f float64) float64 { return f }, 0.05))
}

func TestHolmCorrect(t *testing.T) {
	got := HolmCorrect([]float64{0.01, 0.04, 0.03, 0.005})
	require.Len(t, got, 4)
	// Step-down: 0.005*4=0.02, 0.01*3=0.03, 0.03*2=0.06, then 0.04*1 is
	// lifted to the running maximum.
	assert.InDeltaSlice(t, []float64{0.03, 0.06, 0.06, 0.02}, got, 1e-12)

	// Adjusted values never drop below the raw ones and never exceed 1.
	raw := []float64{0.9, 0.5, 0.2, 0.7}
	adj := HolmCorrect(raw)
	for j := range raw {
		assert.GreaterOrEqual(t, adj[j], raw[j])
		assert.LessOrEqual(t, adj[j], 1.0)
	}

	assert.Empty(t, HolmCorrect(nil))
}
