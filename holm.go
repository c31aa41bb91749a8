package gfp

import (
	"sort"
)

// Holm performs the Holm-Bonferroni step-down procedure, returning the
// prefix of the ascending-sorted pValues whose hypotheses are rejected at
// level alpha.
func Holm[S ~[]E, E any](pValues S, get func(E) float64, alpha float64) S {
	m := len(pValues)
	for i, p := range pValues {
		if get(p)*float64(m-i) > alpha {
			return pValues[:i]
		}
	}
	return pValues
}

// HolmCorrect returns Holm step-down adjusted p-values for an uncorrected
// series, preserving sample order. Unlike the cluster and max-statistic
// corrections it needs no permutation rows, at the cost of ignoring the
// dependence between neighboring samples.
func HolmCorrect(p []float64) []float64 {
	m := len(p)
	order := seq(m)
	sort.Slice(order, func(x, y int) bool { return p[order[x]] < p[order[y]] })

	out := make([]float64, m)
	var running float64
	for rank, j := range order {
		adj := float64(m-rank) * p[j]
		if adj < running {
			adj = running
		}
		if adj > 1 {
			adj = 1
		}
		running = adj
		out[j] = adj
	}
	return out
}
