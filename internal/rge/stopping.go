package rge

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// StoppingProbability returns the fraction of particles of table idx which
// stop within [a, b] (nm). Each nn_j is taken as constant on its bin
// (z_{j-1}, z_j], the same weighting the normalization uses, so the full
// range [0, zMax] yields 1. It is -1 for a bad index.
func (h *Handler) StoppingProbability(idx int, a, b float64) float64 {
	if idx < 0 || idx >= len(h.data) {
		return -1.0
	}
	if a > b {
		a, b = b, a
	}
	d := &h.data[idx]

	overlap := make([]float64, len(d.Depth))
	lower := 0.0
	for j, upper := range d.Depth {
		overlap[j] = math.Max(0, math.Min(b, upper)-math.Max(a, lower))
		lower = upper
	}
	return floats.Dot(d.NN, overlap)
}

func (h *Handler) StoppingProbabilityByEnergy(energy, a, b float64) float64 {
	return h.StoppingProbability(h.EnergyIndex(energy), a, b)
}
