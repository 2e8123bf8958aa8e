// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"math"
)

// Sample evaluates a numeric curve at times with de Boor's non-vanishing
// basis functions. Times outside the domain extrapolate the first or last
// polynomial piece. Meant for plotting and export, not for the symbolic path.
//
// Errors:
//   - ErrOutOfDomain: a NaN or infinite time.
func Sample(c *Curve[float64], times []float64) ([]float64, error) {
	out := make([]float64, len(times))
	deg := c.basis.degree
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, fmt.Errorf("Sample: time %d is %v: %w", i, t, ErrOutOfDomain)
		}
		span := c.basis.span(t)
		v := 0.0
		for j, n := range c.basis.nonVanishing(span, t) {
			v += n * c.coeffs[span-deg+j]
		}
		out[i] = v
	}

	return out, nil
}

// SampleAll samples every curve at the same times; row i belongs to curves[i].
func SampleAll(curves []*Curve[float64], times []float64) ([][]float64, error) {
	out := make([][]float64, len(curves))
	for i, c := range curves {
		row, err := Sample(c, times)
		if err != nil {
			return nil, fmt.Errorf("SampleAll: curve %d: %w", i, err)
		}
		out[i] = row
	}

	return out, nil
}

// span finds the knot span [k_s, k_{s+1}) holding t, clamped to the
// non-degenerate spans degree..N-1 (NURBS book A2.1).
func (b *Basis) span(t float64) int {
	k, deg := b.knots, b.degree
	n := b.Len() - 1
	if t >= k[n+1] {
		// the last non-empty span at or before the end
		s := n
		for s > deg && k[s] == k[s+1] {
			s--
		}

		return s
	}
	if t < k[deg] {
		return deg
	}
	lo, hi := deg, n+1
	mid := (lo + hi) / 2
	for t < k[mid] || t >= k[mid+1] {
		if t < k[mid] {
			hi = mid
		} else {
			lo = mid
		}
		mid = (lo + hi) / 2
	}

	return mid
}

// nonVanishing returns the degree+1 basis functions that may be non-zero on
// span s, in order s-degree..s (NURBS book A2.2).
func (b *Basis) nonVanishing(s int, t float64) []float64 {
	k, deg := b.knots, b.degree
	out := make([]float64, deg+1)
	left := make([]float64, deg+1)
	right := make([]float64, deg+1)
	out[0] = 1
	for j := 1; j <= deg; j++ {
		left[j] = t - k[s+1-j]
		right[j] = k[s+j] - t
		saved := 0.0
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			tmp := 0.0
			if den != 0 {
				tmp = out[r] / den
			}
			out[r] = saved + right[r+1]*tmp
			saved = left[j-r] * tmp
		}
		out[j] = saved
	}

	return out
}
