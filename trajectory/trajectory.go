// SPDX-License-Identifier: MIT

package trajectory

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/bspline/algebra"
	"github.com/katalvlaran/bspline/bspline"
	"github.com/katalvlaran/bspline/matrix"
	"gonum.org/v1/gonum/floats"
)

// Trajectory is an immutable set of named axes over one basis.
type Trajectory struct {
	names  []string
	curves []*bspline.Curve[float64]
}

// New pairs names with curves.
//
// Errors:
//   - ErrAxisMismatch: no axes, len(names) != len(curves), a duplicate or
//     empty name, a nil curve, or curves on different bases.
func New(names []string, curves []*bspline.Curve[float64]) (*Trajectory, error) {
	if len(names) == 0 || len(names) != len(curves) {
		return nil, fmt.Errorf("New: %d names for %d curves: %w", len(names), len(curves), ErrAxisMismatch)
	}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("New: axis %d has no name: %w", i, ErrAxisMismatch)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("New: duplicate axis %q: %w", n, ErrAxisMismatch)
		}
		seen[n] = struct{}{}
		if curves[i] == nil {
			return nil, fmt.Errorf("New: axis %q has no curve: %w", n, ErrAxisMismatch)
		}
	}
	ref := curves[0].Basis()
	for i, c := range curves[1:] {
		if !sameBasis(ref, c.Basis()) {
			return nil, fmt.Errorf("New: axis %q is on %v, want %v: %w", names[i+1], c.Basis(), ref, ErrAxisMismatch)
		}
	}

	return &Trajectory{names: slices.Clone(names), curves: slices.Clone(curves)}, nil
}

func sameBasis(a, b *bspline.Basis) bool {
	return a == b || (a.Degree() == b.Degree() && slices.Equal(a.Knots(), b.Knots()))
}

// Names returns the axis names in order.
func (tr *Trajectory) Names() []string { return slices.Clone(tr.names) }

// Basis returns the shared basis.
func (tr *Trajectory) Basis() *bspline.Basis { return tr.curves[0].Basis() }

// Axis returns the curve of the named axis.
func (tr *Trajectory) Axis(name string) (*bspline.Curve[float64], error) {
	i := slices.Index(tr.names, name)
	if i < 0 {
		return nil, fmt.Errorf("Axis %q: %w", name, ErrUnknownAxis)
	}

	return tr.curves[i], nil
}

// Horizon returns the time span covered by the trajectory.
func (tr *Trajectory) Horizon() (start, end float64) { return tr.Basis().Domain() }

// apply maps every axis through the same transform.
func (tr *Trajectory) apply(op string, T *matrix.Dense, knots []float64) (*Trajectory, error) {
	curves := make([]*bspline.Curve[float64], len(tr.curves))
	for i, c := range tr.curves {
		out, err := bspline.Transform[float64](algebra.Numeric{}, T, knots, c)
		if err != nil {
			return nil, fmt.Errorf("%s: axis %q: %w", op, tr.names[i], err)
		}
		curves[i] = out
	}
	bspline.Logger().Debug("trajectory "+op, "axes", len(curves), "rows", T.Rows(), "cols", T.Cols())

	return &Trajectory{names: tr.names, curves: curves}, nil
}

// Advance moves the horizon forward by one knot interval.
func (tr *Trajectory) Advance(opts ...bspline.Option) (*Trajectory, error) {
	T, knots, err := bspline.ShiftOverKnotT(tr.Basis(), opts...)
	if err != nil {
		return nil, fmt.Errorf("Advance: %w", err)
	}

	return tr.apply("Advance", T, knots)
}

// Extend lengthens the horizon by tExtra, keeping derivatives continuous at
// the old end.
func (tr *Trajectory) Extend(tExtra float64, opts ...bspline.Option) (*Trajectory, error) {
	T, knots, err := bspline.ExtrapolateT(tr.Basis(), tExtra, opts...)
	if err != nil {
		return nil, fmt.Errorf("Extend: %w", err)
	}

	return tr.apply("Extend", T, knots)
}

// Crop restricts the horizon to [min, max].
func (tr *Trajectory) Crop(min, max float64) (*Trajectory, error) {
	T, knots, err := bspline.CropT(tr.Basis(), min, max)
	if err != nil {
		return nil, fmt.Errorf("Crop: %w", err)
	}

	return tr.apply("Crop", T, knots)
}

// ShiftStart moves the start of the horizon to t, which must lie before the
// first interior knot.
func (tr *Trajectory) ShiftStart(t float64) (*Trajectory, error) {
	curves := make([]*bspline.Curve[float64], len(tr.curves))
	for i, c := range tr.curves {
		out, err := bspline.ShiftFirstKnotsCurve(c, t)
		if err != nil {
			return nil, fmt.Errorf("ShiftStart: axis %q: %w", tr.names[i], err)
		}
		curves[i] = out
	}

	return &Trajectory{names: tr.names, curves: curves}, nil
}

// Concat joins segments with the given durations. Every segment must have
// the same axis names in the same order.
//
// Errors:
//   - ErrAxisMismatch, plus the bspline.Concat errors.
func Concat(segments []*Trajectory, durations []float64) (*Trajectory, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("Concat: %w", bspline.ErrSegmentShape)
	}
	groups := make([][]*bspline.Curve[float64], len(segments))
	for s, seg := range segments {
		if seg == nil {
			return nil, fmt.Errorf("Concat: segment %d is nil: %w", s, ErrAxisMismatch)
		}
		if !slices.Equal(seg.names, segments[0].names) {
			return nil, fmt.Errorf("Concat: segment %d axes %v, want %v: %w", s, seg.names, segments[0].names, ErrAxisMismatch)
		}
		groups[s] = seg.curves
	}
	curves, err := bspline.Concat(groups, durations)
	if err != nil {
		return nil, fmt.Errorf("Concat: %w", err)
	}

	return New(segments[0].names, curves)
}

// Sample evaluates every axis at times; row i belongs to axis i.
func (tr *Trajectory) Sample(times []float64) ([][]float64, error) {
	return bspline.SampleAll(tr.curves, times)
}

// Times returns n equally spaced times across the horizon (n >= 2).
func (tr *Trajectory) Times(n int) []float64 {
	if n < 2 {
		n = 2
	}
	lo, hi := tr.Horizon()

	return floats.Span(make([]float64, n), lo, hi)
}
