package trajectory_test

import (
	"bytes"
	"encoding/csv"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/katalvlaran/bspline/bspline"
	"github.com/katalvlaran/bspline/trajectory"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// planar builds a two-axis cubic trajectory on [0, 4] with unit intervals.
func planar(t *testing.T) *trajectory.Trajectory {
	t.Helper()
	b, err := bspline.NewBasis([]float64{0, 0, 0, 0, 1, 2, 3, 4, 4, 4, 4}, 3)
	require.NoError(t, err)
	x, err := bspline.NewCurve(b, []float64{0, 1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	y, err := bspline.NewCurve(b, []float64{1, -1, 0.5, 2, 0, 1, 3})
	require.NoError(t, err)
	tr, err := trajectory.New([]string{"x", "y"}, []*bspline.Curve[float64]{x, y})
	require.NoError(t, err)

	return tr
}

func axisValue(t *testing.T, tr *trajectory.Trajectory, name string, at float64) float64 {
	t.Helper()
	c, err := tr.Axis(name)
	require.NoError(t, err)

	return bspline.Value(c, at)
}

func TestNewValidation(t *testing.T) {
	tr := planar(t)
	x, err := tr.Axis("x")
	require.NoError(t, err)

	_, err = trajectory.New([]string{"x", "x"}, []*bspline.Curve[float64]{x, x})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)
	_, err = trajectory.New([]string{"x"}, []*bspline.Curve[float64]{x, x})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)
	_, err = trajectory.New(nil, nil)
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)

	other, err := bspline.NewBasis([]float64{0, 0, 0, 0, 2, 4, 4, 4, 4}, 3)
	require.NoError(t, err)
	z, err := bspline.NewCurve(other, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	_, err = trajectory.New([]string{"x", "z"}, []*bspline.Curve[float64]{x, z})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)

	_, err = tr.Axis("w")
	require.ErrorIs(t, err, trajectory.ErrUnknownAxis)
	require.Equal(t, []string{"x", "y"}, tr.Names())
}

func TestAdvance(t *testing.T) {
	tr := planar(t)
	next, err := tr.Advance()
	require.NoError(t, err)

	lo, hi := next.Horizon()
	require.Equal(t, [2]float64{1, 5}, [2]float64{lo, hi})
	for _, name := range []string{"x", "y"} {
		for _, at := range []float64{1, 1.5, 2.5, 3.9, 4} {
			require.InDelta(t, axisValue(t, tr, name, at), axisValue(t, next, name, at), 1e-9, "%s(%v)", name, at)
		}
	}
	require.InDelta(t, 3.510416666666667, axisValue(t, next, "x", 2.5), 1e-9)
}

func TestExtendCropShiftStart(t *testing.T) {
	tr := planar(t)

	ext, err := tr.Extend(1.5)
	require.NoError(t, err)
	_, hi := ext.Horizon()
	require.Equal(t, 5.5, hi)
	require.InDelta(t, axisValue(t, tr, "y", 3.2), axisValue(t, ext, "y", 3.2), 1e-9)

	cropped, err := tr.Crop(0.5, 3)
	require.NoError(t, err)
	lo, hi := cropped.Horizon()
	require.Equal(t, [2]float64{0.5, 3}, [2]float64{lo, hi})
	require.InDelta(t, axisValue(t, tr, "x", 2.2), axisValue(t, cropped, "x", 2.2), 1e-12)

	shifted, err := tr.ShiftStart(0.4)
	require.NoError(t, err)
	lo, _ = shifted.Horizon()
	require.Equal(t, 0.4, lo)
	require.InDelta(t, axisValue(t, tr, "y", 0.7), axisValue(t, shifted, "y", 0.7), 1e-9)

	_, err = tr.Extend(0)
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
	_, err = tr.ShiftStart(2)
	require.ErrorIs(t, err, bspline.ErrOutOfDomain)
}

func TestConcatAndSample(t *testing.T) {
	tr := planar(t)
	joined, err := trajectory.Concat([]*trajectory.Trajectory{tr, tr}, []float64{0.25, 0.25})
	require.NoError(t, err)
	_, hi := joined.Horizon()
	require.Equal(t, 2.0, hi)
	// first segment, time scaled by 0.25
	require.InDelta(t, axisValue(t, tr, "y", 2), axisValue(t, joined, "y", 0.5), 1e-12)

	times := tr.Times(5)
	require.Equal(t, []float64{0, 1, 2, 3, 4}, times)
	rows, err := tr.Sample(times)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	want := make([]float64, len(times))
	for i, at := range times {
		want[i] = axisValue(t, tr, "y", at)
	}
	require.Empty(t, cmp.Diff(want, rows[1], approx))

	swapped, err := trajectory.New([]string{"y", "x"}, []*bspline.Curve[float64]{mustAxis(t, tr, "y"), mustAxis(t, tr, "x")})
	require.NoError(t, err)
	_, err = trajectory.Concat([]*trajectory.Trajectory{tr, swapped}, []float64{1, 1})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)

	_, err = trajectory.Concat([]*trajectory.Trajectory{tr, nil}, []float64{1, 1})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)
	_, err = trajectory.Concat([]*trajectory.Trajectory{nil, tr}, []float64{1, 1})
	require.ErrorIs(t, err, trajectory.ErrAxisMismatch)
}

func mustAxis(t *testing.T, tr *trajectory.Trajectory, name string) *bspline.Curve[float64] {
	t.Helper()
	c, err := tr.Axis(name)
	require.NoError(t, err)

	return c
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tr := planar(t)
	var buf bytes.Buffer
	require.NoError(t, tr.Encode(&buf))
	require.Contains(t, buf.String(), "knots: [0, 0, 0, 0, 1, 2, 3, 4, 4, 4, 4]")

	back, err := trajectory.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, tr.Names(), back.Names())
	require.Equal(t, mustAxis(t, tr, "y").Coefficients(), mustAxis(t, back, "y").Coefficients())

	path := filepath.Join(t.TempDir(), "traj.yaml")
	require.NoError(t, tr.Save(path))
	loaded, err := trajectory.Load(path)
	require.NoError(t, err)
	require.Equal(t, tr.Basis().Knots(), loaded.Basis().Knots())

	missing := filepath.Join(t.TempDir(), "no-such-dir", "traj.yaml")
	err = tr.Save(missing)
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Contains(t, err.Error(), "Save "+missing)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := trajectory.Decode(strings.NewReader("degree: 3\nknots: [0, 1]\naxes:\n  - name: x\n    coefficients: [1]\n"))
	require.ErrorIs(t, err, trajectory.ErrInvalidDocument)
	require.ErrorIs(t, err, bspline.ErrInvalidBasis)

	_, err = trajectory.Decode(strings.NewReader("degree: 1\nknots: [0, 0, 1, 1]\naxes:\n  - name: x\n    coefficients: [1, 2, 3]\n"))
	require.ErrorIs(t, err, bspline.ErrCoefficientCount)

	_, err = trajectory.Decode(strings.NewReader("degree: 1\nknots: [0, 0, 1, 1]\n"))
	require.ErrorIs(t, err, trajectory.ErrInvalidDocument)
}

const plan = `
segments:
  - duration: 2
    trajectory:
      degree: 1
      knots: [0, 0, 0.5, 1, 1]
      axes:
        - name: x
          coefficients: [0, 1, 2]
  - duration: "500ms"
    trajectory:
      degree: 1
      knots: [0, 0, 1, 1]
      axes:
        - name: x
          coefficients: [2, 4]
  - duration: "1.5"
    trajectory:
      degree: 1
      knots: [0, 0, 1, 1]
      axes:
        - name: x
          coefficients: [4, 4]
`

func TestDecodePlan(t *testing.T) {
	p, err := trajectory.DecodePlan(strings.NewReader(plan))
	require.NoError(t, err)
	require.Equal(t, []float64{2, 0.5, 1.5}, p.Durations)

	joined, err := p.Concat()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 1, 2, 2, 2.5, 2.5, 4, 4}, joined.Basis().Knots())
	require.InDelta(t, 1.0, axisValue(t, joined, "x", 1), 1e-12)
	require.InDelta(t, 3.0, axisValue(t, joined, "x", 2.25), 1e-12)

	_, err = trajectory.DecodePlan(strings.NewReader("segments: []\n"))
	require.ErrorIs(t, err, trajectory.ErrInvalidDocument)
	_, err = trajectory.DecodePlan(strings.NewReader(strings.Replace(plan, `"500ms"`, `"soon"`, 1)))
	require.ErrorIs(t, err, trajectory.ErrInvalidDocument)
}

func TestWriteCSV(t *testing.T) {
	tr := planar(t)
	var buf bytes.Buffer
	require.NoError(t, tr.WriteCSV(&buf, []float64{0, 4}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{{"t", "x", "y"}, {"0", "0", "1"}, {"4", "6", "3"}}, records)
}
