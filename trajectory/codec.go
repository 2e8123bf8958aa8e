// SPDX-License-Identifier: MIT

package trajectory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/bspline/bspline"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type axisDoc struct {
	Name         string    `yaml:"name"`
	Coefficients []float64 `yaml:"coefficients,flow"`
}

type document struct {
	Degree int       `yaml:"degree"`
	Knots  []float64 `yaml:"knots,flow"`
	Axes   []axisDoc `yaml:"axes"`
}

type segmentDoc struct {
	Duration   any      `yaml:"duration"`
	Trajectory document `yaml:"trajectory"`
}

type planDoc struct {
	Segments []segmentDoc `yaml:"segments"`
}

func (tr *Trajectory) document() document {
	b := tr.Basis()
	doc := document{Degree: b.Degree(), Knots: b.Knots(), Axes: make([]axisDoc, len(tr.curves))}
	for i, c := range tr.curves {
		doc.Axes[i] = axisDoc{Name: tr.names[i], Coefficients: c.Coefficients()}
	}

	return doc
}

func (doc document) trajectory() (*Trajectory, error) {
	if len(doc.Axes) == 0 {
		return nil, fmt.Errorf("no axes: %w", ErrInvalidDocument)
	}
	b, err := bspline.NewBasis(doc.Knots, doc.Degree)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	names := make([]string, len(doc.Axes))
	curves := make([]*bspline.Curve[float64], len(doc.Axes))
	for i, a := range doc.Axes {
		names[i] = a.Name
		if curves[i], err = bspline.NewCurve(b, a.Coefficients); err != nil {
			return nil, errors.Join(ErrInvalidDocument, fmt.Errorf("axis %q: %w", a.Name, err))
		}
	}

	return New(names, curves)
}

// Encode writes tr as a YAML document.
func (tr *Trajectory) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tr.document()); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}

// Decode reads one YAML trajectory document.
//
// Errors:
//   - ErrInvalidDocument (with the bspline cause joined), ErrAxisMismatch,
//     or the YAML syntax error.
func Decode(r io.Reader) (*Trajectory, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}
	tr, err := doc.trajectory()
	if err != nil {
		return nil, fmt.Errorf("Decode: %w", err)
	}

	return tr, nil
}

// Save writes tr to path.
func (tr *Trajectory) Save(path string) error {
	d, err := yaml.Marshal(tr.document())
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	if err = os.WriteFile(path, d, 0o600); err != nil {
		return fmt.Errorf("Save %s: %w", path, err)
	}

	return nil
}

// Load reads a trajectory written by Save.
func Load(path string) (*Trajectory, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	var doc document
	if err = yaml.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("Load %s: %w", path, err)
	}
	tr, err := doc.trajectory()
	if err != nil {
		return nil, fmt.Errorf("Load %s: %w", path, err)
	}

	return tr, nil
}

// Plan is a decoded sequence of segments with their durations in seconds.
type Plan struct {
	Segments  []*Trajectory
	Durations []float64
}

// Concat joins the plan's segments into one trajectory.
func (p *Plan) Concat() (*Trajectory, error) {
	return Concat(p.Segments, p.Durations)
}

// DecodePlan reads a YAML plan:
//
//	segments:
//	  - duration: 1.5        # seconds
//	    trajectory: {...}
//	  - duration: "250ms"    # Go duration string
//	    trajectory: {...}
//
// Errors:
//   - ErrInvalidDocument: no segments, a bad duration, or a bad segment.
func DecodePlan(r io.Reader) (*Plan, error) {
	var doc planDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("DecodePlan: %w", err)
	}
	if len(doc.Segments) == 0 {
		return nil, fmt.Errorf("DecodePlan: no segments: %w", ErrInvalidDocument)
	}
	p := &Plan{
		Segments:  make([]*Trajectory, len(doc.Segments)),
		Durations: make([]float64, len(doc.Segments)),
	}
	for i, s := range doc.Segments {
		d, err := seconds(s.Duration)
		if err != nil {
			return nil, fmt.Errorf("DecodePlan: segment %d: %w", i, err)
		}
		p.Durations[i] = d
		if p.Segments[i], err = s.Trajectory.trajectory(); err != nil {
			return nil, fmt.Errorf("DecodePlan: segment %d: %w", i, err)
		}
	}

	return p, nil
}

// seconds reads a number of seconds, or a duration string with a unit.
func seconds(v any) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("missing duration: %w", ErrInvalidDocument)
	}
	if s, ok := v.(string); ok {
		if f, err := cast.ToFloat64E(s); err == nil {
			return f, nil
		}
		d, err := cast.ToDurationE(s)
		if err != nil {
			return 0, errors.Join(ErrInvalidDocument, err)
		}

		return d.Seconds(), nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, errors.Join(ErrInvalidDocument, err)
	}

	return f, nil
}

// WriteCSV samples tr at times and writes a header "t,<axis>..." followed by
// one row per time.
func (tr *Trajectory) WriteCSV(w io.Writer, times []float64) error {
	rows, err := tr.Sample(times)
	if err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	cw := csv.NewWriter(w)
	if err = cw.Write(append([]string{"t"}, tr.names...)); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	record := make([]string, len(tr.names)+1)
	for j, t := range times {
		record[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for i := range tr.names {
			record[i+1] = strconv.FormatFloat(rows[i][j], 'g', -1, 64)
		}
		if err = cw.Write(record); err != nil {
			return fmt.Errorf("WriteCSV: %w", err)
		}
	}
	cw.Flush()

	return cw.Error()
}
