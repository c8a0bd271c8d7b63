// Package frame implements the columnar table representation consumed by the
// upsampling core: ordered named series sharing one row count, each
// independently nullable.
//
// Frames are immutable after construction. Every operation returns a new
// Frame and leaves its inputs untouched, so concurrent calls over the same
// frame share no mutable state.
package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
)

// Frame is an ordered collection of equal-length series.
type Frame struct {
	series []*Series
	byName map[string]int
}

// New creates a frame from the given series. All series must share one
// length and carry distinct names.
func New(series ...*Series) (*Frame, error) {
	f := &Frame{
		series: series,
		byName: make(map[string]int, len(series)),
	}

	rows := -1
	for i, s := range series {
		if _, ok := f.byName[s.Name()]; ok {
			return nil, fmt.Errorf("%w: duplicate column %q", errs.ErrSchemaMismatch, s.Name())
		}
		f.byName[s.Name()] = i

		if rows == -1 {
			rows = s.Len()
		} else if s.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
				errs.ErrLengthMismatch, s.Name(), s.Len(), rows)
		}
	}

	return f, nil
}

// NumRows returns the shared row count.
func (f *Frame) NumRows() int {
	if len(f.series) == 0 {
		return 0
	}

	return f.series[0].Len()
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.series) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	names := make([]string, len(f.series))
	for i, s := range f.series {
		names[i] = s.Name()
	}

	return names
}

// Column returns the series with the given name.
func (f *Frame) Column(name string) (*Series, error) {
	idx, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, name)
	}

	return f.series[idx], nil
}

// SeriesAt returns the series at column position i.
func (f *Frame) SeriesAt(i int) *Series { return f.series[i] }

// WithColumn returns a new frame where the series sharing s's name is
// replaced by s. The replacement must keep the row count unchanged.
func (f *Frame) WithColumn(s *Series) (*Frame, error) {
	idx, ok := f.byName[s.Name()]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrColumnNotFound, s.Name())
	}
	if s.Len() != f.NumRows() {
		return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
			errs.ErrLengthMismatch, s.Name(), s.Len(), f.NumRows())
	}

	series := make([]*Series, len(f.series))
	copy(series, f.series)
	series[idx] = s

	return New(series...)
}

// Take builds a new frame from the rows at the given indices, in order.
// An index of -1 produces an all-null row.
func (f *Frame) Take(indices []int) *Frame {
	series := make([]*Series, len(f.series))
	for i, s := range f.series {
		series[i] = s.Take(indices)
	}

	out, _ := New(series...)

	return out
}

// Concat vertically concatenates frames sharing an identical schema, in the
// given order. Used as the gather step after per-partition work.
func Concat(frames []*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return New()
	}

	first := frames[0]
	rows := 0
	for _, f := range frames {
		if err := sameSchema(first, f); err != nil {
			return nil, err
		}
		rows += f.NumRows()
	}

	series := make([]*Series, first.NumCols())
	for col := range first.series {
		s := concatColumn(frames, col, rows)
		series[col] = s
	}

	return New(series...)
}

func sameSchema(a, b *Frame) error {
	if a.NumCols() != b.NumCols() {
		return fmt.Errorf("%w: %d columns vs %d", errs.ErrSchemaMismatch, a.NumCols(), b.NumCols())
	}
	for i := range a.series {
		sa, sb := a.series[i], b.series[i]
		if sa.Name() != sb.Name() || sa.DType() != sb.DType() {
			return fmt.Errorf("%w: column %d is %s %q vs %s %q",
				errs.ErrSchemaMismatch, i, sa.DType(), sa.Name(), sb.DType(), sb.Name())
		}
	}

	return nil
}

func concatColumn(frames []*Frame, col, rows int) *Series {
	tmpl := frames[0].series[col]
	out := &Series{name: tmpl.name, dtype: tmpl.dtype}

	hasNulls := false
	for _, f := range frames {
		if f.series[col].valid != nil {
			hasNulls = true
			break
		}
	}
	if hasNulls {
		out.valid = make([]bool, 0, rows)
	}

	switch {
	case tmpl.dtype.isIntBacked():
		out.ints = make([]int64, 0, rows)
	case tmpl.dtype == DTypeFloat64:
		out.flts = make([]float64, 0, rows)
	default:
		out.strs = make([]string, 0, rows)
	}

	for _, f := range frames {
		s := f.series[col]
		switch {
		case tmpl.dtype.isIntBacked():
			out.ints = append(out.ints, s.ints...)
		case tmpl.dtype == DTypeFloat64:
			out.flts = append(out.flts, s.flts...)
		default:
			out.strs = append(out.strs, s.strs...)
		}
		if hasNulls {
			for i := 0; i < s.Len(); i++ {
				out.valid = append(out.valid, !s.IsNull(i))
			}
		}
	}

	return out
}
