package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/temporal"
)

// Series is a named, typed, nullable column.
//
// A Series is immutable after construction: every transforming operation
// returns a fresh Series and never touches the receiver. Values live in the
// buffer matching the dtype's backing kind; validity is tracked by an
// optional mask where nil means "no nulls".
type Series struct {
	name  string
	dtype DType
	ints  []int64
	flts  []float64
	strs  []string
	valid []bool
}

// NewInt64Series creates an Int64 series. A nil valid mask marks every row
// valid; otherwise valid must match vals in length.
func NewInt64Series(name string, vals []int64, valid []bool) *Series {
	return &Series{name: name, dtype: DTypeInt64, ints: vals, valid: valid}
}

// NewFloat64Series creates a Float64 series.
func NewFloat64Series(name string, vals []float64, valid []bool) *Series {
	return &Series{name: name, dtype: DTypeFloat64, flts: vals, valid: valid}
}

// NewStringSeries creates a String series.
func NewStringSeries(name string, vals []string, valid []bool) *Series {
	return &Series{name: name, dtype: DTypeString, strs: vals, valid: valid}
}

// NewDateSeries creates a Date series from days since the Unix epoch.
func NewDateSeries(name string, days []int64, valid []bool) *Series {
	return &Series{name: name, dtype: DTypeDate, ints: days, valid: valid}
}

// NewDatetimeSeries creates a Datetime series from timestamps in the given
// time unit.
func NewDatetimeSeries(name string, ts []int64, tu temporal.TimeUnit, valid []bool) *Series {
	return &Series{name: name, dtype: DatetimeDType(tu), ints: ts, valid: valid}
}

// NewTypedInt64Series creates a series of any int64-backed dtype. Decoders
// use it to rebuild Date and Datetime columns from raw buffers; it reports
// an error for dtypes not backed by int64.
func NewTypedInt64Series(name string, dtype DType, vals []int64, valid []bool) (*Series, error) {
	if !dtype.isIntBacked() {
		return nil, fmt.Errorf("%w: column %q: %s is not int64-backed", errs.ErrInvalidCast, name, dtype)
	}

	return &Series{name: name, dtype: dtype, ints: vals, valid: valid}, nil
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// DType returns the series dtype.
func (s *Series) DType() DType { return s.dtype }

// Len returns the number of rows.
func (s *Series) Len() int {
	switch {
	case s.dtype.isIntBacked():
		return len(s.ints)
	case s.dtype == DTypeFloat64:
		return len(s.flts)
	default:
		return len(s.strs)
	}
}

// IsNull reports whether row i is null.
func (s *Series) IsNull(i int) bool {
	return s.valid != nil && !s.valid[i]
}

// HasNulls reports whether any row is null.
func (s *Series) HasNulls() bool {
	if s.valid == nil {
		return false
	}
	for _, v := range s.valid {
		if !v {
			return true
		}
	}

	return false
}

// Int64 returns the int64-backed value at row i. Meaningless for null rows.
func (s *Series) Int64(i int) int64 { return s.ints[i] }

// Float64 returns the float value at row i. Meaningless for null rows.
func (s *Series) Float64(i int) float64 { return s.flts[i] }

// Str returns the string value at row i. Meaningless for null rows.
func (s *Series) Str(i int) string { return s.strs[i] }

// Rename returns a copy of the series under a new name, sharing buffers.
func (s *Series) Rename(name string) *Series {
	out := *s
	out.name = name

	return &out
}

// Take builds a new series from the rows at the given indices, in order.
// An index of -1 produces a null row; this is how joins null-pad unmatched
// rows.
func (s *Series) Take(indices []int) *Series {
	out := &Series{name: s.name, dtype: s.dtype}

	needMask := s.valid != nil
	if !needMask {
		for _, idx := range indices {
			if idx < 0 {
				needMask = true
				break
			}
		}
	}
	if needMask {
		out.valid = make([]bool, len(indices))
	}

	switch {
	case s.dtype.isIntBacked():
		out.ints = make([]int64, len(indices))
	case s.dtype == DTypeFloat64:
		out.flts = make([]float64, len(indices))
	default:
		out.strs = make([]string, len(indices))
	}

	for pos, idx := range indices {
		if idx < 0 || s.IsNull(idx) {
			continue
		}
		if out.valid != nil {
			out.valid[pos] = true
		}
		switch {
		case s.dtype.isIntBacked():
			out.ints[pos] = s.ints[idx]
		case s.dtype == DTypeFloat64:
			out.flts[pos] = s.flts[idx]
		default:
			out.strs[pos] = s.strs[idx]
		}
	}

	return out
}
