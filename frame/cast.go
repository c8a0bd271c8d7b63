package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/tsframe/errs"
)

const (
	msPerDay = 86_400_000
	nsPerMs  = 1_000_000
	nsPerDay = msPerDay * nsPerMs

	// Largest day count whose nanosecond encoding fits in an int64.
	maxNanoDays = math.MaxInt64 / nsPerDay
)

// Cast converts the series to another temporal dtype.
//
// Supported conversions are the lossless ones among Date, Datetime(ms) and
// Datetime(ns). Date values cast to Datetime land on midnight; Datetime
// values cast down truncate toward negative infinity so that pre-1970
// timestamps keep their calendar day. Date to Datetime(ns) is additionally
// bounds-checked, since day counts far from epoch overflow the nanosecond
// encoding.
func (s *Series) Cast(to DType) (*Series, error) {
	if s.dtype == to {
		out := *s

		return &out, nil
	}

	var scale func(int64) (int64, error)
	switch {
	case s.dtype == DTypeDate && to == DTypeDatetimeMilli:
		scale = func(v int64) (int64, error) { return v * msPerDay, nil }
	case s.dtype == DTypeDate && to == DTypeDatetimeNano:
		scale = func(v int64) (int64, error) {
			if v > maxNanoDays || v < -maxNanoDays {
				return 0, fmt.Errorf("%w: day %d not representable in nanoseconds", errs.ErrOutOfRange, v)
			}
			return v * nsPerDay, nil
		}
	case s.dtype == DTypeDatetimeMilli && to == DTypeDate:
		scale = func(v int64) (int64, error) { return floorDiv(v, msPerDay), nil }
	case s.dtype == DTypeDatetimeNano && to == DTypeDate:
		scale = func(v int64) (int64, error) { return floorDiv(v, nsPerDay), nil }
	case s.dtype == DTypeDatetimeMilli && to == DTypeDatetimeNano:
		scale = func(v int64) (int64, error) {
			if v > math.MaxInt64/nsPerMs || v < math.MinInt64/nsPerMs {
				return 0, fmt.Errorf("%w: millisecond timestamp %d not representable in nanoseconds", errs.ErrOutOfRange, v)
			}
			return v * nsPerMs, nil
		}
	case s.dtype == DTypeDatetimeNano && to == DTypeDatetimeMilli:
		scale = func(v int64) (int64, error) { return floorDiv(v, nsPerMs), nil }
	default:
		return nil, fmt.Errorf("%w: column %q from %s to %s", errs.ErrInvalidCast, s.name, s.dtype, to)
	}

	out := &Series{name: s.name, dtype: to, ints: make([]int64, len(s.ints)), valid: s.valid}
	for i, v := range s.ints {
		if s.IsNull(i) {
			continue
		}
		scaled, err := scale(v)
		if err != nil {
			return nil, err
		}
		out.ints[i] = scaled
	}

	return out, nil
}

// floorDiv divides truncating toward negative infinity, so that
// e.g. -1ms maps to day -1, not day 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
