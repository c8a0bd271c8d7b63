package frame

import "github.com/arloliu/tsframe/temporal"

// DType identifies the logical type of a series.
//
// Temporal dtypes form a closed set: Date (days since epoch) and Datetime at
// millisecond or nanosecond resolution. Operations that require a temporal
// index match over exactly these variants and reject everything else, never
// falling through a default path.
type DType uint8

const (
	DTypeInt64         DType = 0x1 // DTypeInt64 represents 64-bit signed integers.
	DTypeFloat64       DType = 0x2 // DTypeFloat64 represents 64-bit floats.
	DTypeString        DType = 0x3 // DTypeString represents UTF-8 strings.
	DTypeDate          DType = 0x4 // DTypeDate represents days since the Unix epoch.
	DTypeDatetimeMilli DType = 0x5 // DTypeDatetimeMilli represents milliseconds since the Unix epoch.
	DTypeDatetimeNano  DType = 0x6 // DTypeDatetimeNano represents nanoseconds since the Unix epoch.
)

func (d DType) String() string {
	switch d {
	case DTypeInt64:
		return "Int64"
	case DTypeFloat64:
		return "Float64"
	case DTypeString:
		return "String"
	case DTypeDate:
		return "Date"
	case DTypeDatetimeMilli:
		return "Datetime(ms)"
	case DTypeDatetimeNano:
		return "Datetime(ns)"
	default:
		return "Unknown"
	}
}

// TimeUnit returns the resolution of a Datetime dtype. The second return is
// false for every non-Datetime dtype, including Date.
func (d DType) TimeUnit() (temporal.TimeUnit, bool) {
	switch d {
	case DTypeDatetimeMilli:
		return temporal.UnitMilliseconds, true
	case DTypeDatetimeNano:
		return temporal.UnitNanoseconds, true
	default:
		return 0, false
	}
}

// DatetimeDType returns the Datetime dtype for a time unit.
func DatetimeDType(tu temporal.TimeUnit) DType {
	if tu == temporal.UnitNanoseconds {
		return DTypeDatetimeNano
	}

	return DTypeDatetimeMilli
}

// isIntBacked reports whether the dtype stores its values in the int64 buffer.
func (d DType) isIntBacked() bool {
	switch d {
	case DTypeInt64, DTypeDate, DTypeDatetimeMilli, DTypeDatetimeNano:
		return true
	default:
		return false
	}
}
