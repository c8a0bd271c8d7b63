package temporal

import "time"

type (
	TimeUnit     uint8
	ClosedWindow uint8
)

const (
	UnitMilliseconds TimeUnit = 0x1 // UnitMilliseconds encodes timestamps as milliseconds since epoch.
	UnitNanoseconds  TimeUnit = 0x2 // UnitNanoseconds encodes timestamps as nanoseconds since epoch.

	ClosedLeft  ClosedWindow = 0x1 // ClosedLeft includes the start point and excludes the stop point.
	ClosedRight ClosedWindow = 0x2 // ClosedRight excludes the start point and includes the stop point.
	ClosedBoth  ClosedWindow = 0x3 // ClosedBoth includes both endpoints.
	ClosedNone  ClosedWindow = 0x4 // ClosedNone excludes both endpoints.
)

func (u TimeUnit) String() string {
	switch u {
	case UnitMilliseconds:
		return "ms"
	case UnitNanoseconds:
		return "ns"
	default:
		return "Unknown"
	}
}

func (c ClosedWindow) String() string {
	switch c {
	case ClosedLeft:
		return "Left"
	case ClosedRight:
		return "Right"
	case ClosedBoth:
		return "Both"
	case ClosedNone:
		return "None"
	default:
		return "Unknown"
	}
}

// ToTime converts a timestamp in this unit to a UTC time.Time.
// Every int64 timestamp maps to a valid time.Time in both units.
func (u TimeUnit) ToTime(ts int64) time.Time {
	if u == UnitMilliseconds {
		return time.UnixMilli(ts).UTC()
	}

	return time.Unix(0, ts).UTC()
}

// FromTime converts a time.Time back to a timestamp in this unit.
//
// Nanosecond conversions are gated by InNanosecondsWindow: a time outside the
// window would silently wrap in UnixNano, so it is rejected instead.
func (u TimeUnit) FromTime(t time.Time) (int64, error) {
	if u == UnitMilliseconds {
		return t.UnixMilli(), nil
	}

	if !InNanosecondsWindow(t) || !representableInNanoseconds(t) {
		return 0, outOfRangeError(t)
	}

	return t.UnixNano(), nil
}
