package temporal

import (
	"fmt"
	"time"

	"github.com/arloliu/tsframe/errs"
)

// Duration is an immutable additive offset mixing calendar components
// (months and years, whose real-time length varies by calendar position)
// with physical components (fixed nanosecond counts).
//
// Durations are built from the mini-language accepted by ParseDuration, or
// from the unit constructors. The zero value is a zero-magnitude duration.
type Duration struct {
	months  int64
	nsecs   int64
	negated bool
	indexed bool
}

const (
	nsPerUs     = 1_000
	nsPerMs     = 1_000_000
	nsPerSecond = 1_000_000_000
	nsPerMinute = 60 * nsPerSecond
	nsPerHour   = 60 * nsPerMinute
	nsPerDay    = 24 * nsPerHour
	nsPerWeek   = 7 * nsPerDay
)

// Nanoseconds returns a Duration of n fixed nanoseconds.
func Nanoseconds(n int64) Duration { return Duration{nsecs: n} }

// Milliseconds returns a Duration of n fixed milliseconds.
func Milliseconds(n int64) Duration { return Duration{nsecs: n * nsPerMs} }

// Days returns a Duration of n fixed 24-hour days.
func Days(n int64) Duration { return Duration{nsecs: n * nsPerDay} }

// Months returns a calendar Duration of n months.
func Months(n int64) Duration { return Duration{months: n} }

// IsZero reports whether the duration has no calendar and no physical
// component. Zero-magnitude steps must be rejected before grid generation.
func (d Duration) IsZero() bool { return d.months == 0 && d.nsecs == 0 }

// IsIndexed reports whether the duration was parsed from an "i" token.
// Index-count durations have no temporal meaning and every temporal
// operation rejects them.
func (d Duration) IsIndexed() bool { return d.indexed }

// Negate returns the duration with its sign flipped.
func (d Duration) Negate() Duration {
	d.negated = !d.negated

	return d
}

func (d Duration) String() string {
	sign := ""
	if d.negated {
		sign = "-"
	}

	return fmt.Sprintf("%s{%dmo %dns}", sign, d.months, d.nsecs)
}

// ParseDuration parses the duration mini-language: concatenated
// "<integer><unit>" tokens combined additively left to right, with an
// optional leading '-' applying to the whole duration.
//
// Units: ns, us, ms, s, m, h, d, w, mo, y, i. Example: "3d12h4m25s" is
// 3 days, 12 hours, 4 minutes and 25 seconds.
func ParseDuration(s string) (Duration, error) {
	var d Duration

	input := s
	if len(s) > 0 && s[0] == '-' {
		d.negated = true
		s = s[1:]
	}

	if len(s) == 0 {
		return Duration{}, fmt.Errorf("%w: %q", errs.ErrInvalidDuration, input)
	}

	for len(s) > 0 {
		var n int64
		digits := 0
		for len(s) > 0 && s[0] >= '0' && s[0] <= '9' {
			n = n*10 + int64(s[0]-'0')
			s = s[1:]
			digits++
		}
		if digits == 0 {
			return Duration{}, fmt.Errorf("%w: %q: expected integer before unit", errs.ErrInvalidDuration, input)
		}

		unit := ""
		for len(s) > 0 && (s[0] < '0' || s[0] > '9') {
			unit += string(s[0])
			s = s[1:]
		}

		switch unit {
		case "ns":
			d.nsecs += n
		case "us":
			d.nsecs += n * nsPerUs
		case "ms":
			d.nsecs += n * nsPerMs
		case "s":
			d.nsecs += n * nsPerSecond
		case "m":
			d.nsecs += n * nsPerMinute
		case "h":
			d.nsecs += n * nsPerHour
		case "d":
			d.nsecs += n * nsPerDay
		case "w":
			d.nsecs += n * nsPerWeek
		case "mo":
			d.months += n
		case "y":
			d.months += n * 12
		case "i":
			d.nsecs += n
			d.indexed = true
		default:
			return Duration{}, fmt.Errorf("%w: %q: unknown unit %q", errs.ErrInvalidDuration, input, unit)
		}
	}

	return d, nil
}

// AddTo adds the duration once to a timestamp in the given unit.
// Calendar months advance via calendar arithmetic with day-of-month clamping
// before physical nanoseconds are added as a fixed offset.
func (d Duration) AddTo(ts int64, tu TimeUnit) (int64, error) {
	return d.addScaled(ts, 1, tu)
}

// addScaled adds k whole steps of the duration to ts. Scaling the components
// before applying them keeps calendar steps anchored to the origin: two 1mo
// steps from Jan 31 land on Mar 31, not on Feb 28 plus one month.
func (d Duration) addScaled(ts int64, k int64, tu TimeUnit) (int64, error) {
	if d.indexed {
		return 0, fmt.Errorf("%w: %s", errs.ErrIndexedDuration, d)
	}

	months := d.months * k
	nsecs := d.nsecs * k
	if d.negated {
		months = -months
		nsecs = -nsecs
	}

	if months != 0 {
		t := addMonthsClamped(tu.ToTime(ts), months)
		shifted, err := tu.FromTime(t)
		if err != nil {
			return 0, err
		}
		ts = shifted
	}

	if tu == UnitMilliseconds {
		return ts + nsecs/nsPerMs, nil
	}

	return ts + nsecs, nil
}

// addMonthsClamped shifts t by a number of calendar months, clamping the
// day-of-month into the target month's valid range. time.Time.AddDate is
// not used because it normalizes overflow (Jan 31 + 1mo = Mar 3) instead
// of clamping (Jan 31 + 1mo = Feb 28).
func addMonthsClamped(t time.Time, months int64) time.Time {
	total := int64(t.Year())*12 + int64(t.Month()) - 1 + months

	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}

	day := t.Day()
	if last := daysInMonth(int(year), time.Month(month+1)); day > last {
		day = last
	}

	return time.Date(int(year), time.Month(month+1), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
