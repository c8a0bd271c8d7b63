package temporal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/errs"
)

func TestParseDuration_Units(t *testing.T) {
	tests := []struct {
		input  string
		months int64
		nsecs  int64
	}{
		{"1ns", 0, 1},
		{"1us", 0, nsPerUs},
		{"1ms", 0, nsPerMs},
		{"1s", 0, nsPerSecond},
		{"1m", 0, nsPerMinute},
		{"1h", 0, nsPerHour},
		{"1d", 0, nsPerDay},
		{"1w", 0, nsPerWeek},
		{"1mo", 1, 0},
		{"1y", 12, 0},
		{"3d12h4m25s", 0, 3*nsPerDay + 12*nsPerHour + 4*nsPerMinute + 25*nsPerSecond},
		{"2y6mo", 30, 0},
		{"1mo15d", 1, 15 * nsPerDay},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			d, err := ParseDuration(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.months, d.months)
			require.Equal(t, tc.nsecs, d.nsecs)
			require.False(t, d.negated)
			require.False(t, d.IsIndexed())
		})
	}
}

func TestParseDuration_Negative(t *testing.T) {
	d, err := ParseDuration("-1d")
	require.NoError(t, err)
	require.True(t, d.negated)
	require.Equal(t, int64(nsPerDay), d.nsecs)
}

func TestParseDuration_Indexed(t *testing.T) {
	d, err := ParseDuration("5i")
	require.NoError(t, err)
	require.True(t, d.IsIndexed())

	_, err = d.AddTo(0, UnitMilliseconds)
	require.ErrorIs(t, err, errs.ErrIndexedDuration)
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, input := range []string{"", "-", "d", "1x", "1", "mo3", "1d3"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDuration(input)
			require.ErrorIs(t, err, errs.ErrInvalidDuration)
		})
	}
}

func TestDuration_IsZero(t *testing.T) {
	require.True(t, Duration{}.IsZero())

	d, err := ParseDuration("0d")
	require.NoError(t, err)
	require.True(t, d.IsZero())

	require.False(t, Days(1).IsZero())
	require.False(t, Months(1).IsZero())
}

func msAt(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func TestAddTo_Physical(t *testing.T) {
	got, err := Days(3).AddTo(msAt(2021, time.January, 1), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2021, time.January, 4), got)

	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC).UnixNano()
	got, err = Nanoseconds(42).AddTo(start, UnitNanoseconds)
	require.NoError(t, err)
	require.Equal(t, start+42, got)
}

func TestAddTo_CalendarClamping(t *testing.T) {
	// Jan 31 + 1mo clamps to Feb 28, never normalizes into March.
	got, err := Months(1).AddTo(msAt(2021, time.January, 31), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2021, time.February, 28), got)

	// Leap year keeps Feb 29.
	got, err = Months(1).AddTo(msAt(2020, time.January, 31), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2020, time.February, 29), got)

	// A year is twelve months: Feb 29 + 1y clamps to Feb 28.
	got, err = Months(12).AddTo(msAt(2020, time.February, 29), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2021, time.February, 28), got)
}

func TestAddTo_NegativeMonths(t *testing.T) {
	got, err := Months(1).Negate().AddTo(msAt(2021, time.March, 31), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2021, time.February, 28), got)

	// Crossing the year boundary backwards.
	got, err = Months(2).Negate().AddTo(msAt(2021, time.January, 15), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2020, time.November, 15), got)
}

func TestAddTo_MixedComponents(t *testing.T) {
	// Calendar advances first, then physical nanoseconds.
	d, err := ParseDuration("1mo1d")
	require.NoError(t, err)

	got, err := d.AddTo(msAt(2021, time.January, 31), UnitMilliseconds)
	require.NoError(t, err)
	require.Equal(t, msAt(2021, time.March, 1), got)
}

func TestAddTo_NanosecondBounds(t *testing.T) {
	// Milliseconds cover a far wider window; pushing the result outside
	// [1386, 2554] is only an error at nanosecond resolution.
	farFuture := msAt(2550, time.January, 1)
	_, err := Months(120).AddTo(farFuture, UnitMilliseconds)
	require.NoError(t, err)

	// 5000 months from epoch lands past the nanosecond-representable range.
	_, err = Months(5000).AddTo(0, UnitNanoseconds)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestInNanosecondsWindow(t *testing.T) {
	require.True(t, InNanosecondsWindow(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, InNanosecondsWindow(time.Date(1386, time.June, 1, 0, 0, 0, 0, time.UTC)))
	require.True(t, InNanosecondsWindow(time.Date(2554, time.June, 1, 0, 0, 0, 0, time.UTC)))
	require.False(t, InNanosecondsWindow(time.Date(1385, time.December, 31, 0, 0, 0, 0, time.UTC)))
	require.False(t, InNanosecondsWindow(time.Date(2555, time.January, 1, 0, 0, 0, 0, time.UTC)))
}
