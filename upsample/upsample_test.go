package upsample

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/temporal"
)

func msAt(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func dayAt(year int, month time.Month, day int) int64 {
	return msAt(year, month, day) / 86_400_000
}

func mustParse(t *testing.T, s string) temporal.Duration {
	t.Helper()

	d, err := temporal.ParseDuration(s)
	require.NoError(t, err)

	return d
}

func TestRun_FillsGaps(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{msAt(2021, time.January, 1), msAt(2021, time.January, 3)},
			temporal.UnitMilliseconds, nil),
		frame.NewFloat64Series("value", []float64{1.0, 3.0}, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	ts, _ := out.Column("time")
	require.Equal(t, msAt(2021, time.January, 1), ts.Int64(0))
	require.Equal(t, msAt(2021, time.January, 2), ts.Int64(1))
	require.Equal(t, msAt(2021, time.January, 3), ts.Int64(2))

	v, _ := out.Column("value")
	require.Equal(t, 1.0, v.Float64(0))
	require.True(t, v.IsNull(1), "inserted grid row must be null in other columns")
	require.Equal(t, 3.0, v.Float64(2))
}

func TestRun_DateIndexRoundTrip(t *testing.T) {
	f, err := frame.New(
		frame.NewDateSeries("date",
			[]int64{dayAt(2021, time.January, 1), dayAt(2021, time.January, 5)}, nil),
		frame.NewInt64Series("v", []int64{1, 5}, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "date", mustParse(t, "2d"), temporal.Duration{})
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	d, _ := out.Column("date")
	require.Equal(t, frame.DTypeDate, d.DType(), "index must be cast back to Date")
	require.Equal(t, dayAt(2021, time.January, 1), d.Int64(0))
	require.Equal(t, dayAt(2021, time.January, 3), d.Int64(1))
	require.Equal(t, dayAt(2021, time.January, 5), d.Int64(2))

	v, _ := out.Column("v")
	require.Equal(t, int64(1), v.Int64(0))
	require.True(t, v.IsNull(1))
	require.Equal(t, int64(5), v.Int64(2))
}

func TestRun_GroupedDisjointDomains(t *testing.T) {
	// Two ids with disjoint date ranges: each grid spans only its own
	// min/max, never a shared one.
	f, err := frame.New(
		frame.NewStringSeries("id", []string{"a", "a", "b", "b"}, nil),
		frame.NewDatetimeSeries("time", []int64{
			msAt(2021, time.January, 1), msAt(2021, time.January, 3),
			msAt(2021, time.June, 1), msAt(2021, time.June, 2),
		}, temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	out, err := RunStable(f, []string{"id"}, "time", mustParse(t, "1d"), temporal.Duration{})
	require.NoError(t, err)

	// 3 rows for "a" (Jan 1..3), 2 rows for "b" (Jun 1..2).
	require.Equal(t, 5, out.NumRows())

	id, _ := out.Column("id")
	require.Equal(t, "a", id.Str(0))
	require.Equal(t, "a", id.Str(2))
	require.Equal(t, "b", id.Str(3))

	ts, _ := out.Column("time")
	require.Equal(t, msAt(2021, time.January, 2), ts.Int64(1))
	require.Equal(t, msAt(2021, time.June, 1), ts.Int64(3))
}

func TestRun_StableUnstableSameRowMultiset(t *testing.T) {
	f, err := frame.New(
		frame.NewStringSeries("id", []string{"x", "y", "x", "y"}, nil),
		frame.NewDatetimeSeries("time", []int64{
			msAt(2021, time.March, 1), msAt(2021, time.April, 1),
			msAt(2021, time.March, 4), msAt(2021, time.April, 2),
		}, temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	every := mustParse(t, "1d")

	stable, err := RunStable(f, []string{"id"}, "time", every, temporal.Duration{})
	require.NoError(t, err)
	unstable, err := Run(f, []string{"id"}, "time", every, temporal.Duration{})
	require.NoError(t, err)

	require.Equal(t, rowSet(t, stable), rowSet(t, unstable),
		"only group ordering may differ between modes")
}

func rowSet(t *testing.T, f *frame.Frame) []int64 {
	t.Helper()

	id, err := f.Column("id")
	require.NoError(t, err)
	ts, err := f.Column("time")
	require.NoError(t, err)

	rows := make([]int64, f.NumRows())
	for i := range rows {
		rows[i] = ts.Int64(i) ^ int64(len(id.Str(i)))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i] < rows[j] })

	return rows
}

func TestRun_OffsetShiftsStartOnly(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{msAt(2021, time.January, 1), msAt(2021, time.January, 5)},
			temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1d"), mustParse(t, "1d"))
	require.NoError(t, err)

	ts, _ := out.Column("time")
	require.Equal(t, 4, out.NumRows())
	require.Equal(t, msAt(2021, time.January, 2), ts.Int64(0), "offset shifts the grid start")
	require.Equal(t, msAt(2021, time.January, 5), ts.Int64(3), "grid end stays at the observed maximum")
}

func TestRun_NegativeOffset(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{msAt(2021, time.January, 2), msAt(2021, time.January, 3)},
			temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1d"), mustParse(t, "-1d"))
	require.NoError(t, err)

	ts, _ := out.Column("time")
	require.Equal(t, 3, out.NumRows())
	require.Equal(t, msAt(2021, time.January, 1), ts.Int64(0))
}

func TestRun_OffsetPastMaximum(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{msAt(2021, time.January, 1), msAt(2021, time.January, 2)},
			temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1d"), mustParse(t, "10d"))
	require.NoError(t, err)
	require.Equal(t, 0, out.NumRows(), "a start past the maximum yields an empty grid")
}

func TestRun_NullIndexValuesSkipped(t *testing.T) {
	// Leading and trailing nulls: domain comes from non-null values only.
	f, err := frame.New(
		frame.NewDatetimeSeries("time", []int64{
			0, msAt(2021, time.January, 2), msAt(2021, time.January, 4), 0,
		}, temporal.UnitMilliseconds, []bool{false, true, true, false}),
		frame.NewInt64Series("v", []int64{9, 2, 4, 9}, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.NoError(t, err)
	require.Equal(t, 3, out.NumRows())

	ts, _ := out.Column("time")
	require.Equal(t, msAt(2021, time.January, 2), ts.Int64(0))
	require.Equal(t, msAt(2021, time.January, 4), ts.Int64(2))
}

func TestRun_AllNullIndex(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time", []int64{0, 0}, temporal.UnitMilliseconds, []bool{false, false}),
	)
	require.NoError(t, err)

	_, err = Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.ErrorIs(t, err, errs.ErrEmptyDomain)
}

func TestRun_GroupedAllNullPartitionAborts(t *testing.T) {
	// One healthy partition, one all-null partition: the call must abort,
	// never skip the bad partition.
	f, err := frame.New(
		frame.NewStringSeries("id", []string{"good", "good", "bad"}, nil),
		frame.NewDatetimeSeries("time", []int64{
			msAt(2021, time.January, 1), msAt(2021, time.January, 2), 0,
		}, temporal.UnitMilliseconds, []bool{true, true, false}),
	)
	require.NoError(t, err)

	_, err = RunStable(f, []string{"id"}, "time", mustParse(t, "1d"), temporal.Duration{})
	require.ErrorIs(t, err, errs.ErrEmptyDomain)
}

func TestRun_UnsupportedIndexDType(t *testing.T) {
	f, err := frame.New(frame.NewInt64Series("time", []int64{1, 2}, nil))
	require.NoError(t, err)

	_, err = Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.ErrorIs(t, err, errs.ErrUnsupportedType)
	require.ErrorContains(t, err, "time")
	require.ErrorContains(t, err, "Int64")
}

func TestRun_MissingIndexColumn(t *testing.T) {
	f, err := frame.New(frame.NewInt64Series("a", []int64{1}, nil))
	require.NoError(t, err)

	_, err = Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.ErrorIs(t, err, errs.ErrColumnNotFound)
}

func TestRun_ZeroStep(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time", []int64{1, 2}, temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	_, err = Run(f, nil, "time", mustParse(t, "0d"), temporal.Duration{})
	require.ErrorIs(t, err, errs.ErrZeroDuration)
}

func TestRun_InputNotMutated(t *testing.T) {
	times := []int64{msAt(2021, time.January, 1), msAt(2021, time.January, 3)}
	f, err := frame.New(
		frame.NewDatetimeSeries("time", times, temporal.UnitMilliseconds, nil),
		frame.NewFloat64Series("v", []float64{1, 3}, nil),
	)
	require.NoError(t, err)

	_, err = Run(f, nil, "time", mustParse(t, "1d"), temporal.Duration{})
	require.NoError(t, err)

	ts, _ := f.Column("time")
	require.Equal(t, 2, f.NumRows())
	require.Equal(t, times[0], ts.Int64(0))
	require.Equal(t, times[1], ts.Int64(1))
}

func TestRun_CalendarStep(t *testing.T) {
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{msAt(2021, time.January, 31), msAt(2021, time.April, 30)},
			temporal.UnitMilliseconds, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1mo"), temporal.Duration{})
	require.NoError(t, err)

	ts, _ := out.Column("time")
	require.Equal(t, 4, out.NumRows())
	require.Equal(t, msAt(2021, time.February, 28), ts.Int64(1))
	require.Equal(t, msAt(2021, time.March, 31), ts.Int64(2))
}

func TestRun_NanosecondIndex(t *testing.T) {
	base := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC).UnixNano()
	f, err := frame.New(
		frame.NewDatetimeSeries("time",
			[]int64{base, base + 3_000}, temporal.UnitNanoseconds, nil),
		frame.NewInt64Series("v", []int64{0, 3}, nil),
	)
	require.NoError(t, err)

	out, err := Run(f, nil, "time", mustParse(t, "1us"), temporal.Duration{})
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())

	ts, _ := out.Column("time")
	require.Equal(t, frame.DTypeDatetimeNano, ts.DType())
	require.Equal(t, base+1_000, ts.Int64(1))
}

func TestRun_GroupedDateIndex(t *testing.T) {
	// Date normalization and grouping compose: cast happens once, outside
	// the per-partition work.
	f, err := frame.New(
		frame.NewStringSeries("id", []string{"a", "a", "b"}, nil),
		frame.NewDateSeries("date", []int64{
			dayAt(2021, time.January, 1), dayAt(2021, time.January, 3),
			dayAt(2021, time.February, 1),
		}, nil),
	)
	require.NoError(t, err)

	out, err := RunStable(f, []string{"id"}, "date", mustParse(t, "1d"), temporal.Duration{})
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())

	d, _ := out.Column("date")
	require.Equal(t, frame.DTypeDate, d.DType())
	require.Equal(t, dayAt(2021, time.January, 2), d.Int64(1))
}
