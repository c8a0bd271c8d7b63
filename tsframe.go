// Package tsframe provides temporal resampling for columnar tabular data.
//
// The core operation is upsampling: realigning a frame's rows onto a regular
// time grid, optionally per group, leaving explicit nulls wherever no
// original row existed at a grid point. It is alignment via a left join, not
// aggregation; gaps stay null rather than being interpolated or bucketed.
//
// # Basic Usage
//
// Upsampling a datetime-indexed frame to daily resolution:
//
//	import "github.com/arloliu/tsframe"
//
//	f, _ := frame.New(
//	    frame.NewDatetimeSeries("time", []int64{day0, day2}, temporal.UnitMilliseconds, nil),
//	    frame.NewFloat64Series("value", []float64{1.0, 2.0}, nil),
//	)
//	out, _ := tsframe.Upsample(f, nil, "time", "1d", "")
//	// out has one row per day; the day with no source row is null in "value".
//
// Grouped upsampling spans each group's own min/max only:
//
//	out, _ := tsframe.UpsampleStable(f, []string{"id"}, "time", "1mo", "0d")
//
// Durations use a mini-language of concatenated <integer><unit> tokens with
// units ns, us, ms, s, m, h, d, w, mo, y, combined additively:
// "3d12h4m25s" is 3 days, 12 hours, 4 minutes and 25 seconds. Calendar units
// (mo, y) advance by real calendar rules, clamping the day-of-month.
//
// # Package Structure
//
// This package provides convenient string-based wrappers around the upsample
// package. For Duration-typed control use upsample, temporal and frame
// directly; snapshot serializes frames for spill or transport.
package tsframe

import (
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/temporal"
	"github.com/arloliu/tsframe/upsample"
)

// Upsample realigns f onto a regular time grid stepped by the every
// duration, partitioned by the optional by columns. The offset duration
// shifts each grid's start; an empty offset string means no shift. Group
// output order is unspecified; use UpsampleStable when it matters.
//
// The input frame is never modified; failures return a nil frame and the
// first error encountered.
func Upsample(f *frame.Frame, by []string, timeColumn, every, offset string) (*frame.Frame, error) {
	everyDur, offsetDur, err := parseDurations(every, offset)
	if err != nil {
		return nil, err
	}

	return upsample.Run(f, by, timeColumn, everyDur, offsetDur)
}

// UpsampleStable is Upsample with deterministic group output order: groups
// appear in order of first occurrence in the input.
func UpsampleStable(f *frame.Frame, by []string, timeColumn, every, offset string) (*frame.Frame, error) {
	everyDur, offsetDur, err := parseDurations(every, offset)
	if err != nil {
		return nil, err
	}

	return upsample.RunStable(f, by, timeColumn, everyDur, offsetDur)
}

// ParseDuration parses the duration mini-language. See temporal.ParseDuration.
func ParseDuration(s string) (temporal.Duration, error) {
	return temporal.ParseDuration(s)
}

func parseDurations(every, offset string) (temporal.Duration, temporal.Duration, error) {
	everyDur, err := temporal.ParseDuration(every)
	if err != nil {
		return temporal.Duration{}, temporal.Duration{}, err
	}

	var offsetDur temporal.Duration
	if offset != "" {
		offsetDur, err = temporal.ParseDuration(offset)
		if err != nil {
			return temporal.Duration{}, temporal.Duration{}, err
		}
	}

	return everyDur, offsetDur, nil
}
