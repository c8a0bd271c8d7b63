// Package upsample realigns irregular table rows onto a regular time grid.
//
// For each partition a grid of timestamps is generated from the partition's
// first non-null index value (plus an optional offset) up to and including
// its last, stepped by a calendar-aware duration. The partition is then
// left-joined onto the grid, so grid points with no original row come back
// with nulls in every other column.
//
// Inputs are never mutated and results are freshly constructed, so
// concurrent calls share no state. Failures are deterministic: a grouped run
// aborts on the first failing partition, ties broken by partition index.
package upsample

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/temporal"
)

// Run upsamples f at a regular frequency. With a non-empty by list the frame
// is first partitioned by those columns and every partition is upsampled
// over its own min/max span; group output order is unspecified. The every
// duration spaces the grid; offset shifts the grid's start only, never its
// end.
func Run(f *frame.Frame, by []string, timeColumn string, every, offset temporal.Duration) (*frame.Frame, error) {
	return run(f, by, timeColumn, every, offset, false)
}

// RunStable is Run with deterministic group output order: groups appear in
// order of first occurrence in the input.
func RunStable(f *frame.Frame, by []string, timeColumn string, every, offset temporal.Duration) (*frame.Frame, error) {
	return run(f, by, timeColumn, every, offset, true)
}

func run(f *frame.Frame, by []string, timeColumn string, every, offset temporal.Duration, stable bool) (*frame.Frame, error) {
	index, err := f.Column(timeColumn)
	if err != nil {
		return nil, err
	}

	// Date indexes are processed at millisecond resolution and cast back.
	// The cast guarantees the inner call never sees Date again, so this
	// recursion is depth-one by construction.
	if index.DType() == frame.DTypeDate {
		return runDate(f, by, timeColumn, every, offset, stable)
	}

	if len(by) == 0 {
		return single(f, index, every, offset)
	}

	return grouped(f, by, timeColumn, every, offset, stable)
}

func runDate(f *frame.Frame, by []string, timeColumn string, every, offset temporal.Duration, stable bool) (*frame.Frame, error) {
	index, err := f.Column(timeColumn)
	if err != nil {
		return nil, err
	}

	asMilli, err := index.Cast(frame.DTypeDatetimeMilli)
	if err != nil {
		return nil, err
	}
	milliFrame, err := f.WithColumn(asMilli)
	if err != nil {
		return nil, err
	}

	out, err := run(milliFrame, by, timeColumn, every, offset, stable)
	if err != nil {
		return nil, err
	}

	outIndex, err := out.Column(timeColumn)
	if err != nil {
		return nil, err
	}
	asDate, err := outIndex.Cast(frame.DTypeDate)
	if err != nil {
		return nil, err
	}

	return out.WithColumn(asDate)
}

// single upsamples one partition over its own time domain.
func single(f *frame.Frame, index *frame.Series, every, offset temporal.Duration) (*frame.Frame, error) {
	tu, ok := index.DType().TimeUnit()
	if !ok {
		return nil, fmt.Errorf("%w: index column %q has dtype %s",
			errs.ErrUnsupportedType, index.Name(), index.DType())
	}

	first, last, ok := domain(index)
	if !ok {
		return nil, fmt.Errorf("%w: column %q", errs.ErrEmptyDomain, index.Name())
	}

	// The offset shifts only where the grid starts; the grid always extends
	// to the observed maximum.
	start, err := offset.AddTo(first, tu)
	if err != nil {
		return nil, err
	}

	grid, err := temporal.Range(start, last, every, temporal.ClosedBoth, tu)
	if err != nil {
		return nil, err
	}

	gridFrame, err := frame.New(frame.NewDatetimeSeries(index.Name(), grid, tu, nil))
	if err != nil {
		return nil, err
	}

	return frame.LeftJoin(gridFrame, f, index.Name())
}

// domain scans the index in row order for its first and last non-null
// timestamps. ok is false when every element is null.
func domain(index *frame.Series) (first, last int64, ok bool) {
	for i := 0; i < index.Len(); i++ {
		if index.IsNull(i) {
			continue
		}
		v := index.Int64(i)
		if !ok {
			first, last, ok = v, v, true
			continue
		}
		last = v
	}

	return first, last, ok
}

// grouped fans the partitions out over a bounded pool of goroutines.
// Results land in a slot slice indexed by partition position, never in
// completion order, so stable ordering holds by construction. The first
// error by partition index wins regardless of which goroutine failed first.
func grouped(f *frame.Frame, by []string, timeColumn string, every, offset temporal.Duration, stable bool) (*frame.Frame, error) {
	groups, err := frame.NewHashPartitioner(stable).Partition(f, by)
	if err != nil {
		return nil, err
	}

	results := make([]*frame.Frame, len(groups))
	failures := make([]error, len(groups))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i, g := range groups {
		wg.Add(1)
		go func(slot int, g frame.Group) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[slot], failures[slot] = Run(g.Frame, nil, timeColumn, every, offset)
		}(i, g)
	}
	wg.Wait()

	for _, ferr := range failures {
		if ferr != nil {
			return nil, ferr
		}
	}

	return frame.Concat(results)
}
