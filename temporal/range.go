package temporal

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
)

// Range generates the strictly increasing timestamp grid
// start, start+every, start+2*every, ... bounded to [start, stop] under the
// given closed-window policy:
//
//   - ClosedBoth: include start-aligned and stop-aligned points.
//   - ClosedLeft: include start, exclude a terminal point equal to stop.
//   - ClosedRight: exclude start, include stop.
//   - ClosedNone: exclude both.
//
// Each point is derived as start plus a whole number of steps, so calendar
// components stay anchored to start instead of drifting through clamped
// intermediate months. The step must have positive magnitude; a
// zero-magnitude step would generate forever and fails with ErrZeroDuration.
func Range(start, stop int64, every Duration, closed ClosedWindow, tu TimeUnit) ([]int64, error) {
	if every.indexed {
		return nil, fmt.Errorf("%w: %s", errs.ErrIndexedDuration, every)
	}
	if every.IsZero() || every.negated || every.months < 0 || every.nsecs < 0 {
		return nil, fmt.Errorf("%w: got %s", errs.ErrZeroDuration, every)
	}
	// A sub-resolution physical step truncates to zero in the target unit
	// and would never advance the grid.
	if every.months == 0 && tu == UnitMilliseconds && every.nsecs/nsPerMs == 0 {
		return nil, fmt.Errorf("%w: %s truncates to zero at %s resolution", errs.ErrZeroDuration, every, tu)
	}

	out := make([]int64, 0, estimateSize(start, stop, every, tu))

	var step int64
	if closed == ClosedRight || closed == ClosedNone {
		step = 1
	}

	for {
		t, err := every.addScaled(start, step, tu)
		if err != nil {
			return nil, err
		}

		if t > stop {
			break
		}
		if t == stop && closed != ClosedBoth && closed != ClosedRight {
			break
		}

		out = append(out, t)
		step++
	}

	return out, nil
}

// estimateSize guesses the grid length for pre-allocation. Calendar months
// are approximated as 30 days; the estimate only sizes the initial slice.
func estimateSize(start, stop int64, every Duration, tu TimeUnit) int {
	approx := every.nsecs + every.months*30*nsPerDay
	if tu == UnitMilliseconds {
		approx /= nsPerMs
	}
	if approx <= 0 || stop < start {
		return 0
	}

	return int((stop-start)/approx) + 2
}
