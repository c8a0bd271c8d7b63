package temporal

import (
	"fmt"
	"math"
	"time"

	"github.com/arloliu/tsframe/errs"
)

// Calendar years representable as int64 nanoseconds since epoch: roughly
// ±584 years around 1970. Anything outside would overflow UnixNano.
const (
	minNanosecondYear = 1386
	maxNanosecondYear = 2554
)

// InNanosecondsWindow reports whether t's calendar year lies in the window
// accepted for nanosecond-resolution timestamps.
func InNanosecondsWindow(t time.Time) bool {
	year := t.Year()

	return year >= minNanosecondYear && year <= maxNanosecondYear
}

// UnixNano is only defined on [minNanoTime, maxNanoTime]; outside it the
// result silently wraps.
var (
	minNanoTime = time.Unix(0, math.MinInt64)
	maxNanoTime = time.Unix(0, math.MaxInt64)
)

// representableInNanoseconds reports whether t.UnixNano() is well defined.
func representableInNanoseconds(t time.Time) bool {
	return !t.Before(minNanoTime) && !t.After(maxNanoTime)
}

func outOfRangeError(t time.Time) error {
	return fmt.Errorf("%w: year %d not in [%d, %d]",
		errs.ErrOutOfRange, t.Year(), minNanosecondYear, maxNanosecondYear)
}
