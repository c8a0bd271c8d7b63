// Package errs defines the sentinel errors shared across tsframe packages.
//
// All errors are wrapped at their use sites with fmt.Errorf("%w: ...") so
// callers can match them with errors.Is while still receiving the offending
// column name, dtype, or value in the message.
package errs

import "errors"

// Upsampling errors.
var (
	// ErrUnsupportedType indicates the index column dtype is not Date or Datetime.
	ErrUnsupportedType = errors.New("unsupported index column dtype")

	// ErrEmptyDomain indicates a partition whose index column holds only nulls,
	// leaving no first/last timestamp to span a grid.
	ErrEmptyDomain = errors.New("cannot determine upsample boundaries, all index elements are null")

	// ErrZeroDuration indicates a step duration with no calendar and no physical
	// component, which would generate an unbounded grid.
	ErrZeroDuration = errors.New("duration must be positive")

	// ErrOutOfRange indicates a calendar timestamp outside the window
	// representable at nanosecond resolution.
	ErrOutOfRange = errors.New("timestamp outside nanosecond-representable window")

	// ErrIndexedDuration indicates an "i" (row-index count) duration used where
	// a temporal duration is required.
	ErrIndexedDuration = errors.New("index-count duration not valid in temporal context")

	// ErrInvalidDuration indicates malformed duration mini-language input.
	ErrInvalidDuration = errors.New("invalid duration string")
)

// Frame errors.
var (
	// ErrColumnNotFound indicates a column name absent from the frame.
	ErrColumnNotFound = errors.New("column not found")

	// ErrLengthMismatch indicates series of differing lengths in one frame.
	ErrLengthMismatch = errors.New("series length mismatch")

	// ErrSchemaMismatch indicates frames whose column names or dtypes differ
	// where an identical schema is required.
	ErrSchemaMismatch = errors.New("frame schema mismatch")

	// ErrInvalidCast indicates a cast between incompatible dtypes.
	ErrInvalidCast = errors.New("invalid cast")
)

// Snapshot errors.
var (
	// ErrInvalidSnapshot indicates snapshot bytes that are truncated or carry
	// an unknown magic, version or codec.
	ErrInvalidSnapshot = errors.New("invalid snapshot data")

	// ErrChecksumMismatch indicates snapshot payload corruption.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)
