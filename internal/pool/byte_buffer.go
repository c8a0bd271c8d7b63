package pool

import "sync"

// SnapshotBufferDefaultSize is the default capacity of a ByteBuffer obtained
// from the pool; buffers grown past SnapshotBufferMaxThreshold are dropped
// instead of returned, keeping the pool's resident memory bounded.
const (
	SnapshotBufferDefaultSize  = 1024 * 16  // 16KiB
	SnapshotBufferMaxThreshold = 1024 * 128 // 128KiB
)

// ByteBuffer is a reusable byte slice wrapper for building binary payloads.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

var byteBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, SnapshotBufferDefaultSize)}
	},
}

// GetByteBuffer retrieves an empty ByteBuffer from the pool.
// Return it with PutByteBuffer when done, typically via defer.
func GetByteBuffer() *ByteBuffer {
	bb, _ := byteBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutByteBuffer returns a ByteBuffer to the pool unless it has grown past
// the retention threshold.
func PutByteBuffer(bb *ByteBuffer) {
	if cap(bb.B) > SnapshotBufferMaxThreshold {
		return
	}
	byteBufferPool.Put(bb)
}
