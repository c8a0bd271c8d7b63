package pool

import "sync"

// Slice pools for reuse of index scratch slices in the partition and join
// hot paths.
var intSlicePool = sync.Pool{
	New: func() any { return &[]int{} },
}

// GetIntSlice retrieves an empty int slice with at least the given capacity
// from the pool.
//
// The caller must call the returned cleanup function (typically with defer)
// to return the slice to the pool.
func GetIntSlice(capacity int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]int, 0, capacity)
		*ptr = slice
	}

	return slice, func() { intSlicePool.Put(ptr) }
}
