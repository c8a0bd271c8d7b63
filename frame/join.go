package frame

import (
	"fmt"

	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/internal/pool"
)

// LeftJoin joins right onto left by exact equality of the named key column.
//
// Every left row is kept. Left rows with no key match are padded with nulls
// in all right columns; right rows whose key is absent from the left side
// are dropped. A null key never matches anything, on either side. If a right
// key occurs more than once, the matching left row is emitted once per
// occurrence, in right row order.
//
// The key column must carry the same int64-backed dtype on both sides.
// Right columns other than the key are appended after the left columns;
// a right column whose name collides with a left column is suffixed
// with "_right".
func LeftJoin(left, right *Frame, key string) (*Frame, error) {
	leftKey, err := left.Column(key)
	if err != nil {
		return nil, err
	}
	rightKey, err := right.Column(key)
	if err != nil {
		return nil, err
	}

	if leftKey.DType() != rightKey.DType() || !leftKey.DType().isIntBacked() {
		return nil, fmt.Errorf("%w: join key %q is %s on the left and %s on the right",
			errs.ErrSchemaMismatch, key, leftKey.DType(), rightKey.DType())
	}

	// Hash side: right key value to row indices, null keys excluded.
	matches := make(map[int64][]int, rightKey.Len())
	for i := 0; i < rightKey.Len(); i++ {
		if rightKey.IsNull(i) {
			continue
		}
		v := rightKey.Int64(i)
		matches[v] = append(matches[v], i)
	}

	leftIdx, cleanupL := pool.GetIntSlice(leftKey.Len())
	defer cleanupL()
	rightIdx, cleanupR := pool.GetIntSlice(leftKey.Len())
	defer cleanupR()

	for i := 0; i < leftKey.Len(); i++ {
		if leftKey.IsNull(i) {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			continue
		}

		rows := matches[leftKey.Int64(i)]
		if len(rows) == 0 {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, -1)
			continue
		}
		for _, r := range rows {
			leftIdx = append(leftIdx, i)
			rightIdx = append(rightIdx, r)
		}
	}

	series := make([]*Series, 0, left.NumCols()+right.NumCols()-1)
	for _, s := range left.series {
		series = append(series, s.Take(leftIdx))
	}
	for _, s := range right.series {
		if s.Name() == key {
			continue
		}
		taken := s.Take(rightIdx)
		if _, ok := left.byName[s.Name()]; ok {
			taken = taken.Rename(s.Name() + "_right")
		}
		series = append(series, taken)
	}

	return New(series...)
}
