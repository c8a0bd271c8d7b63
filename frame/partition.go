package frame

import (
	"bytes"
	"math"
	"sort"

	"github.com/arloliu/tsframe/endian"
	"github.com/arloliu/tsframe/internal/hash"
)

// Group is one partition: the sub-frame of rows sharing a distinct
// "by"-column tuple, plus the source row index of its first row.
type Group struct {
	Frame *Frame
	First int
}

// Partitioner splits a frame into per-key groups. The two implementations
// differ only in output order: stable mode emits groups in order of first
// occurrence, unstable mode makes no ordering promise. Gathering the
// per-group results back together is the caller's job (via Concat), which
// keeps result placement under the caller's explicit control.
type Partitioner interface {
	Partition(f *Frame, keys []string) ([]Group, error)
}

// NewHashPartitioner returns a Partitioner hashing the "by"-column tuples
// with xxHash64.
func NewHashPartitioner(stable bool) Partitioner {
	return &hashPartitioner{stable: stable}
}

type hashPartitioner struct {
	stable bool
}

// groupRows accumulates the rows of one distinct key tuple. The encoded key
// is retained so hash collisions can be told apart from genuine matches.
type groupRows struct {
	key  []byte
	sum  uint64
	rows []int
}

func (p *hashPartitioner) Partition(f *Frame, keys []string) ([]Group, error) {
	keyCols := make([]*Series, len(keys))
	for i, name := range keys {
		s, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		keyCols[i] = s
	}

	engine := endian.GetLittleEndianEngine()

	var (
		groups  []*groupRows
		buckets = make(map[uint64][]*groupRows)
		keyBuf  []byte
	)

	for row := 0; row < f.NumRows(); row++ {
		keyBuf = encodeKey(keyBuf[:0], keyCols, row, engine)
		sum := hash.Key(keyBuf)

		var grp *groupRows
		for _, candidate := range buckets[sum] {
			if bytes.Equal(candidate.key, keyBuf) {
				grp = candidate
				break
			}
		}
		if grp == nil {
			grp = &groupRows{key: append([]byte(nil), keyBuf...), sum: sum}
			buckets[sum] = append(buckets[sum], grp)
			groups = append(groups, grp)
		}
		grp.rows = append(grp.rows, row)
	}

	// Insertion order is first-occurrence order. Unstable mode reorders by
	// hash so callers cannot come to depend on incidental stability.
	if !p.stable {
		sort.Slice(groups, func(i, j int) bool { return groups[i].sum < groups[j].sum })
	}

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = Group{Frame: f.Take(g.rows), First: g.rows[0]}
	}

	return out, nil
}

// encodeKey appends a byte encoding of one row's key tuple. A leading
// validity byte per column keeps null distinct from every real value.
func encodeKey(dst []byte, keyCols []*Series, row int, engine endian.EndianEngine) []byte {
	for _, s := range keyCols {
		if s.IsNull(row) {
			dst = append(dst, 0)
			continue
		}
		dst = append(dst, 1)

		switch {
		case s.DType().isIntBacked():
			dst = engine.AppendUint64(dst, uint64(s.Int64(row)))
		case s.DType() == DTypeFloat64:
			dst = engine.AppendUint64(dst, math.Float64bits(s.Float64(row)))
		default:
			v := s.Str(row)
			dst = engine.AppendUint32(dst, uint32(len(v)))
			dst = append(dst, v...)
		}
	}

	return dst
}
