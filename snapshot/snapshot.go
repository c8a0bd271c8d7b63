// Package snapshot serializes frames to a compact binary form for spilling
// or transport.
//
// Layout: a fixed header (magic "TSNP", format version, compression type,
// column and row counts), the compressed columnar payload, and a CRC-32C
// checksum of the compressed payload. Within the payload each column stores
// its name, dtype, an optional validity bitmap, and its values; all
// fixed-width integers are little-endian.
package snapshot

import (
	"fmt"
	"hash/crc32"
	"math"

	"github.com/arloliu/tsframe/compress"
	"github.com/arloliu/tsframe/endian"
	"github.com/arloliu/tsframe/errs"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/pool"
)

const (
	magic   = "TSNP"
	version = 0x1

	headerSize  = 4 + 1 + 1 + 4 + 4
	trailerSize = 4
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Encode serializes a frame, compressing the payload with the given codec.
func Encode(f *frame.Frame, ctype compress.Type) ([]byte, error) {
	codec, err := compress.NewCodec(ctype)
	if err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()

	buf := pool.GetByteBuffer()
	defer pool.PutByteBuffer(buf)

	rows := f.NumRows()
	for i := 0; i < f.NumCols(); i++ {
		buf.B = appendColumn(buf.B, f.SeriesAt(i), rows, engine)
	}

	payload, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(payload)+trailerSize)
	out = append(out, magic...)
	out = append(out, version, byte(ctype))
	out = engine.AppendUint32(out, uint32(f.NumCols()))
	out = engine.AppendUint32(out, uint32(rows))
	out = append(out, payload...)
	out = engine.AppendUint32(out, crc32.Checksum(payload, castagnoli))

	return out, nil
}

// Decode reconstructs a frame from snapshot bytes.
func Decode(data []byte) (*frame.Frame, error) {
	engine := endian.GetLittleEndianEngine()

	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than header and trailer", errs.ErrInvalidSnapshot, len(data))
	}
	if string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrInvalidSnapshot)
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: unknown version %d", errs.ErrInvalidSnapshot, data[4])
	}

	codec, err := compress.NewCodec(compress.Type(data[5]))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
	}

	ncols := int(engine.Uint32(data[6:10]))
	rows := int(engine.Uint32(data[10:14]))

	payload := data[headerSize : len(data)-trailerSize]
	wantSum := engine.Uint32(data[len(data)-trailerSize:])
	if sum := crc32.Checksum(payload, castagnoli); sum != wantSum {
		return nil, fmt.Errorf("%w: got 0x%08x, want 0x%08x", errs.ErrChecksumMismatch, sum, wantSum)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
	}

	series := make([]*frame.Series, ncols)
	for i := 0; i < ncols; i++ {
		s, rest, err := decodeColumn(raw, rows, engine)
		if err != nil {
			return nil, err
		}
		series[i] = s
		raw = rest
	}

	return frame.New(series...)
}

func appendColumn(dst []byte, s *frame.Series, rows int, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint16(dst, uint16(len(s.Name())))
	dst = append(dst, s.Name()...)
	dst = append(dst, byte(s.DType()))

	if s.HasNulls() {
		dst = append(dst, 1)
		bitmap := make([]byte, (rows+7)/8)
		for i := 0; i < rows; i++ {
			if !s.IsNull(i) {
				bitmap[i/8] |= 1 << (i % 8)
			}
		}
		dst = append(dst, bitmap...)
	} else {
		dst = append(dst, 0)
	}

	switch s.DType() {
	case frame.DTypeFloat64:
		for i := 0; i < rows; i++ {
			dst = engine.AppendUint64(dst, math.Float64bits(s.Float64(i)))
		}
	case frame.DTypeString:
		for i := 0; i < rows; i++ {
			v := s.Str(i)
			dst = engine.AppendUint32(dst, uint32(len(v)))
			dst = append(dst, v...)
		}
	default:
		for i := 0; i < rows; i++ {
			dst = engine.AppendUint64(dst, uint64(s.Int64(i)))
		}
	}

	return dst
}

func decodeColumn(raw []byte, rows int, engine endian.EndianEngine) (*frame.Series, []byte, error) {
	if len(raw) < 2 {
		return nil, nil, truncatedErr()
	}
	nameLen := int(engine.Uint16(raw))
	raw = raw[2:]
	if len(raw) < nameLen+2 {
		return nil, nil, truncatedErr()
	}
	name := string(raw[:nameLen])
	dtype := frame.DType(raw[nameLen])
	hasNulls := raw[nameLen+1] == 1
	raw = raw[nameLen+2:]

	var valid []bool
	if hasNulls {
		bitmapLen := (rows + 7) / 8
		if len(raw) < bitmapLen {
			return nil, nil, truncatedErr()
		}
		valid = make([]bool, rows)
		for i := 0; i < rows; i++ {
			valid[i] = raw[i/8]&(1<<(i%8)) != 0
		}
		raw = raw[bitmapLen:]
	}

	switch dtype {
	case frame.DTypeFloat64:
		if len(raw) < rows*8 {
			return nil, nil, truncatedErr()
		}
		vals := make([]float64, rows)
		for i := range vals {
			vals[i] = math.Float64frombits(engine.Uint64(raw[i*8:]))
		}

		return frame.NewFloat64Series(name, vals, valid), raw[rows*8:], nil

	case frame.DTypeString:
		vals := make([]string, rows)
		for i := range vals {
			if len(raw) < 4 {
				return nil, nil, truncatedErr()
			}
			strLen := int(engine.Uint32(raw))
			raw = raw[4:]
			if len(raw) < strLen {
				return nil, nil, truncatedErr()
			}
			vals[i] = string(raw[:strLen])
			raw = raw[strLen:]
		}

		return frame.NewStringSeries(name, vals, valid), raw, nil

	default:
		if len(raw) < rows*8 {
			return nil, nil, truncatedErr()
		}
		vals := make([]int64, rows)
		for i := range vals {
			vals[i] = int64(engine.Uint64(raw[i*8:]))
		}
		s, err := frame.NewTypedInt64Series(name, dtype, vals, valid)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", errs.ErrInvalidSnapshot, err)
		}

		return s, raw[rows*8:], nil
	}
}

func truncatedErr() error {
	return fmt.Errorf("%w: truncated column payload", errs.ErrInvalidSnapshot)
}
