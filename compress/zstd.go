package compress

// ZstdCompressor provides Zstandard compression for snapshot payloads.
//
// Zstd favors compression ratio over speed, which suits snapshots meant for
// spill-to-disk or network transport rather than hot-path buffers. The
// implementation is selected at build time: gozstd (cgo) when available,
// the pure-Go klauspost encoder otherwise. Both produce interchangeable
// Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
