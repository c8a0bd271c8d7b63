package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of an encoded group-key tuple.
func Key(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// KeyString computes the xxHash64 of a string key.
func KeyString(data string) uint64 {
	return xxhash.Sum64String(data)
}
