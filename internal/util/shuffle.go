package util

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
)

// SeedFromKey derives a stable shuffle seed from a string key such as an attempt id.
func SeedFromKey(key string) int64 {
	sum := sha256.Sum256([]byte(key))
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Shuffle returns a permuted copy of items. The same seed always yields the same
// permutation; items itself is left untouched.
func Shuffle[T any](items []T, seed int64) []T {
	out := make([]T, len(items))
	copy(out, items)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
