// internal/seeded/seeded.go
//
// Stateless seed → value derivation.
//
// Every value is a pure function of (seed, stream, counter):
//
//	blake2b-256(stream 0x00 seed 0x00 counter_be64)[:8] >> 11  /  2^53
//
// which yields a float64 in [0,1). Nothing here holds generator state, so the
// same seed reproduces the same puzzle on any machine and any build.
//
// Streams keep selection and shuffling independent for a shared seed.

package seeded

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Stream labels.
const (
	StreamPick    = "pick"
	StreamPermute = "permute"
)

// Float returns the i-th value of a stream, in [0,1).
func Float(seed, stream string, i uint64) float64 {
	buf := make([]byte, 0, len(stream)+len(seed)+10)
	buf = append(buf, stream...)
	buf = append(buf, 0)
	buf = append(buf, seed...)
	buf = append(buf, 0)
	buf = binary.BigEndian.AppendUint64(buf, i)

	sum := blake2b.Sum256(buf)
	return float64(binary.BigEndian.Uint64(sum[:8])>>11) / (1 << 53)
}

// Intn maps the i-th value of a stream onto [0, n). n <= 0 yields 0.
func Intn(seed, stream string, i uint64, n int) int {
	if n <= 0 {
		return 0
	}
	k := int(Float(seed, stream, i) * float64(n))
	if k >= n {
		k = n - 1
	}
	return k
}

// PickIndex maps seed to a selection index in [0, n).
func PickIndex(seed string, n int) int {
	return Intn(seed, StreamPick, 0, n)
}

// Permutation returns a deterministic permutation of 0..n-1 (Fisher–Yates).
func Permutation(seed string, n int) []int {
	if n < 0 {
		n = 0
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := Intn(seed, StreamPermute, uint64(i), i+1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Permute returns a new slice holding items in the order of Permutation(seed, len(items)).
func Permute[T any](seed string, items []T) []T {
	out := make([]T, len(items))
	for i, j := range Permutation(seed, len(items)) {
		out[i] = items[j]
	}
	return out
}
