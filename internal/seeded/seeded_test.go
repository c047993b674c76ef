package seeded

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatRangeAndDeterminism(t *testing.T) {
	for i := uint64(0); i < 200; i++ {
		v := Float("2026-10-16", StreamPick, i)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
		assert.Equal(t, v, Float("2026-10-16", StreamPick, i))
	}
}

func TestFloatSeparatesInputs(t *testing.T) {
	base := Float("seed", StreamPick, 0)
	assert.NotEqual(t, base, Float("seed", StreamPermute, 0))
	assert.NotEqual(t, base, Float("seed", StreamPick, 1))
	assert.NotEqual(t, base, Float("seed2", StreamPick, 0))
	// The separator keeps ("ab","c") apart from ("a","bc").
	assert.NotEqual(t, Float("c", "ab", 0), Float("bc", "a", 0))
}

func TestPickIndex(t *testing.T) {
	assert.Equal(t, 0, PickIndex("x", 0))
	assert.Equal(t, 0, PickIndex("x", 1))

	const n = 7
	hits := make([]int, n)
	for i := 0; i < 2000; i++ {
		k := PickIndex(fmt.Sprintf("seed-%d", i), n)
		require.True(t, k >= 0 && k < n, "index %d out of range", k)
		hits[k]++
	}
	for k, h := range hits {
		assert.Greater(t, h, 0, "index %d never picked", k)
	}
	assert.Equal(t, PickIndex("0.12345678", 1000), PickIndex("0.12345678", 1000))
}

func TestPermutation(t *testing.T) {
	for n := 0; n < 12; n++ {
		p := Permutation("0.12345678", n)
		require.Len(t, p, n)
		sorted := append([]int(nil), p...)
		sort.Ints(sorted)
		for i, v := range sorted {
			assert.Equal(t, i, v)
		}
		assert.Equal(t, p, Permutation("0.12345678", n))
	}
	assert.Empty(t, Permutation("x", -3))
}

func TestPermuteReachesEveryPosition(t *testing.T) {
	const n = 4
	seen := make([][n]bool, n)
	for i := 0; i < 500; i++ {
		for pos, v := range Permutation(fmt.Sprint(i), n) {
			seen[v][pos] = true
		}
	}
	for v := range seen {
		for pos := range seen[v] {
			assert.True(t, seen[v][pos], "item %d never landed at %d", v, pos)
		}
	}
}

func TestPermuteDoesNotTouchInput(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	out := Permute("seed", in)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, in)
	assert.ElementsMatch(t, in, out)
	assert.Equal(t, out, Permute("seed", in))
}
