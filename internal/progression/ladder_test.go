package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func only(ns ...int) Available {
	set := map[int]bool{}
	for _, n := range ns {
		set[n] = true
	}
	return func(n int) bool { return set[n] }
}

func TestLadderClimb(t *testing.T) {
	has := only(2, 3, 5)
	l, err := NewLadder(1, 6, has)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Current)

	_, ok := l.Advance(has)
	assert.False(t, ok, "level not cleared yet")

	l.OnComplete(false)
	_, ok = l.Advance(has)
	assert.False(t, ok)

	l.OnComplete(true)
	n, ok := l.Advance(has)
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.False(t, l.Cleared)

	l.OnComplete(true)
	n, ok = l.Advance(has)
	require.True(t, ok)
	assert.Equal(t, 5, n, "4 has no puzzle and is skipped")

	assert.False(t, l.Finished(has))
	l.OnComplete(true)
	assert.True(t, l.Finished(has))
	_, ok = l.Advance(has)
	assert.False(t, ok)
	assert.Equal(t, 5, l.Current)
}

func TestLadderNextDoesNotMove(t *testing.T) {
	has := only(2, 4)
	l, err := NewLadder(2, 4, has)
	require.NoError(t, err)

	l.OnComplete(true)
	n, ok := l.Next(has)
	require.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 2, l.Current)
	assert.True(t, l.Cleared)

	l.MoveTo(n)
	assert.Equal(t, 4, l.Current)
	assert.False(t, l.Cleared)
}

func TestNewLadderErrors(t *testing.T) {
	_, err := NewLadder(0, 3, nil)
	assert.Error(t, err)
	_, err = NewLadder(4, 3, nil)
	assert.Error(t, err)
	_, err = NewLadder(1, 3, only(9))
	assert.Error(t, err)
}
