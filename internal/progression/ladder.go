// internal/progression/ladder.go
//
// Level progression over subverse lengths.
// A ladder walks lengths Min..Max with one seed, so a player climbs a themed
// sequence of ever longer prefixes. Winning a level unlocks the next one;
// lengths with no eligible prefix are skipped.

package progression

import "fmt"

// Ladder tracks the current level. Not safe for concurrent use.
type Ladder struct {
	Min     int  `json:"min"`
	Max     int  `json:"max"`
	Current int  `json:"current"`
	Cleared bool `json:"cleared"`
}

// Available reports whether a length has at least one puzzle.
type Available func(n int) bool

// NewLadder positions a ladder on the first available length >= min.
func NewLadder(min, max int, has Available) (*Ladder, error) {
	if min < 1 || max < min {
		return nil, fmt.Errorf("progression: invalid range %d..%d", min, max)
	}
	l := &Ladder{Min: min, Max: max}
	n, ok := l.find(min, has)
	if !ok {
		return nil, fmt.Errorf("progression: no puzzle in range %d..%d", min, max)
	}
	l.Current = n
	return l, nil
}

// OnComplete records the outcome of the current level.
func (l *Ladder) OnComplete(won bool) {
	if won {
		l.Cleared = true
	}
}

// Next reports the length Advance would move to, without moving.
func (l *Ladder) Next(has Available) (int, bool) {
	if !l.Cleared {
		return l.Current, false
	}
	n, ok := l.find(l.Current+1, has)
	if !ok {
		return l.Current, false
	}
	return n, true
}

// MoveTo makes n the current, uncleared level.
func (l *Ladder) MoveTo(n int) {
	l.Current, l.Cleared = n, false
}

// Advance moves to the next available length once the current one is cleared.
func (l *Ladder) Advance(has Available) (int, bool) {
	n, ok := l.Next(has)
	if ok {
		l.MoveTo(n)
	}
	return n, ok
}

// Finished reports whether the top level has been cleared.
func (l *Ladder) Finished(has Available) bool {
	if !l.Cleared {
		return false
	}
	_, ok := l.find(l.Current+1, has)
	return !ok
}

func (l *Ladder) find(from int, has Available) (int, bool) {
	for n := from; n <= l.Max; n++ {
		if has == nil || has(n) {
			return n, true
		}
	}
	return 0, false
}
