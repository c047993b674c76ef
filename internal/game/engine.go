// internal/game/engine.go
//
// Guess engine for a single puzzle session.
// Responsibilities:
//   - Start with the first word (original index 0) pinned in the buffer.
//   - Pick / undo / reset tiles while the puzzle is unsolved.
//   - Submit a full buffer and compare it to the target text exactly.
//   - Track state transitions: in_progress → won (absorbing).
//
// Notes:
//   - Operations that violate their preconditions are rejected as no-ops and
//     report ok=false; state is never touched and nothing panics.
//   - An unchanged resubmission is rejected so it is never counted twice.
//   - The engine is single-session and not safe for concurrent use; hosts
//     serialize calls.
package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/puzzle"
)

// Engine is the interactive state machine for one puzzle.
type Engine struct {
	// OnSubmitResult is called after every accepted submit.
	OnSubmitResult func(matched bool)
	// OnComplete is called once, on the winning submit.
	OnComplete func(won bool)

	puzzle   *puzzle.Puzzle
	buffer   []puzzle.Tile
	consumed []bool // by original index
	byIndex  []puzzle.Tile

	guessCount int
	lastGuess  string
	guessed    bool
	terminal   bool
}

// New constructs an engine with the pinned tile already placed.
func New(p *puzzle.Puzzle) (*Engine, error) {
	k := len(p.Words)
	if k == 0 || len(p.Tiles) != k {
		return nil, errors.New("game: puzzle has no words or mismatched tiles")
	}
	byIndex := make([]puzzle.Tile, k)
	seen := make([]bool, k)
	for _, t := range p.Tiles {
		if t.Index < 0 || t.Index >= k {
			return nil, errors.New("game: tile index out of range")
		}
		if seen[t.Index] {
			return nil, fmt.Errorf("game: duplicate tile index %d", t.Index)
		}
		if t.Word != p.Words[t.Index] {
			return nil, fmt.Errorf("game: tile %d is %q, want %q", t.Index, t.Word, p.Words[t.Index])
		}
		seen[t.Index] = true
		byIndex[t.Index] = t
	}
	e := &Engine{
		puzzle:   p,
		consumed: make([]bool, k),
		byIndex:  byIndex,
	}
	e.clear()
	return e, nil
}

// Puzzle returns the puzzle the engine was built from.
func (e *Engine) Puzzle() *puzzle.Puzzle { return e.puzzle }

// Pick appends the tile with the given original index to the buffer.
func (e *Engine) Pick(index int) bool {
	if e.terminal || index < 0 || index >= len(e.consumed) || e.consumed[index] {
		return false
	}
	e.buffer = append(e.buffer, e.byIndex[index])
	e.consumed[index] = true
	return true
}

// Undo removes the last placed tile. The pinned tile is never removed.
func (e *Engine) Undo() bool {
	if e.terminal || len(e.buffer) <= 1 {
		return false
	}
	last := e.buffer[len(e.buffer)-1]
	e.buffer = e.buffer[:len(e.buffer)-1]
	e.consumed[last.Index] = false
	return true
}

// Reset returns every tile except the pinned one to the bank.
func (e *Engine) Reset() bool {
	if e.terminal {
		return false
	}
	e.clear()
	return true
}

// Submit scores a full, changed buffer against the target.
// Returns whether it matched and whether the submit was accepted at all.
func (e *Engine) Submit() (matched, ok bool) {
	if !e.CanSubmit() {
		return false, false
	}
	text := e.Text()
	e.lastGuess, e.guessed = text, true
	e.guessCount++

	matched = text == e.puzzle.Target()
	if matched {
		e.terminal = true
	}
	if e.OnSubmitResult != nil {
		e.OnSubmitResult(matched)
	}
	if matched && e.OnComplete != nil {
		e.OnComplete(true)
	}
	return matched, true
}

// CanSubmit reports whether Submit would be accepted now.
func (e *Engine) CanSubmit() bool {
	if e.terminal || len(e.buffer) != len(e.consumed) {
		return false
	}
	return !e.guessed || e.Text() != e.lastGuess
}

// Text joins the buffer with single spaces.
func (e *Engine) Text() string {
	words := make([]string, len(e.buffer))
	for i, t := range e.buffer {
		words[i] = t.Word
	}
	return corpus.Join(words)
}

// Terminal reports whether the puzzle has been solved.
func (e *Engine) Terminal() bool { return e.terminal }

// GuessCount returns the number of accepted submits.
func (e *Engine) GuessCount() int { return e.guessCount }

// State reports a coarse state value.
func (e *Engine) State() State {
	if e.terminal {
		return StateWon
	}
	return StateInProgress
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		State:      e.State(),
		Buffer:     append([]puzzle.Tile(nil), e.buffer...),
		Text:       e.Text(),
		GuessCount: e.guessCount,
		Placed:     len(e.buffer),
		Total:      len(e.consumed),
		CanSubmit:  e.CanSubmit(),
		Ceiling:    e.puzzle.GuessCeiling(),
		Terminal:   e.terminal,
	}
	if e.guessed {
		last := e.lastGuess
		s.LastGuess = &last
	}
	for _, t := range e.buffer {
		s.Consumed = append(s.Consumed, t.Index)
	}
	sort.Ints(s.Consumed)
	for _, t := range e.puzzle.Tiles {
		if t.Index == 0 {
			continue
		}
		s.Bank = append(s.Bank, BankTile{Tile: t, Used: e.consumed[t.Index]})
	}
	return s
}

// clear leaves only the pinned tile placed.
func (e *Engine) clear() {
	for i := range e.consumed {
		e.consumed[i] = false
	}
	e.buffer = append(e.buffer[:0], e.byIndex[0])
	e.consumed[0] = true
}
