// internal/game/types.go
//
// Core type definitions for the guess engine.
// Defines:
//   - State: coarse session state (in_progress / won).
//   - BankTile: a word-bank tile plus whether it is already placed.
//   - Snapshot: read-only view of an engine for hosts and transports.

package game

import "github.com/robalobadob/subverse/internal/puzzle"

// State represents the coarse engine state.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won" // terminal
)

// BankTile is a tile of the word bank in shuffled order.
type BankTile struct {
	puzzle.Tile
	Used bool `json:"used"`
}

// Snapshot is a copy of the engine state at one point in time.
type Snapshot struct {
	State      State         `json:"state"`
	Buffer     []puzzle.Tile `json:"buffer"`   // placed tiles, pinned tile first
	Bank       []BankTile    `json:"bank"`     // every non-pinned tile, shuffled order
	Consumed   []int         `json:"consumed"` // original indices present in Buffer, ascending
	Text       string        `json:"text"`     // Buffer joined with single spaces
	GuessCount int           `json:"guessCount"`
	LastGuess  *string       `json:"lastGuess,omitempty"`
	Placed     int           `json:"placed"`
	Total      int           `json:"total"`
	CanSubmit  bool          `json:"canSubmit"`
	Ceiling    int           `json:"ceiling"` // advisory guess target, k-1
	Terminal   bool          `json:"terminal"`
}
