// internal/session/board.go
//
// Client-facing board.
// Tiles are addressed by their position in the shuffled bank; original word
// positions stay inside the engine so a client cannot read the answer off
// the payload. The reference is revealed separately once solved.

package session

import "github.com/robalobadob/subverse/internal/game"

// Slot is one word-bank position.
type Slot struct {
	Word string `json:"word"`
	Used bool   `json:"used"`
}

// Board is a game.Snapshot with original indices stripped.
type Board struct {
	State      game.State `json:"state"`
	Buffer     []string   `json:"buffer"` // placed words, pinned word first
	Bank       []Slot     `json:"bank"`   // pick by position in this list
	Text       string     `json:"text"`
	GuessCount int        `json:"guessCount"`
	LastGuess  *string    `json:"lastGuess,omitempty"`
	Placed     int        `json:"placed"`
	Total      int        `json:"total"`
	CanSubmit  bool       `json:"canSubmit"`
	Ceiling    int        `json:"ceiling"`
	Terminal   bool       `json:"terminal"`
}

func boardOf(s game.Snapshot) Board {
	b := Board{
		State:      s.State,
		Buffer:     make([]string, len(s.Buffer)),
		Bank:       make([]Slot, len(s.Bank)),
		Text:       s.Text,
		GuessCount: s.GuessCount,
		LastGuess:  s.LastGuess,
		Placed:     s.Placed,
		Total:      s.Total,
		CanSubmit:  s.CanSubmit,
		Ceiling:    s.Ceiling,
		Terminal:   s.Terminal,
	}
	for i, t := range s.Buffer {
		b.Buffer[i] = t.Word
	}
	for i, t := range s.Bank {
		b.Bank[i] = Slot{Word: t.Word, Used: t.Used}
	}
	return b
}
