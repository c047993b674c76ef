// internal/puzzle/puzzle.go
//
// Deterministic puzzle selection for a (corpus, length, seed) triple.
// Responsibilities:
//   - Select one prefix record from the indexer using the seed.
//   - Shuffle the prefix's words into tiles tagged with their original position.
//   - Bundle both into an immutable Puzzle handed to the game engine.
//
// Same triple in, same Puzzle out: callers may cache freely, and reusing one
// seed across increasing lengths yields a stable themed sequence.

package puzzle

import (
	"errors"
	"fmt"

	"github.com/robalobadob/subverse/internal/corpus"
	"github.com/robalobadob/subverse/internal/seeded"
)

var (
	// ErrInvalidLength is returned for lengths below 1.
	ErrInvalidLength = corpus.ErrInvalidLength
	// ErrNoPuzzleAvailable is returned when no unit qualifies for the length.
	ErrNoPuzzleAvailable = errors.New("no puzzle available")
)

// Tile is one word of a prefix tagged with its 0-based original position.
// Tiles are told apart by Index, never by Word: a prefix may repeat a word.
type Tile struct {
	Word  string `json:"word"`
	Index int    `json:"index"`
}

// Puzzle is the chosen puzzle instance for a session.
type Puzzle struct {
	Length int           `json:"length"`
	Seed   string        `json:"seed"`
	Record corpus.Record `json:"record"`
	Words  []string      `json:"words"` // original order
	Tiles  []Tile        `json:"tiles"` // shuffled order
}

// Target is the exact text a winning guess must reproduce.
func (p *Puzzle) Target() string { return p.Record.PrefixText }

// GuessCeiling is the advisory number of guesses (k-1). Never enforced.
func (p *Puzzle) GuessCeiling() int { return len(p.Words) - 1 }

// Selector picks puzzles from an indexer.
type Selector struct {
	ix *corpus.Indexer
}

// NewSelector wraps ix.
func NewSelector(ix *corpus.Indexer) *Selector {
	return &Selector{ix: ix}
}

// Select returns the record for (n, seed).
func (s *Selector) Select(n int, seed string) (corpus.Record, error) {
	recs, err := s.ix.PrefixesOfLength(n)
	if err != nil {
		return corpus.Record{}, err
	}
	if len(recs) == 0 {
		return corpus.Record{}, fmt.Errorf("length %d: %w", n, ErrNoPuzzleAvailable)
	}
	return recs[seeded.PickIndex(seed, len(recs))], nil
}

// New selects a record and shuffles it into a Puzzle.
func (s *Selector) New(n int, seed string) (*Puzzle, error) {
	rec, err := s.Select(n, seed)
	if err != nil {
		return nil, err
	}
	words := corpus.Words(rec.PrefixText)
	return &Puzzle{
		Length: n,
		Seed:   seed,
		Record: rec,
		Words:  words,
		Tiles:  Shuffle(words, seed),
	}, nil
}

// Shuffle permutes words into tiles deterministically for (seed, len(words)).
// The result may equal the original order; that is allowed.
func Shuffle(words []string, seed string) []Tile {
	tiles := make([]Tile, len(words))
	for i, w := range words {
		tiles[i] = Tile{Word: w, Index: i}
	}
	return seeded.Permute(seed, tiles)
}
