// internal/session/session.go
//
// One player's puzzle session.
// Responsibilities:
//   - Own the puzzle, its guess engine, an optional tutorial gate and an
//     optional level ladder.
//   - Consult the gate before forwarding pick/undo/reset/submit to the engine.
//   - Feed the engine's completion signal into the ladder and swap in the next
//     level's puzzle on request.
//
// Notes:
//   - The engine is single-threaded; a Session serializes every call with its
//     own mutex so concurrent requests for one session never interleave.
//   - Nothing here is persisted.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/robalobadob/subverse/internal/game"
	"github.com/robalobadob/subverse/internal/progression"
	"github.com/robalobadob/subverse/internal/puzzle"
	"github.com/robalobadob/subverse/internal/tutorial"
)

// Options configure a new session.
type Options struct {
	Length   int
	Seed     string
	Tutorial bool
	// LadderMax > 0 turns the session into a level climb from Length to LadderMax.
	LadderMax int
}

// Session bundles per-player state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	sel    *puzzle.Selector
	seed   string
	engine *game.Engine
	gate   *tutorial.Gate
	ladder *progression.Ladder
}

// Result describes the outcome of one interaction.
type Result struct {
	Accepted bool           `json:"accepted"`
	Blocked  bool           `json:"blocked,omitempty"` // refused by the tutorial gate
	Matched  *bool          `json:"matched,omitempty"` // set on accepted submits
	Callout  *tutorial.Step `json:"callout,omitempty"`
	View     View           `json:"view"`
}

// View is the client-facing state of a session.
type View struct {
	ID        string              `json:"sessionId"`
	Seed      string              `json:"seed"`
	Length    int                 `json:"length"`
	Reference string              `json:"reference,omitempty"` // revealed once solved
	Game      Board               `json:"game"`
	Callout   *tutorial.Step      `json:"callout,omitempty"`
	Ladder    *progression.Ladder `json:"ladder,omitempty"`
	Finished  bool                `json:"finished,omitempty"` // top ladder level cleared
}

// New selects the puzzle for opts and builds a session around it.
func New(id string, sel *puzzle.Selector, opts Options) (*Session, error) {
	s := &Session{ID: id, CreatedAt: time.Now().UTC(), sel: sel, seed: opts.Seed}

	length := opts.Length
	if length < 1 {
		return nil, puzzle.ErrInvalidLength
	}
	if opts.LadderMax > 0 {
		l, err := progression.NewLadder(opts.Length, opts.LadderMax, s.available)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", puzzle.ErrNoPuzzleAvailable, err)
		}
		s.ladder = l
		length = l.Current
	}
	if err := s.load(length); err != nil {
		return nil, err
	}
	if opts.Tutorial {
		s.gate = tutorial.New(tutorial.Default()...)
	}
	return s, nil
}

// View returns the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// Pick places the tile at position slot of the word bank.
func (s *Session) Pick(slot int) Result {
	return s.interact(tutorial.OpPick, func() Result {
		bank := s.engine.Snapshot().Bank
		if slot < 0 || slot >= len(bank) {
			return Result{}
		}
		return Result{Accepted: s.engine.Pick(bank[slot].Index)}
	})
}

// Undo removes the last placed tile.
func (s *Session) Undo() Result {
	return s.interact(tutorial.OpUndo, func() Result {
		return Result{Accepted: s.engine.Undo()}
	})
}

// Reset clears the buffer back to the pinned tile.
func (s *Session) Reset() Result {
	return s.interact(tutorial.OpReset, func() Result {
		return Result{Accepted: s.engine.Reset()}
	})
}

// Submit checks the current arrangement.
func (s *Session) Submit() Result {
	return s.interact(tutorial.OpSubmit, func() Result {
		matched, ok := s.engine.Submit()
		r := Result{Accepted: ok}
		if ok {
			r.Matched = &matched
		}
		return r
	})
}

// Acknowledge closes the pending tutorial callout.
func (s *Session) Acknowledge(a tutorial.Ack) Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Result{Accepted: s.gate.Acknowledge(a), View: s.view()}
}

// Next moves a solved ladder session to its next level.
func (s *Session) Next() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ladder == nil {
		return Result{View: s.view()}, nil
	}
	n, ok := s.ladder.Next(s.available)
	if !ok {
		return Result{View: s.view()}, nil
	}
	if err := s.load(n); err != nil {
		return Result{}, err
	}
	s.ladder.MoveTo(n)
	return Result{Accepted: true, View: s.view()}, nil
}

// interact runs fn under the lock, unless the tutorial gate intercepts op.
func (s *Session) interact(op tutorial.Op, fn func() Result) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Enabled(op) {
		return Result{Blocked: true, View: s.view()}
	}
	if step, ok := s.gate.Callout(op); ok {
		return Result{Callout: &step, View: s.view()}
	}
	r := fn()
	r.View = s.view()
	return r
}

// load replaces the engine with a fresh one for length n.
func (s *Session) load(n int) error {
	p, err := s.sel.New(n, s.seed)
	if err != nil {
		return err
	}
	e, err := game.New(p)
	if err != nil {
		return err
	}
	if s.ladder != nil {
		e.OnComplete = s.ladder.OnComplete
	}
	s.engine = e
	return nil
}

func (s *Session) available(n int) bool {
	_, err := s.sel.Select(n, s.seed)
	return err == nil
}

func (s *Session) view() View {
	p := s.engine.Puzzle()
	v := View{
		ID:     s.ID,
		Seed:   s.seed,
		Length: p.Length,
		Game:   boardOf(s.engine.Snapshot()),
	}
	if s.engine.Terminal() {
		v.Reference = p.Record.Ref.String()
	}
	if step, ok := s.gate.Pending(); ok {
		v.Callout = &step
	}
	if s.ladder != nil {
		l := *s.ladder
		v.Ladder = &l
		v.Finished = l.Finished(s.available)
	}
	return v
}
