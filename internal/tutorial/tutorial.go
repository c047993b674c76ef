// internal/tutorial/tutorial.go
//
// Onboarding callouts gating player interactions.
//
// A tutorial is an ordered list of steps, each highlighting one operation.
// The host consults the gate before forwarding an interaction to the engine:
//
//	Enabled(op)      false while a callout is waiting for acknowledgment
//	Callout(op)      if the current step highlights op, show it instead of acting
//	Acknowledge(ack) discrete message closing the callout and moving on
//
// The engine never sees the gate. A nil *Gate is a finished tutorial.

package tutorial

// Op names a gated interaction.
type Op string

const (
	OpPick   Op = "pick"
	OpUndo   Op = "undo"
	OpReset  Op = "reset"
	OpSubmit Op = "submit"
)

// Step is a single callout.
type Step struct {
	Num  int    `json:"num"`
	Step int    `json:"step"`
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Ack acknowledges the callout identified by Num/Step.
type Ack struct {
	Num  int `json:"num"`
	Step int `json:"step"`
}

// Gate tracks tutorial progress for one session. Not safe for concurrent use.
type Gate struct {
	steps   []Step
	cur     int
	pending bool
}

// New returns a gate walking steps in order.
func New(steps ...Step) *Gate {
	return &Gate{steps: append([]Step(nil), steps...)}
}

// Default is the first-puzzle walkthrough.
func Default() []Step {
	return []Step{
		{Num: 1, Step: 1, Op: OpPick, Text: "Tap the words in the order they appear in the verse."},
		{Num: 1, Step: 2, Op: OpUndo, Text: "Take back the last word you placed."},
		{Num: 1, Step: 3, Op: OpReset, Text: "Clear everything except the first word."},
		{Num: 1, Step: 4, Op: OpSubmit, Text: "Check your answer once every word is placed."},
	}
}

// Enabled reports whether op may be forwarded to the engine right now.
func (g *Gate) Enabled(op Op) bool {
	return g == nil || !g.pending
}

// Callout activates the current step if it highlights op.
// While active, the gate blocks every operation until acknowledged.
func (g *Gate) Callout(op Op) (Step, bool) {
	if g == nil || g.pending || g.Done() || g.steps[g.cur].Op != op {
		return Step{}, false
	}
	g.pending = true
	return g.steps[g.cur], true
}

// Acknowledge closes the active callout. Stale or unexpected acks are ignored.
func (g *Gate) Acknowledge(a Ack) bool {
	if g == nil || !g.pending {
		return false
	}
	s := g.steps[g.cur]
	if s.Num != a.Num || s.Step != a.Step {
		return false
	}
	g.pending = false
	g.cur++
	return true
}

// Pending returns the callout awaiting acknowledgment, if any.
func (g *Gate) Pending() (Step, bool) {
	if g == nil || !g.pending {
		return Step{}, false
	}
	return g.steps[g.cur], true
}

// Done reports whether every step has been acknowledged.
func (g *Gate) Done() bool {
	return g == nil || g.cur >= len(g.steps)
}
