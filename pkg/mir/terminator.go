package mir

import (
	"fmt"
	"strings"
)

// Successor is one control-flow edge out of a block: the target block
// index, the display label for the edge, and whether the edge is taken
// on the unwind/cleanup path rather than normal continuation.
type Successor struct {
	Target int
	Label  string
	Unwind bool
}

// Terminator classifies how a basic block ends. Each variant carries
// its typed successor references and maps them to (target, label, role)
// triples via Successors. Head renders the terminator's textual head,
// excluding the successor list, which the graph pane draws as edges.
type Terminator interface {
	Head() string
	Successors() []Successor
	Span() SpanID
}

// Goto transfers control unconditionally to a single block.
type Goto struct {
	Target int
	SpanID SpanID
}

func (t *Goto) Head() string { return "goto" }

func (t *Goto) Successors() []Successor {
	return []Successor{{Target: t.Target}}
}

func (t *Goto) Span() SpanID { return t.SpanID }

// SwitchInt branches on an integer discriminant. Values holds the
// display text of each case value; Targets is one longer than Values,
// its last entry being the otherwise target.
type SwitchInt struct {
	Discr   string
	Values  []string
	Targets []int
	SpanID  SpanID
}

func (t *SwitchInt) Head() string {
	return fmt.Sprintf("switchInt(%s)", t.Discr)
}

func (t *SwitchInt) Successors() []Successor {
	succs := make([]Successor, len(t.Targets))
	for i, target := range t.Targets {
		label := "otherwise"
		if i < len(t.Values) {
			label = t.Values[i]
		}
		succs[i] = Successor{Target: target, Label: label}
	}
	return succs
}

func (t *SwitchInt) Span() SpanID { return t.SpanID }

// Return hands control back to the caller.
type Return struct {
	SpanID SpanID
}

func (t *Return) Head() string            { return "return" }
func (t *Return) Successors() []Successor { return nil }
func (t *Return) Span() SpanID            { return t.SpanID }

// Unreachable marks a block that must never be executed.
type Unreachable struct {
	SpanID SpanID
}

func (t *Unreachable) Head() string            { return "unreachable" }
func (t *Unreachable) Successors() []Successor { return nil }
func (t *Unreachable) Span() SpanID            { return t.SpanID }

// Resume continues unwinding in the caller.
type Resume struct {
	SpanID SpanID
}

func (t *Resume) Head() string            { return "resume" }
func (t *Resume) Successors() []Successor { return nil }
func (t *Resume) Span() SpanID            { return t.SpanID }

// Drop releases a place's resources, continuing at Target on success.
// Unwind is the cleanup block taken if the release itself panics, or
// -1 if there is none.
type Drop struct {
	Place  string
	Target int
	Unwind int
	SpanID SpanID
}

func (t *Drop) Head() string {
	return fmt.Sprintf("drop(%s)", t.Place)
}

func (t *Drop) Successors() []Successor {
	succs := []Successor{{Target: t.Target, Label: "return"}}
	if t.Unwind >= 0 {
		succs = append(succs, Successor{Target: t.Unwind, Label: "unwind", Unwind: true})
	}
	return succs
}

func (t *Drop) Span() SpanID { return t.SpanID }

// Call invokes a function. Dest is the block receiving the normal
// continuation, or -1 for a diverging call. Cleanup is the unwind
// block, or -1.
type Call struct {
	Func    string
	Args    []string
	DestVar string
	Dest    int
	Cleanup int
	SpanID  SpanID
}

func (t *Call) Head() string {
	call := fmt.Sprintf("%s(%s)", t.Func, strings.Join(t.Args, ", "))
	if t.DestVar != "" {
		return fmt.Sprintf("%s = %s", t.DestVar, call)
	}
	return call
}

func (t *Call) Successors() []Successor {
	var succs []Successor
	if t.Dest >= 0 {
		succs = append(succs, Successor{Target: t.Dest, Label: "return"})
	}
	if t.Cleanup >= 0 {
		succs = append(succs, Successor{Target: t.Cleanup, Label: "unwind", Unwind: true})
	}
	return succs
}

func (t *Call) Span() SpanID { return t.SpanID }

// Assert checks a boolean condition, continuing at Target when the
// condition matches Expected and unwinding into Cleanup (or diverging)
// otherwise.
type Assert struct {
	Cond     string
	Expected bool
	Msg      string
	Target   int
	Cleanup  int
	SpanID   SpanID
}

func (t *Assert) Head() string {
	if t.Expected {
		return fmt.Sprintf("assert(%s, %q)", t.Cond, t.Msg)
	}
	return fmt.Sprintf("assert(!%s, %q)", t.Cond, t.Msg)
}

func (t *Assert) Successors() []Successor {
	succs := []Successor{{Target: t.Target, Label: "success"}}
	if t.Cleanup >= 0 {
		succs = append(succs, Successor{Target: t.Cleanup, Label: "unwind", Unwind: true})
	}
	return succs
}

func (t *Assert) Span() SpanID { return t.SpanID }
