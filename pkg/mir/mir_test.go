package mir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGotoSuccessors(t *testing.T) {
	term := &Goto{Target: 3}

	succs := term.Successors()
	require.Len(t, succs, 1)
	assert.Equal(t, 3, succs[0].Target)
	assert.False(t, succs[0].Unwind)
	assert.Equal(t, "goto", term.Head())
}

func TestSwitchIntSuccessors(t *testing.T) {
	term := &SwitchInt{
		Discr:   "_1",
		Values:  []string{"0", "1"},
		Targets: []int{2, 3, 4},
	}

	succs := term.Successors()
	require.Len(t, succs, 3)
	assert.Equal(t, "0", succs[0].Label)
	assert.Equal(t, "1", succs[1].Label)
	assert.Equal(t, "otherwise", succs[2].Label)
	for _, s := range succs {
		assert.False(t, s.Unwind, "switch successors are all normal")
	}
	assert.Equal(t, "switchInt(_1)", term.Head())
}

func TestDropSuccessors(t *testing.T) {
	term := &Drop{Place: "_2", Target: 1, Unwind: 5}

	succs := term.Successors()
	require.Len(t, succs, 2)
	assert.Equal(t, Successor{Target: 1, Label: "return"}, succs[0])
	assert.Equal(t, Successor{Target: 5, Label: "unwind", Unwind: true}, succs[1])

	noUnwind := &Drop{Place: "_2", Target: 1, Unwind: -1}
	assert.Len(t, noUnwind.Successors(), 1)
}

func TestCallSuccessors(t *testing.T) {
	term := &Call{Func: "foo", Args: []string{"_1"}, DestVar: "_0", Dest: 2, Cleanup: 3}

	succs := term.Successors()
	require.Len(t, succs, 2)
	assert.Equal(t, Successor{Target: 2, Label: "return"}, succs[0])
	assert.Equal(t, Successor{Target: 3, Label: "unwind", Unwind: true}, succs[1])
	assert.Equal(t, "_0 = foo(_1)", term.Head())

	diverging := &Call{Func: "panic", Dest: -1, Cleanup: 3}
	succs = diverging.Successors()
	require.Len(t, succs, 1)
	assert.True(t, succs[0].Unwind)
	assert.Equal(t, "panic()", diverging.Head())
}

func TestLeafTerminators(t *testing.T) {
	assert.Empty(t, (&Return{}).Successors())
	assert.Empty(t, (&Unreachable{}).Successors())
	assert.Empty(t, (&Resume{}).Successors())
}

func TestBreakpointSet(t *testing.T) {
	set := NewBreakpointSet([]Location{{Block: 0, Statement: 1}, {Block: 2, Statement: 0}})

	assert.True(t, set.Exists(Location{Block: 0, Statement: 1}))
	assert.False(t, set.Exists(Location{Block: 0, Statement: 0}))
	assert.False(t, NoBreakpoints.Exists(Location{Block: 0, Statement: 1}))
}

func TestBodySpanAt(t *testing.T) {
	body := &Body{
		Blocks: []BasicBlock{
			{
				Statements: []Statement{{Text: "_1 = 0", Span: 7}},
				Terminator: &Return{SpanID: 9},
			},
		},
	}

	assert.Equal(t, SpanID(7), body.SpanAt(Location{Block: 0, Statement: 0}))
	assert.Equal(t, SpanID(9), body.SpanAt(Location{Block: 0, Statement: 1}), "statement index == length selects the terminator")
}
