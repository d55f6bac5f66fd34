package mir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	loc := Location{Block: 0, Statement: 1}
	return &Snapshot{
		Body: &Body{
			Name: "main",
			Span: 0,
			Blocks: []BasicBlock{
				{
					Statements: []Statement{
						{Text: "_1 = const 0", Span: 1},
						{Text: "StorageLive(_2)", Hidden: true, Span: 2},
					},
					Terminator: &SwitchInt{Discr: "_1", Values: []string{"0"}, Targets: []int{1, 2}, SpanID: 2},
				},
				{Terminator: &Call{Func: "foo", DestVar: "_2", Dest: 2, Cleanup: -1, SpanID: 1}},
				{Terminator: &Return{SpanID: 0}},
			},
		},
		Loc:         &loc,
		Breakpoints: []Location{{Block: 1, Statement: 0}},
		Spans: []SpanInfo{
			{File: "main.go", Lo: 0, Hi: 40, CallSite: NoSpan},
			{File: "main.go", Lo: 13, Hi: 20, CallSite: NoSpan},
			{File: "main.go", Lo: 25, Hi: 31, CallSite: 1},
		},
		Files: map[string]string{"main.go": "package main\n\nfunc main() {\n\tfoo(1)\n}\n"},
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	snap := testSnapshot()

	var buf bytes.Buffer
	require.NoError(t, snap.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)

	assert.Equal(t, snap.Body.Name, loaded.Body.Name)
	assert.Equal(t, snap.Loc, loaded.Loc)
	assert.Equal(t, snap.Breakpoints, loaded.Breakpoints)
	assert.Equal(t, snap.Spans, loaded.Spans)
	assert.Equal(t, snap.Files, loaded.Files)

	require.Len(t, loaded.Body.Blocks, 3)
	sw, ok := loaded.Body.Blocks[0].Terminator.(*SwitchInt)
	require.True(t, ok, "terminator variant survives the roundtrip")
	assert.Equal(t, []int{1, 2}, sw.Targets)
	assert.Equal(t, snap.Body.Blocks[0].Statements, loaded.Body.Blocks[0].Statements)

	call, ok := loaded.Body.Blocks[1].Terminator.(*Call)
	require.True(t, ok)
	assert.Equal(t, -1, call.Cleanup)
}

func TestSnapshotFrame(t *testing.T) {
	snap := testSnapshot()
	frame := snap.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, snap.Loc, frame.Loc)

	empty := &Snapshot{}
	assert.Nil(t, empty.Frame(), "no body means no frame")

	unwinding := testSnapshot()
	unwinding.Loc = nil
	unwinding.Unwinding = true
	frame = unwinding.Frame()
	require.NotNil(t, frame)
	assert.Nil(t, frame.Loc)
	assert.True(t, frame.Unwinding)
}

func TestSnapshotBreakpointSet(t *testing.T) {
	snap := testSnapshot()
	set := snap.BreakpointSet()
	assert.True(t, set.Exists(Location{Block: 1, Statement: 0}))
	assert.False(t, set.Exists(Location{Block: 0, Statement: 0}))
}
