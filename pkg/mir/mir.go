// Package mir defines the execution-snapshot data model rendered by the
// debugger UI: bodies of basic blocks, terminators with their successor
// edges, program locations, breakpoints, and source spans.
package mir

import "fmt"

// SpanID indexes into a snapshot's span table. NoSpan means the element
// has no recorded source span.
type SpanID int32

// NoSpan marks the absence of a source span.
const NoSpan SpanID = -1

// SpanInfo describes a half-open byte range [Lo, Hi) within a named
// source file. CallSite links to the span of the macro invocation that
// produced this span, forming the expansion backtrace chain.
type SpanInfo struct {
	File     string `msgpack:"file"`
	Lo       uint32 `msgpack:"lo"`
	Hi       uint32 `msgpack:"hi"`
	CallSite SpanID `msgpack:"call_site"`
}

// Statement is one non-terminating instruction within a basic block.
// Hidden statements are bookkeeping noise (storage markers and the
// like) that the graph pane collapses to a placeholder glyph.
type Statement struct {
	Text   string `msgpack:"text"`
	Hidden bool   `msgpack:"hidden"`
	Span   SpanID `msgpack:"span"`
}

// BasicBlock is an ordered run of statements ended by exactly one
// terminator. Blocks are identified by their index in the owning Body.
type BasicBlock struct {
	Statements []Statement
	Terminator Terminator
}

// Body is one control-flow unit: a function, or a promoted sub-unit
// when Promoted is non-nil. Bodies are read-only for the duration of a
// render.
type Body struct {
	Name     string
	Promoted *int
	Blocks   []BasicBlock
	Span     SpanID
}

// Location identifies a program point as (block index, statement
// index). A statement index equal to the block's statement count
// denotes "at the terminator".
type Location struct {
	Block     int `msgpack:"block"`
	Statement int `msgpack:"statement"`
}

func (l Location) String() string {
	return fmt.Sprintf("bb%d[%d]", l.Block, l.Statement)
}

// Frame is the current execution position within one body. Loc is nil
// when there is no concrete program point: either the frame is
// unwinding (Unwinding set), or execution has not reached this frame
// yet.
type Frame struct {
	Body      *Body
	Loc       *Location
	Unwinding bool
}

// Breakpoints answers whether an exact program point is currently
// marked. The set is owned by the debugger session and read-only here.
type Breakpoints interface {
	Exists(loc Location) bool
}

// BreakpointSet is the plain map-backed Breakpoints implementation.
type BreakpointSet map[Location]struct{}

// NewBreakpointSet builds a set from a list of locations.
func NewBreakpointSet(locs []Location) BreakpointSet {
	s := make(BreakpointSet, len(locs))
	for _, loc := range locs {
		s[loc] = struct{}{}
	}
	return s
}

// Exists reports whether the exact location is marked.
func (s BreakpointSet) Exists(loc Location) bool {
	_, ok := s[loc]
	return ok
}

// NoBreakpoints is an empty breakpoint set.
var NoBreakpoints = BreakpointSet{}

// SpanAt resolves the span of the program point loc within the body:
// the statement's span, or the terminator's span when loc is at the
// terminator.
func (b *Body) SpanAt(loc Location) SpanID {
	blk := &b.Blocks[loc.Block]
	if loc.Statement == len(blk.Statements) {
		return blk.Terminator.Span()
	}
	return blk.Statements[loc.Statement].Span
}
