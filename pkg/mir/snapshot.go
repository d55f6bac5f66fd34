package mir

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is one serialized execution state, dumped by a debugger
// runtime between steps and rendered by this tool. A nil Body means the
// program has no current frame (not started or already finished); a
// nil Loc with Unwinding set means the frame has no concrete program
// point because it is mid-unwind.
type Snapshot struct {
	Body        *Body
	Loc         *Location
	Unwinding   bool
	Breakpoints []Location
	Spans       []SpanInfo
	Files       map[string]string
}

// Frame returns the current frame view of the snapshot, or nil when no
// frame exists.
func (s *Snapshot) Frame() *Frame {
	if s.Body == nil {
		return nil
	}
	return &Frame{Body: s.Body, Loc: s.Loc, Unwinding: s.Unwinding}
}

// BreakpointSet returns the snapshot's breakpoints as a membership set.
func (s *Snapshot) BreakpointSet() BreakpointSet {
	return NewBreakpointSet(s.Breakpoints)
}

// Terminator kind tags used on the wire.
const (
	wireGoto        = "goto"
	wireSwitchInt   = "switch_int"
	wireReturn      = "return"
	wireUnreachable = "unreachable"
	wireResume      = "resume"
	wireDrop        = "drop"
	wireCall        = "call"
	wireAssert      = "assert"
)

// terminatorWire flattens every terminator variant into one taggable
// struct for serialization. Unused fields stay at their zero values.
type terminatorWire struct {
	Kind     string   `msgpack:"kind"`
	Place    string   `msgpack:"place,omitempty"`
	Discr    string   `msgpack:"discr,omitempty"`
	Values   []string `msgpack:"values,omitempty"`
	Targets  []int    `msgpack:"targets,omitempty"`
	Target   int      `msgpack:"target"`
	Unwind   int      `msgpack:"unwind"`
	Func     string   `msgpack:"func,omitempty"`
	Args     []string `msgpack:"args,omitempty"`
	DestVar  string   `msgpack:"dest_var,omitempty"`
	Cond     string   `msgpack:"cond,omitempty"`
	Expected bool     `msgpack:"expected,omitempty"`
	Msg      string   `msgpack:"msg,omitempty"`
	Span     SpanID   `msgpack:"span"`
}

type blockWire struct {
	Statements []Statement    `msgpack:"statements"`
	Terminator terminatorWire `msgpack:"terminator"`
}

type bodyWire struct {
	Name     string      `msgpack:"name"`
	Promoted *int        `msgpack:"promoted,omitempty"`
	Blocks   []blockWire `msgpack:"blocks"`
	Span     SpanID      `msgpack:"span"`
}

type snapshotWire struct {
	Body        *bodyWire         `msgpack:"body,omitempty"`
	Loc         *Location         `msgpack:"loc,omitempty"`
	Unwinding   bool              `msgpack:"unwinding,omitempty"`
	Breakpoints []Location        `msgpack:"breakpoints,omitempty"`
	Spans       []SpanInfo        `msgpack:"spans,omitempty"`
	Files       map[string]string `msgpack:"files,omitempty"`
}

func encodeTerminator(t Terminator) (terminatorWire, error) {
	switch t := t.(type) {
	case *Goto:
		return terminatorWire{Kind: wireGoto, Target: t.Target, Unwind: -1, Span: t.SpanID}, nil
	case *SwitchInt:
		return terminatorWire{Kind: wireSwitchInt, Discr: t.Discr, Values: t.Values, Targets: t.Targets, Unwind: -1, Span: t.SpanID}, nil
	case *Return:
		return terminatorWire{Kind: wireReturn, Unwind: -1, Span: t.SpanID}, nil
	case *Unreachable:
		return terminatorWire{Kind: wireUnreachable, Unwind: -1, Span: t.SpanID}, nil
	case *Resume:
		return terminatorWire{Kind: wireResume, Unwind: -1, Span: t.SpanID}, nil
	case *Drop:
		return terminatorWire{Kind: wireDrop, Place: t.Place, Target: t.Target, Unwind: t.Unwind, Span: t.SpanID}, nil
	case *Call:
		return terminatorWire{Kind: wireCall, Func: t.Func, Args: t.Args, DestVar: t.DestVar, Target: t.Dest, Unwind: t.Cleanup, Span: t.SpanID}, nil
	case *Assert:
		return terminatorWire{Kind: wireAssert, Cond: t.Cond, Expected: t.Expected, Msg: t.Msg, Target: t.Target, Unwind: t.Cleanup, Span: t.SpanID}, nil
	default:
		return terminatorWire{}, fmt.Errorf("unknown terminator type %T", t)
	}
}

func decodeTerminator(w terminatorWire) (Terminator, error) {
	switch w.Kind {
	case wireGoto:
		return &Goto{Target: w.Target, SpanID: w.Span}, nil
	case wireSwitchInt:
		return &SwitchInt{Discr: w.Discr, Values: w.Values, Targets: w.Targets, SpanID: w.Span}, nil
	case wireReturn:
		return &Return{SpanID: w.Span}, nil
	case wireUnreachable:
		return &Unreachable{SpanID: w.Span}, nil
	case wireResume:
		return &Resume{SpanID: w.Span}, nil
	case wireDrop:
		return &Drop{Place: w.Place, Target: w.Target, Unwind: w.Unwind, SpanID: w.Span}, nil
	case wireCall:
		return &Call{Func: w.Func, Args: w.Args, DestVar: w.DestVar, Dest: w.Target, Cleanup: w.Unwind, SpanID: w.Span}, nil
	case wireAssert:
		return &Assert{Cond: w.Cond, Expected: w.Expected, Msg: w.Msg, Target: w.Target, Cleanup: w.Unwind, SpanID: w.Span}, nil
	default:
		return nil, fmt.Errorf("unknown terminator kind %q", w.Kind)
	}
}

func encodeBody(b *Body) (*bodyWire, error) {
	if b == nil {
		return nil, nil
	}
	w := &bodyWire{Name: b.Name, Promoted: b.Promoted, Span: b.Span}
	w.Blocks = make([]blockWire, len(b.Blocks))
	for i := range b.Blocks {
		tw, err := encodeTerminator(b.Blocks[i].Terminator)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		w.Blocks[i] = blockWire{Statements: b.Blocks[i].Statements, Terminator: tw}
	}
	return w, nil
}

func decodeBody(w *bodyWire) (*Body, error) {
	if w == nil {
		return nil, nil
	}
	b := &Body{Name: w.Name, Promoted: w.Promoted, Span: w.Span}
	b.Blocks = make([]BasicBlock, len(w.Blocks))
	for i := range w.Blocks {
		term, err := decodeTerminator(w.Blocks[i].Terminator)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		b.Blocks[i] = BasicBlock{Statements: w.Blocks[i].Statements, Terminator: term}
	}
	return b, nil
}

// Save writes the snapshot to w in msgpack format.
func (s *Snapshot) Save(w io.Writer) error {
	body, err := encodeBody(s.Body)
	if err != nil {
		return fmt.Errorf("encoding body: %w", err)
	}
	data := snapshotWire{
		Body:        body,
		Loc:         s.Loc,
		Unwinding:   s.Unwinding,
		Breakpoints: s.Breakpoints,
		Spans:       s.Spans,
		Files:       s.Files,
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(data)
}

// Load reads a msgpack-encoded snapshot from r.
func Load(r io.Reader) (*Snapshot, error) {
	var data snapshotWire
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	body, err := decodeBody(data.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}
	return &Snapshot{
		Body:        body,
		Loc:         data.Loc,
		Unwinding:   data.Unwinding,
		Breakpoints: data.Breakpoints,
		Spans:       data.Spans,
		Files:       data.Files,
	}, nil
}

// LoadFile reads a snapshot from the file at path.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// SaveFile writes the snapshot to the file at path.
func (s *Snapshot) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	defer f.Close()
	return s.Save(f)
}
