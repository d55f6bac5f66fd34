// Package source renders the source pane of the debugger UI: the chain
// of spans leading to the current statement, each highlighted with the
// executing character range marked.
package source

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/stepsight/stepsight/pkg/mir"
)

// ResolvedSpan is a span resolved against its owning file: the file
// path, the full file text, and the span's character offsets within
// that text.
type ResolvedSpan struct {
	Path string
	Text string
	Lo   int
	Hi   int
}

// Resolver supplies span resolution for one snapshot: file text plus
// offsets, the macro-expansion backtrace relation, and display labels.
type Resolver interface {
	Resolve(id mir.SpanID) (ResolvedSpan, error)
	CallSite(id mir.SpanID) (mir.SpanID, bool)
	DisplayPath(id mir.SpanID) string
}

// PathAlias collapses a known path prefix to a short display alias,
// e.g. a system-library source root to "<std>/".
type PathAlias struct {
	Prefix string
	Alias  string
}

// toolchainSourceRe matches compiler-registered virtual source paths of
// the form /rustc/<hash>/, which are collapsed to a short alias.
var toolchainSourceRe = regexp.MustCompile(`/rustc/\w+/`)

// SnapshotResolver resolves spans against the span table and file-text
// table embedded in a snapshot.
type SnapshotResolver struct {
	snap    *mir.Snapshot
	aliases []PathAlias
}

// NewSnapshotResolver builds a resolver over the snapshot's span and
// file tables.
func NewSnapshotResolver(snap *mir.Snapshot, aliases []PathAlias) *SnapshotResolver {
	return &SnapshotResolver{snap: snap, aliases: aliases}
}

func (r *SnapshotResolver) span(id mir.SpanID) (mir.SpanInfo, error) {
	if id < 0 || int(id) >= len(r.snap.Spans) {
		return mir.SpanInfo{}, fmt.Errorf("span %d not in snapshot span table", id)
	}
	return r.snap.Spans[id], nil
}

// Resolve returns the file text and character offsets for a span.
func (r *SnapshotResolver) Resolve(id mir.SpanID) (ResolvedSpan, error) {
	span, err := r.span(id)
	if err != nil {
		return ResolvedSpan{}, err
	}
	text, ok := r.snap.Files[span.File]
	if !ok {
		return ResolvedSpan{}, fmt.Errorf("no source text for %s", span.File)
	}
	return ResolvedSpan{
		Path: span.File,
		Text: text,
		Lo:   int(span.Lo),
		Hi:   int(span.Hi),
	}, nil
}

// CallSite returns the span of the macro invocation that produced this
// span, if any.
func (r *SnapshotResolver) CallSite(id mir.SpanID) (mir.SpanID, bool) {
	span, err := r.span(id)
	if err != nil || span.CallSite < 0 {
		return mir.NoSpan, false
	}
	return span.CallSite, true
}

// DisplayPath returns the human-readable origin label for a span, with
// known system-library prefixes collapsed to their aliases.
func (r *SnapshotResolver) DisplayPath(id mir.SpanID) string {
	span, err := r.span(id)
	if err != nil {
		return fmt.Sprintf("<span %d>", id)
	}
	path := toolchainSourceRe.ReplaceAllString(span.File, "<rust>/")
	for _, a := range r.aliases {
		if strings.HasPrefix(path, a.Prefix) {
			path = a.Alias + path[len(a.Prefix):]
			break
		}
	}
	return fmt.Sprintf("%s:%d..%d", path, span.Lo, span.Hi)
}
