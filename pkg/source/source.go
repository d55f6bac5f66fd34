package source

import (
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"

	"github.com/stepsight/stepsight/pkg/highlight"
	"github.com/stepsight/stepsight/pkg/mir"
)

// Rendered is one entry of the source pane: the origin label of a span
// in the expansion chain, and the highlighted HTML for its file with
// the span marked.
type Rendered struct {
	Origin string
	HTML   string
}

const markerStyle = "background-color: lightcoral; border-radius: 5px; padding: 1px;"

// Render produces the source pane for the current frame: one entry per
// span in the macro-expansion chain, ordered outermost first. A nil
// frame yields an empty pane. A span whose file text cannot be
// resolved degrades to a placeholder entry; contract-violating offsets
// abort the render.
func Render(frame *mir.Frame, res Resolver, cache *highlight.Cache, style *chroma.Style) ([]Rendered, error) {
	if frame == nil {
		return nil, nil
	}

	// Innermost span first: the current statement or terminator, or the
	// whole-body span while unwinding. A frame with no position at all
	// has nothing to show.
	var chain []mir.SpanID
	switch {
	case frame.Loc != nil:
		chain = append(chain, frame.Body.SpanAt(*frame.Loc))
	case frame.Unwinding:
		chain = append(chain, frame.Body.Span)
	default:
		return nil, nil
	}

	// Follow the expansion backtrace out to the original call site.
	for {
		parent, ok := res.CallSite(chain[len(chain)-1])
		if !ok {
			break
		}
		chain = append(chain, parent)
	}

	// Display order is outermost first: the macro invocation the user
	// wrote, with the implementation detail below it.
	rendered := make([]Rendered, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		id := chain[i]
		origin := res.DisplayPath(id)

		resolved, err := res.Resolve(id)
		if err != nil {
			rendered = append(rendered, Rendered{
				Origin: origin,
				HTML:   html.EscapeString(fmt.Sprintf("<%v>", err)),
			})
			continue
		}

		entry := cache.GetOrCompute(resolved.Text, highlight.SessionFor(resolved.Path))
		marked, err := MarkSpan(entry, style, resolved.Lo, resolved.Hi)
		if err != nil {
			return nil, fmt.Errorf("marking span %d: %w", id, err)
		}
		rendered = append(rendered, Rendered{Origin: origin, HTML: marked})
	}
	return rendered, nil
}

// MarkSpan renders the cached decomposition to HTML with [lo, hi)
// wrapped in the current-position marker. A zero-width span renders as
// a standalone pointer glyph at that position.
func MarkSpan(entry *highlight.Entry, style *chroma.Style, lo, hi int) (string, error) {
	if lo > hi {
		return "", fmt.Errorf("malformed span offsets: lo %d > hi %d", lo, hi)
	}
	if hi > len(entry.Text) {
		return "", fmt.Errorf("span offset %d beyond text length %d", hi, len(entry.Text))
	}

	before := renderSlice(entry, style, 0, lo)
	middle := renderSlice(entry, style, lo, hi)
	after := renderSlice(entry, style, hi, len(entry.Text))

	if lo == hi {
		if middle != "" {
			panic(fmt.Sprintf("zero-width span at %d produced non-empty markup %q", lo, middle))
		}
		return fmt.Sprintf("%s<span style='%s'>←</span>%s", before, markerStyle, after), nil
	}
	return fmt.Sprintf("%s<span style='%s'>%s</span>%s", before, markerStyle, middle, after), nil
}

// renderSlice emits HTML for the styled ranges covering [lo, hi),
// splitting ranges that straddle either boundary.
func renderSlice(entry *highlight.Entry, style *chroma.Style, lo, hi int) string {
	var sb strings.Builder
	for _, r := range entry.Ranges {
		if r.Hi <= lo {
			continue
		}
		if r.Lo >= hi {
			break
		}
		sliceLo, sliceHi := r.Lo, r.Hi
		if sliceLo < lo {
			sliceLo = lo
		}
		if sliceHi > hi {
			sliceHi = hi
		}
		if sliceLo == sliceHi {
			continue
		}
		writeStyled(&sb, style, r.Type, entry.Text[sliceLo:sliceHi])
	}
	return sb.String()
}

// writeStyled wraps escaped text in a span carrying the theme's inline
// style for the token type. Unstyled tokens are emitted bare.
func writeStyled(sb *strings.Builder, style *chroma.Style, tok chroma.TokenType, text string) {
	escaped := html.EscapeString(text)
	css := inlineCSS(style.Get(tok))
	if css == "" {
		sb.WriteString(escaped)
		return
	}
	fmt.Fprintf(sb, "<span style=\"%s\">%s</span>", css, escaped)
}

func inlineCSS(entry chroma.StyleEntry) string {
	var parts []string
	if entry.Colour.IsSet() {
		parts = append(parts, "color: "+entry.Colour.String())
	}
	if entry.Bold == chroma.Yes {
		parts = append(parts, "font-weight: bold")
	}
	if entry.Italic == chroma.Yes {
		parts = append(parts, "font-style: italic")
	}
	if entry.Underline == chroma.Yes {
		parts = append(parts, "text-decoration: underline")
	}
	return strings.Join(parts, "; ")
}
