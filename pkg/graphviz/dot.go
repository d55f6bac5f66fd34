// Package graphviz renders the control-flow graph pane of the debugger
// UI: it emits a DOT description of a body, delegates layout to an
// engine, and overlays current-position and edge-outcome markers onto
// the rendered SVG.
package graphviz

import (
	"fmt"
	"html"
	"strings"

	"github.com/stepsight/stepsight/pkg/mir"
)

// BuildDot emits the DOT document for a body: one node per basic block
// with an HTML table label, one edge per terminator successor.
func BuildDot(body *mir.Body, bps mir.Breakpoints) string {
	var dot strings.Builder

	if body.Promoted != nil {
		fmt.Fprintf(&dot, "digraph promoted%d {\n", *body.Promoted)
	} else {
		fmt.Fprintln(&dot, "digraph Body {")
	}

	fmt.Fprintln(&dot, `    graph [fontname="monospace"];`)
	fmt.Fprintln(&dot, `    node [fontname="monospace"];`)
	fmt.Fprintln(&dot, `    edge [fontname="monospace"];`)

	for i := range body.Blocks {
		writeNode(&dot, body, bps, i)
	}
	for i := range body.Blocks {
		writeEdges(&dot, body, i)
	}

	fmt.Fprintln(&dot, "}")
	return dot.String()
}

// nodeName returns the DOT node identifier for a block, prefixed with
// the promoted sub-unit tag when the body has one.
func nodeName(promoted *int, block int) string {
	if promoted != nil {
		return fmt.Sprintf("promoted%d.%d", *promoted, block)
	}
	return fmt.Sprintf("bb%d", block)
}

// writeNode emits one DOT node with its label as a pseudo-HTML table.
func writeNode(dot *strings.Builder, body *mir.Body, bps mir.Breakpoints, block int) {
	fmt.Fprintf(dot, "    \"%s\" [shape=\"none\", label=<", nodeName(body.Promoted, block))
	writeNodeLabel(dot, body, bps, block)
	fmt.Fprintln(dot, ">];")
}

// writeNodeLabel emits the block's label table: the block name at the
// top, one row per statement in the middle (with breakpoint markers and
// hidden-statement placeholders), and the terminator head at the
// bottom. Successors are not listed in text since they become edges.
func writeNodeLabel(dot *strings.Builder, body *mir.Body, bps mir.Breakpoints, block int) {
	data := &body.Blocks[block]

	dot.WriteString(`<table border="0" cellborder="1" cellspacing="0">`)

	fmt.Fprintf(dot, `<tr><td bgcolor="gray" align="center">%s</td></tr>`, nodeName(body.Promoted, block))

	if len(data.Statements) > 0 {
		dot.WriteString(`<tr><td align="left" balign="left">`)
		for i, stmt := range data.Statements {
			if bps.Exists(mir.Location{Block: block, Statement: i}) {
				dot.WriteString("+ ")
			} else {
				dot.WriteString("&nbsp; ")
			}
			if stmt.Hidden {
				dot.WriteString("&lt;+&gt;<br/>")
			} else {
				dot.WriteString(html.EscapeString(stmt.Text))
				dot.WriteString("<br/>")
			}
		}
		dot.WriteString("</td></tr>")
	}

	fmt.Fprintf(dot, `<tr><td align="left">%s</td></tr>`, html.EscapeString(data.Terminator.Head()))

	dot.WriteString("</table>\n")
}

// writeEdges emits one labeled DOT edge per terminator successor.
func writeEdges(dot *strings.Builder, body *mir.Body, block int) {
	for _, succ := range body.Blocks[block].Terminator.Successors() {
		fmt.Fprintf(dot, "    %s -> %s [label=\"%s\"];\n",
			nodeName(body.Promoted, block),
			nodeName(body.Promoted, succ.Target),
			escapeDot(succ.Label))
	}
}

func escapeDot(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
