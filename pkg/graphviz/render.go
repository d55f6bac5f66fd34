package graphviz

import (
	"fmt"
	"strings"

	"github.com/stepsight/stepsight/pkg/mir"
)

// Row arithmetic for the current-position overlay. The rendered SVG of
// a node label has a fixed number of text rows before the first
// statement row (graph furniture plus the block header); the terminator
// row sits one further down when statements are present. These offsets
// encode the fixed table layout emitted by writeNodeLabel and must stay
// in sync with it.
const (
	statementRowBase  = 6
	terminatorRowBase = statementRowBase + 1
)

// currentRow returns the SVG text row index of the program point within
// its node. An out-of-range statement index is a caller contract
// violation.
func currentRow(blk *mir.BasicBlock, stmtIdx int) int {
	n := len(blk.Statements)
	if stmtIdx == n {
		if n == 0 {
			return statementRowBase
		}
		return n + terminatorRowBase
	}
	if stmtIdx > n {
		panic(fmt.Sprintf("statement index %d out of range for block with %d statements", stmtIdx, n))
	}
	return stmtIdx + statementRowBase
}

// edgeColors maps each edge leaving the current block to its outcome
// color: green for the normal path, red for the unwind path. If the
// same (source, target) pair ever carried both roles, the JS object
// literal below would make the assignment last-write-wins; terminators
// define at most one edge per target, so it cannot occur.
func edgeColors(body *mir.Body, loc mir.Location) []string {
	blk := &body.Blocks[loc.Block]
	var entries []string
	for _, succ := range blk.Terminator.Successors() {
		color := "green"
		if succ.Unwind {
			color = "red"
		}
		entries = append(entries, fmt.Sprintf("'%s->%s':'%s'",
			nodeName(body.Promoted, loc.Block),
			nodeName(body.Promoted, succ.Target),
			color))
	}
	return entries
}

// RenderHTML produces the graph pane: the laid-out SVG followed by a
// style/script overlay that marks the current statement row and colors
// the edges leaving the current block. An unwinding frame renders the
// SVG with a plain unwinding indicator and no overlay; a frame with no
// position at all renders the plain SVG.
func RenderHTML(frame *mir.Frame, bps mir.Breakpoints, engine Engine) (string, error) {
	svg, err := engine.Render(BuildDot(frame.Body, bps))
	if err != nil {
		return "", fmt.Errorf("rendering control-flow graph: %w", err)
	}

	var out strings.Builder
	out.Write(svg)

	if frame.Loc == nil {
		if frame.Unwinding {
			out.WriteString("<div style='color: red;'>Unwinding</div>")
		}
		return out.String(), nil
	}
	loc := *frame.Loc

	// Graphviz numbers node elements in emission order, starting at 1.
	node := loc.Block + 1
	row := currentRow(&frame.Body.Blocks[loc.Block], loc.Statement)
	colors := strings.Join(edgeColors(frame.Body, loc), ",")

	fmt.Fprintf(&out, `<style>
        #node%d > text:nth-child(%d) {
            fill: red;
        }
        .edge-green > path, .edge-green > polygon, .edge-green > text {
            fill: green;
            stroke: green;
        }
        .edge-red > path, .edge-red > polygon, .edge-red > text {
            fill: red;
            stroke: red;
        }
        .edge > path {
            fill: none;
        }
        </style>
        <script>
        let edge_colors = {%s};
        for(let el of document.querySelectorAll("#mir > svg #graph0 .edge")) {
            let title = el.querySelector("title").textContent;
            if(title in edge_colors) {
                el.classList.add("edge-" + edge_colors[title]);
            }
        }
        </script>`, node, row, colors)

	return out.String(), nil
}
