package graphviz

import (
	"bytes"
	"fmt"
	"os/exec"

	gographviz "github.com/goccy/go-graphviz"
)

// Engine lays out a DOT document into rendered SVG markup. Layout is
// the only externally-visible latency in a render; a failure here fails
// the whole render with no retry.
type Engine interface {
	Render(dot string) ([]byte, error)
}

// BuiltinEngine lays out graphs in-process through go-graphviz.
type BuiltinEngine struct{}

// Render parses and lays out the DOT document, returning SVG bytes.
func (BuiltinEngine) Render(dot string) ([]byte, error) {
	graph, err := gographviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parsing graph description: %w", err)
	}
	g := gographviz.New()
	defer g.Close()
	defer graph.Close()

	var buf bytes.Buffer
	if err := g.Render(graph, gographviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("laying out graph: %w", err)
	}
	return buf.Bytes(), nil
}

// ExecEngine shells out to a native dot binary. Useful when the system
// graphviz produces better layouts than the in-process engine.
type ExecEngine struct {
	// Path to the dot binary; plain "dot" resolves via PATH.
	Path string
}

// Render feeds the DOT document to `dot -Tsvg` and returns its output.
func (e ExecEngine) Render(dot string) ([]byte, error) {
	path := e.Path
	if path == "" {
		path = "dot"
	}
	cmd := exec.Command(path, "-Tsvg")
	cmd.Stdin = bytes.NewBufferString(dot)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running %s: %w (%s)", path, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out.Bytes(), nil
}
