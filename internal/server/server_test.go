package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepsight/stepsight/internal/config"
	"github.com/stepsight/stepsight/internal/log"
	"github.com/stepsight/stepsight/pkg/highlight"
	"github.com/stepsight/stepsight/pkg/mir"
	"github.com/stepsight/stepsight/pkg/source"
)

type fakeEngine struct{}

func (fakeEngine) Render(dot string) ([]byte, error) {
	return []byte("<svg>fake layout</svg>"), nil
}

func writeSnapshot(t *testing.T, snap *mir.Snapshot) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snap.msgpack")
	require.NoError(t, snap.SaveFile(path))
	return path
}

func testSnapshot() *mir.Snapshot {
	loc := mir.Location{Block: 0, Statement: 0}
	return &mir.Snapshot{
		Body: &mir.Body{
			Name: "main",
			Span: 0,
			Blocks: []mir.BasicBlock{
				{
					Statements: []mir.Statement{{Text: "_1 = answer()", Span: 1}},
					Terminator: &mir.Return{SpanID: 0},
				},
			},
		},
		Loc: &loc,
		Spans: []mir.SpanInfo{
			{File: "main.rs", Lo: 0, Hi: 28, CallSite: mir.NoSpan},
			{File: "main.rs", Lo: 16, Hi: 24, CallSite: mir.NoSpan},
		},
		Files: map[string]string{"main.rs": "fn main() { let answer() ; }"},
	}
}

func newTestServer(t *testing.T, snapshotPath string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	logger := log.New(log.LoggerConfig{Level: log.ErrorLevel})
	return New(cfg, logger, fakeEngine{}, snapshotPath)
}

func get(t *testing.T, handler http.Handler, path string) (int, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestComposePage(t *testing.T) {
	sources := []source.Rendered{
		{Origin: "main.rs:16..24", HTML: "<span>let</span>"},
		{Origin: "<rust>/core.rs:0..4", HTML: "core"},
	}

	page, err := ComposePage("main", "<svg>graph</svg>", sources, highlight.ThemeGitHub)
	require.NoError(t, err)

	assert.Contains(t, page, "<svg>graph</svg>", "graph markup passes through unescaped")
	assert.Contains(t, page, "<span>let</span>", "highlighted source passes through unescaped")
	assert.Contains(t, page, "&lt;rust&gt;/core.rs:0..4", "origin labels are escaped")
	assert.Contains(t, page, "background-color: "+highlight.ThemeGitHub.BackgroundColor())
}

func TestServerIndex(t *testing.T) {
	s := newTestServer(t, writeSnapshot(t, testSnapshot()))

	code, body := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<svg>fake layout</svg>")
	assert.Contains(t, body, "main.rs:16..24")
	assert.Contains(t, body, "lightcoral", "current span marker is present")
}

func TestServerGraphPane(t *testing.T) {
	s := newTestServer(t, writeSnapshot(t, testSnapshot()))

	code, body := get(t, s.Handler(), "/graph")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "<svg>fake layout</svg>")
	assert.NotContains(t, body, "main.rs:16..24", "graph pane carries no source")
}

func TestServerSourcePane(t *testing.T) {
	s := newTestServer(t, writeSnapshot(t, testSnapshot()))

	code, body := get(t, s.Handler(), "/source")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "main.rs:16..24")
	assert.NotContains(t, body, "<svg>")
}

func TestServerRereadsSnapshotPerRequest(t *testing.T) {
	snap := testSnapshot()
	path := writeSnapshot(t, snap)
	s := newTestServer(t, path)

	_, body := get(t, s.Handler(), "/")
	assert.Contains(t, body, "main")

	snap.Body.Name = "renamed"
	require.NoError(t, snap.SaveFile(path))

	_, body = get(t, s.Handler(), "/")
	assert.Contains(t, body, "renamed", "a refresh picks up the rewritten file")
}

func TestServerNoFrame(t *testing.T) {
	s := newTestServer(t, writeSnapshot(t, &mir.Snapshot{}))

	code, body := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "(no frame)")
}

func TestServerMissingSnapshot(t *testing.T) {
	s := newTestServer(t, filepath.Join(t.TempDir(), "absent.msgpack"))

	code, body := get(t, s.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Contains(t, body, "render failed")
}

func TestServerUnknownPath(t *testing.T) {
	s := newTestServer(t, writeSnapshot(t, testSnapshot()))

	code, _ := get(t, s.Handler(), "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}
