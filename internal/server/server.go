// Package server serves rendered execution snapshots over HTTP for a
// browser-based step-debugger front end.
package server

import (
	"fmt"
	"html"
	"net/http"
	"sync"
	"time"

	"github.com/alecthomas/chroma/v2"

	"github.com/stepsight/stepsight/internal/config"
	"github.com/stepsight/stepsight/internal/log"
	"github.com/stepsight/stepsight/pkg/graphviz"
	"github.com/stepsight/stepsight/pkg/highlight"
	"github.com/stepsight/stepsight/pkg/mir"
	"github.com/stepsight/stepsight/pkg/source"
)

// Server renders the snapshot file on every request, so a debugger
// runtime can overwrite the file between steps and a browser refresh
// shows the new state.
type Server struct {
	logger       log.Logger
	engine       graphviz.Engine
	theme        highlight.Theme
	style        *chroma.Style
	snapshotPath string
	aliases      []source.PathAlias

	// Renders are serialized: the highlight cache belongs to a single
	// rendering context and is not safe for concurrent use.
	mu    sync.Mutex
	cache *highlight.Cache
}

// New builds a server from the resolved configuration.
func New(cfg *config.Config, logger log.Logger, engine graphviz.Engine, snapshotPath string) *Server {
	theme := cfg.ResolvedTheme()
	var aliases []source.PathAlias
	for prefix, alias := range cfg.PathAliases {
		aliases = append(aliases, source.PathAlias{Prefix: prefix, Alias: alias})
	}
	return &Server{
		logger:       logger,
		engine:       engine,
		theme:        theme,
		style:        theme.Style(),
		snapshotPath: snapshotPath,
		aliases:      aliases,
		cache:        highlight.NewCache(),
	}
}

// Handler returns the HTTP routes: the composed page at /, and the
// individual panes at /graph and /source.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/graph", s.handleGraph)
	mux.HandleFunc("/source", s.handleSource)
	return mux
}

// ListenAndServe serves the UI on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving debugger UI", "addr", addr, "snapshot", s.snapshotPath)
	return http.ListenAndServe(addr, s.Handler())
}

// render produces both panes from the current snapshot file contents.
func (s *Server) render() (title, graph string, sources []source.Rendered, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := mir.LoadFile(s.snapshotPath)
	if err != nil {
		return "", "", nil, err
	}

	frame := snap.Frame()
	if frame == nil {
		return "(no frame)", "", nil, nil
	}
	title = frame.Body.Name

	start := time.Now()
	graph, err = graphviz.RenderHTML(frame, snap.BreakpointSet(), s.engine)
	if err != nil {
		return "", "", nil, err
	}
	s.logger.Debug("graph pane rendered", "took", time.Since(start))

	start = time.Now()
	resolver := source.NewSnapshotResolver(snap, s.aliases)
	sources, err = source.Render(frame, resolver, s.cache, s.style)
	if err != nil {
		return "", "", nil, err
	}
	s.logger.Debug("source pane rendered", "took", time.Since(start))

	return title, graph, sources, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	title, graph, sources, err := s.render()
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := ComposePage(title, graph, sources, s.theme)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	_, graph, _, err := s.render()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, graph)
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	_, _, sources, err := s.render()
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, entry := range sources {
		fmt.Fprintf(w, "<span style=\"color: aqua;\">%s</span><br/>%s<br/><br/>", html.EscapeString(entry.Origin), entry.HTML)
	}
}

// fail reports a render failure to the client. Renders are
// all-or-nothing: a structural failure produces a generic indicator,
// never partial output.
func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("render failed", "err", err)
	http.Error(w, fmt.Sprintf("render failed: %v", err), http.StatusInternalServerError)
}
