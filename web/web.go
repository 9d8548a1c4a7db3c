// Package web provides an HTTP server for the Pin1Yin1 playground.
//
// The server exposes a small read-only API: the text of the watched file with
// its diagnostics, a parse endpoint that returns the syntax tree and the
// formatted program for any posted source, and a Server-Sent Events stream
// that announces file changes. It also serves the playground page itself.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
// File access is restricted to the directory of the served file.
package web

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/pin1yin1/pin1yin1/formatter"
	"github.com/pin1yin1/pin1yin1/loader"
	"github.com/pin1yin1/pin1yin1/parser"
	"github.com/pin1yin1/pin1yin1/telemetry"
)

// shutdownTimeout bounds how long Start waits for open requests once its
// context is cancelled. SSE streams end with the context, so this is short.
const shutdownTimeout = 5 * time.Second

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	// Loader parses the served file and posted sources. Its grammar and
	// nesting ceiling apply to both.
	Loader *loader.Loader

	formatter *formatter.Formatter

	// file is the absolute path of the served file, set by Start.
	file string

	// inputFile is the file path passed to New(), used only for initial loading.
	inputFile string

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

func New(port int, file string) *Server {
	return NewWithVersion(port, file, "", "")
}

func NewWithVersion(port int, file, version, commitSHA string) *Server {
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		Version:    version,
		CommitSHA:  commitSHA,
		Loader:     loader.New(),
		inputFile:  file,
		sseClients: make(map[chan string]struct{}),
	}
}

// Start loads the file, optionally watches it and serves until ctx is
// cancelled. A file that does not parse is served with its diagnostics; only
// a file that cannot be read stops the server from starting.
func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.inputFile == "" {
		timer.End()
		return fmt.Errorf("source file is required")
	}

	if err := s.init(telemetry.WithRootTimer(ctx, timer)); err != nil {
		timer.End()
		return err
	}

	if s.WatchEnabled {
		go s.runWatcher(ctx)
	}

	setupTimer := timer.Child("web.setup_router")
	mux, err := s.setupRouter()
	setupTimer.End()
	timer.End()

	if err != nil {
		return fmt.Errorf("failed to setup router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// init resolves the served file and parses it once so that a missing file is
// reported before the server starts listening.
func (s *Server) init(ctx context.Context) error {
	if s.Loader == nil {
		s.Loader = loader.New()
	}
	s.formatter = formatter.New(formatter.WithGrammar(s.Loader.Grammar))

	abs, err := filepath.Abs(s.inputFile)
	if err != nil {
		return fmt.Errorf("invalid source file: %w", err)
	}
	s.file = abs

	_, err = s.Loader.Load(ctx, s.file)
	var perr *parser.ParseError
	if stdErrors.As(err, &perr) {
		log.Printf("%s does not parse: %v", s.file, err)
		return nil
	}
	return err
}

func (s *Server) setupRouter() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/source", s.handleGetSource)
	mux.HandleFunc("POST /api/parse", s.handleParse)
	mux.HandleFunc("GET /api/events", s.handleSSE)

	if err := s.mountAssets(mux); err != nil {
		return nil, err
	}

	return mux, nil
}

// runWatcher broadcasts a reload event each time the served file changes.
// Clients fetch /api/source again, which reparses the file.
func (s *Server) runWatcher(ctx context.Context) {
	err := s.Loader.Watch(ctx, []string{s.file}, func(changed []string) {
		for _, name := range changed {
			if _, err := s.Loader.Load(ctx, name); err != nil {
				log.Printf("Reloaded %s with errors: %v", name, err)
			}
		}
		s.broadcast("reload")
	})
	if err != nil {
		log.Printf("File watcher stopped: %v", err)
	}
}

// handleSSE handles Server-Sent Events connections for real-time updates.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := s.subscribe()
	defer s.unsubscribe(clientChan)

	_, _ = fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-clientChan:
			_, _ = fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func (s *Server) subscribe() chan string {
	clientChan := make(chan string, 10)

	s.sseMu.Lock()
	s.sseClients[clientChan] = struct{}{}
	s.sseMu.Unlock()

	return clientChan
}

func (s *Server) unsubscribe(clientChan chan string) {
	s.sseMu.Lock()
	delete(s.sseClients, clientChan)
	s.sseMu.Unlock()
}

// broadcast sends an event to all connected SSE clients.
func (s *Server) broadcast(event string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()

	for clientChan := range s.sseClients {
		select {
		case clientChan <- event:
		default:
			// Client buffer full, skip
		}
	}
}
