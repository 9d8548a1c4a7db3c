package web

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/pin1yin1/pin1yin1/loader"
)

const testProgram = "shi4 sample\nzheng3 zhu3 can1 jie2 han2\n\tfan3 0 fen1\njie2\n"

func newTestServer(t *testing.T, content string) (*Server, *http.ServeMux) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "main.py1")
	assert.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	server := NewWithVersion(8080, file, "1.2.3", "abc123")
	server.Loader = loader.New(loader.WithWatchDelay(20 * time.Millisecond))
	assert.NoError(t, server.init(context.Background()))

	mux, err := server.setupRouter()
	assert.NoError(t, err)
	return server, mux
}

func postJSON(t *testing.T, mux http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(data)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAPISource(t *testing.T) {
	server, mux := newTestServer(t, testProgram)

	t.Run("WithDefaultFile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/source", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response SourceResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, server.file, response.Filepath)
		assert.Equal(t, testProgram, response.Source)
		assert.Equal(t, 0, len(response.Errors))
	})

	t.Run("ErrorsIsEmptyArray", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/source", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Contains(t, rec.Body.String(), `"errors":[]`)
	})

	t.Run("WithSiblingFile", func(t *testing.T) {
		sibling := filepath.Join(filepath.Dir(server.file), "broken.py1")
		assert.NoError(t, os.WriteFile(sibling, []byte("shi4 ok\nzheng3 f can1 jie2 han2\n\tfan3 1 jia1 fen1\njie2\n"), 0o644))

		req := httptest.NewRequest(http.MethodGet, "/api/source?filepath="+sibling, nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response SourceResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, len(response.Errors))
		assert.Equal(t, sibling, response.Errors[0].Filename)
		assert.Equal(t, 3, response.Errors[0].Line)
	})

	t.Run("FileOutsideDirectory", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "other.py1")
		assert.NoError(t, os.WriteFile(other, []byte(testProgram), 0o644))

		req := httptest.NewRequest(http.MethodGet, "/api/source?filepath="+other, nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "access denied")
	})

	t.Run("RelativeTraversal", func(t *testing.T) {
		path := filepath.Join(filepath.Dir(server.file), "..", "escape.py1")

		req := httptest.NewRequest(http.MethodGet, "/api/source?filepath="+path, nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MissingFile", func(t *testing.T) {
		path := filepath.Join(filepath.Dir(server.file), "missing.py1")

		req := httptest.NewRequest(http.MethodGet, "/api/source?filepath="+path, nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("WriteNotAllowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/source", strings.NewReader(`{"source":"shi4"}`))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

		content, err := os.ReadFile(server.file)
		assert.NoError(t, err)
		assert.Equal(t, testProgram, string(content))
	})
}

func TestAPISourceWithParseError(t *testing.T) {
	_, mux := newTestServer(t, "zheng3 f can1 jie2 han2\n\tfan3 1 jia1 fen1\njie2\n")

	req := httptest.NewRequest(http.MethodGet, "/api/source", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response SourceResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, 1, len(response.Errors))
	assert.Equal(t, 2, response.Errors[0].Line)
	assert.NotEqual(t, "", response.Errors[0].Kind)
}

func TestAPIParse(t *testing.T) {
	_, mux := newTestServer(t, testProgram)

	t.Run("Program", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: "shi4   hi  \n"})

		assert.Equal(t, http.StatusOK, rec.Code)

		var response ParseResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "shi4 hi\n", response.Formatted)
		assert.True(t, strings.HasPrefix(response.Tree, "Program 0..12\n  Comment"), response.Tree)
		assert.Equal(t, 0, len(response.Errors))
	})

	t.Run("Expression", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: "1 jia1 x", Mode: "expression"})

		assert.Equal(t, http.StatusOK, rec.Code)

		var response ParseResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "1 jia1 x", response.Formatted)
		expected := "Binary 0..8\n" +
			"  NumberLiteral 1 0..1\n" +
			"  Operator add \"jia1\" 2..6\n" +
			"  Ident \"x\" 7..8\n"
		assert.Equal(t, expected, response.Tree)
	})

	t.Run("ParseError", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{
			Source:   "zheng3 f can1 jie2 han2 fan3 fen1",
			Filename: "scratch.py1",
		})

		assert.Equal(t, http.StatusOK, rec.Code)

		var response ParseResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "", response.Tree)
		assert.Equal(t, "", response.Formatted)
		assert.Equal(t, 1, len(response.Errors))
		assert.Equal(t, "scratch.py1", response.Errors[0].Filename)
		assert.Equal(t, 1, response.Errors[0].Line)
	})

	t.Run("DefaultFilename", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: "zheng3"})

		var response ParseResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, len(response.Errors))
		assert.Equal(t, "<playground>", response.Errors[0].Filename)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: "1", Mode: "statement"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(`invalid json`))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BodyTooLarge", func(t *testing.T) {
		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: strings.Repeat("shi4 x\n", maxParseBody/4)})

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("UsesLoaderMaxDepth", func(t *testing.T) {
		server, mux := newTestServer(t, testProgram)
		server.Loader.MaxDepth = 2

		rec := postJSON(t, mux, "/api/parse", ParseRequest{Source: "fei1 fei1 fei1 x", Mode: "expression"})

		var response ParseResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 1, len(response.Errors))
		assert.Equal(t, "nesting-too-deep", response.Errors[0].Kind)
	})
}

func TestIndexPage(t *testing.T) {
	_, mux := newTestServer(t, testProgram)

	t.Run("Root", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "<title>main.py1 · pin1yin1</title>")
		assert.Contains(t, body, "1.2.3 (abc123)")
	})

	t.Run("UnknownPath", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/assets/app.js", nil)
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	line, err := r.ReadString('\n')
	assert.NoError(t, err)
	blank, err := r.ReadString('\n')
	assert.NoError(t, err)
	assert.Equal(t, "\n", blank)
	return strings.TrimSuffix(strings.TrimPrefix(line, "data: "), "\n")
}

func TestSSE(t *testing.T) {
	server, mux := newTestServer(t, testProgram)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	assert.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	r := bufio.NewReader(resp.Body)
	assert.Equal(t, "connected", readEvent(t, r))

	server.broadcast("reload")
	assert.Equal(t, "reload", readEvent(t, r))

	cancel()
	deadline := time.Now().Add(5 * time.Second)
	for clientCount(server) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("client was not unsubscribed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func clientCount(s *Server) int {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	return len(s.sseClients)
}

func TestWatcherBroadcastsReload(t *testing.T) {
	server, _ := newTestServer(t, testProgram)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := server.subscribe()
	defer server.unsubscribe(events)

	go server.runWatcher(ctx)

	// The watcher may not be registered yet, so keep writing until a
	// reload is broadcast.
	deadline := time.After(10 * time.Second)
	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case event := <-events:
			assert.Equal(t, "reload", event)
			return
		case <-ticker.C:
			assert.NoError(t, os.WriteFile(server.file, []byte(testProgram+"shi4 edited\n"), 0o644))
		case <-deadline:
			t.Fatal("no reload broadcast")
		}
	}
}

func TestStart(t *testing.T) {
	t.Run("RequiresFile", func(t *testing.T) {
		err := New(0, "").Start(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "source file is required")
	})

	t.Run("MissingFile", func(t *testing.T) {
		err := New(0, filepath.Join(t.TempDir(), "missing.py1")).Start(context.Background())
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("StopsOnCancel", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "main.py1")
		assert.NoError(t, os.WriteFile(file, []byte("zheng3 not valid"), 0o644))

		server := New(0, file)
		server.WatchEnabled = true

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- server.Start(ctx) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("Start did not return after cancellation")
		}
	})
}

func TestIsPathWithin(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"Same", "/srv/code", true},
		{"Child", "/srv/code/main.py1", true},
		{"Nested", "/srv/code/lib/util.py1", true},
		{"Parent", "/srv", false},
		{"Sibling", "/srv/other/main.py1", false},
		{"DotDotPrefixedName", "/srv/code/..hidden.py1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isPathWithin("/srv/code", tt.path))
		})
	}
}
