package web

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pin1yin1/pin1yin1/errors"
	"github.com/pin1yin1/pin1yin1/parser"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type SourceResponse struct {
	Filepath string             `json:"filepath"`
	Source   string             `json:"source"`
	Errors   []errors.ErrorJSON `json:"errors"`
}

// resolveFilepath extracts the filepath from the request query parameters.
// If no filepath is provided, returns the served file.
// The returned path is always absolute and validated for security.
func (s *Server) resolveFilepath(r *http.Request) (string, error) {
	path := r.URL.Query().Get("filepath")
	if path == "" {
		return s.file, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid filepath: %w", err)
	}

	if err := s.validateFilepath(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}

// isPathWithin checks if the resolved path is within the allowed directory.
// Both paths must already be resolved to their canonical form (via filepath.EvalSymlinks).
func isPathWithin(allowedDir, resolvedPath string) bool {
	rel, err := filepath.Rel(allowedDir, resolvedPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// validateFilepath ensures the path is within the directory tree of the
// served file, after resolving symlinks on both sides.
func (s *Server) validateFilepath(path string) error {
	absAllowedDir, err := filepath.EvalSymlinks(filepath.Dir(s.file))
	if err != nil {
		return fmt.Errorf("invalid allowed directory: %w", err)
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolvedParent, err := filepath.EvalSymlinks(filepath.Dir(path))
		if err != nil {
			return fmt.Errorf("access denied: invalid path")
		}
		resolvedPath = filepath.Join(resolvedParent, filepath.Base(path))
	}

	if !isPathWithin(absAllowedDir, resolvedPath) {
		return fmt.Errorf("access denied: filepath outside allowed directory")
	}

	return nil
}

// handleGetSource handles GET requests to /api/source.
// Returns the file content and its parse errors as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	filename, err := s.resolveFilepath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	response := &SourceResponse{
		Filepath: filename,
		Source:   string(content),
		Errors:   []errors.ErrorJSON{},
	}

	_, err = s.Loader.LoadBytes(r.Context(), filename, content)
	var perr *parser.ParseError
	switch {
	case stdErrors.As(err, &perr):
		response.Errors = errors.NewJSONFormatter().FormatAllToSlice([]error{err})
	case err != nil:
		http.Error(w, "Failed to parse file", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, response)
}
