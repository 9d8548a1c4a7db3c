package web

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/errors"
	"github.com/pin1yin1/pin1yin1/parser"
)

// maxParseBody caps the size of a posted source.
const maxParseBody = 1 << 20

// ParseRequest is the body of POST /api/parse. Mode is "program" (the
// default) or "expression".
type ParseRequest struct {
	Source   string `json:"source"`
	Filename string `json:"filename"`
	Mode     string `json:"mode"`
}

// ParseResponse carries the tree dump and the canonical formatting of the
// posted source. Both are empty when the source does not parse.
type ParseResponse struct {
	Tree      string             `json:"tree"`
	Formatted string             `json:"formatted"`
	Errors    []errors.ErrorJSON `json:"errors"`
}

// handleParse handles POST requests to /api/parse. Nothing is written to
// disk; the source only lives for the duration of the request.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxParseBody)

	var request ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		var tooLarge *http.MaxBytesError
		if stdErrors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	filename := request.Filename
	if filename == "" {
		filename = "<playground>"
	}

	p := parser.New(
		parser.WithGrammar(s.Loader.Grammar),
		parser.WithMaxDepth(s.Loader.MaxDepth),
		parser.WithFilename(filename),
	)
	src := p.Source(request.Source)

	var root ast.Node
	var err error
	switch request.Mode {
	case "", "program":
		root, err = p.ParseProgram(r.Context(), src)
	case "expression":
		root, err = p.ParseExpression(r.Context(), src)
	default:
		http.Error(w, "Unknown mode "+request.Mode, http.StatusBadRequest)
		return
	}

	response := &ParseResponse{Errors: []errors.ErrorJSON{}}

	var perr *parser.ParseError
	switch {
	case stdErrors.As(err, &perr):
		response.Errors = errors.NewJSONFormatter().FormatAllToSlice([]error{err})
		writeJSONResponse(w, response)
		return
	case err != nil:
		http.Error(w, "Failed to parse source", http.StatusInternalServerError)
		return
	}

	var tree, formatted strings.Builder
	if err := s.formatter.Tree(root, &tree); err != nil {
		http.Error(w, "Failed to render tree", http.StatusInternalServerError)
		return
	}

	if prog, ok := root.(*ast.Program); ok {
		err = s.formatter.Format(r.Context(), prog, src.Runes(), &formatted)
	} else {
		err = s.formatter.FormatNode(root, &formatted)
	}
	if err != nil {
		http.Error(w, "Failed to format source", http.StatusInternalServerError)
		return
	}

	response.Tree = tree.String()
	response.Formatted = formatted.String()
	writeJSONResponse(w, response)
}
