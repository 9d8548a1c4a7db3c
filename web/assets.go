package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"path/filepath"
)

//go:embed static/index.html
var static embed.FS

type indexData struct {
	Filename  string
	Version   string
	CommitSHA string
}

// mountAssets serves the playground page at the root. The page is rendered
// once; it only embeds values fixed for the life of the server.
func (s *Server) mountAssets(mux *http.ServeMux) error {
	tmpl, err := template.ParseFS(static, "static/index.html")
	if err != nil {
		return err
	}

	version := s.Version
	if version == "" {
		version = "dev"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, indexData{
		Filename:  filepath.Base(s.file),
		Version:   version,
		CommitSHA: s.CommitSHA,
	}); err != nil {
		return err
	}
	page := buf.Bytes()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	return nil
}
