package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/binkeeper/binkeeper/internal/core"
)

// handleImport accepts a multipart spreadsheet upload and runs it through the
// import pipeline. Partial failures still return 200 with per-row details.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds the %d byte upload limit", maxSize))
			return
		}
		writeError(w, http.StatusBadRequest, "expected a multipart form upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing form file field \"file\"")
		return
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading upload: "+err.Error())
		return
	}

	outcome, err := s.service.Import(r.Context(), header.Filename, buf)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

// handleExport streams the inventory as a CSV or JSON attachment. Query
// parameters: format (csv|json, default csv), bin, category.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := s.service.Export(r.Context(), core.ExportRequest{
		Format:   q.Get("format"),
		Bin:      q.Get("bin"),
		Category: q.Get("category"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Data)
}
