package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/yellowpad/internal/document"
	"github.com/dgallion1/yellowpad/internal/parser"
	"github.com/dgallion1/yellowpad/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// documentView is the client-facing part of a parsed document.
type documentView struct {
	Filename      string             `json:"filename"`
	Sections      []document.Section `json:"sections"`
	TotalSections int                `json:"totalSections"`
	DocumentType  string             `json:"documentType"`
	Style         document.Style     `json:"style"`
}

func viewOf(doc document.Document) documentView {
	return documentView{
		Filename:      doc.Filename,
		Sections:      doc.Sections,
		TotalSections: doc.TotalSections,
		DocumentType:  doc.DocumentType,
		Style:         doc.Style,
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("document")
	if err != nil {
		jsonError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	id, doc, err := s.orchestrator.Upload(r.Context(), filename, data)
	if err != nil {
		s.log.Error("upload failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"documentId": id,
		"document":   viewOf(doc),
	})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.orchestrator.Document(chi.URLParam(r, "documentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"document": viewOf(doc),
	})
}

// writeError maps pipeline errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrDocumentNotFound):
		jsonError(w, "Document not found", http.StatusNotFound)
	case errors.Is(err, pipeline.ErrNoJobs),
		errors.Is(err, pipeline.ErrNotAssembled),
		errors.Is(err, pipeline.ErrTooManyJobs):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		s.log.Error("request failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}
