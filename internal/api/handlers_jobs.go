package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dgallion1/yellowpad/internal/render"
	"github.com/go-chi/chi/v5"
)

type addJobRequest struct {
	Clause      string `json:"clause"`
	Instruction string `json:"instruction"`
}

func (r addJobRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Clause, validation.Required),
		validation.Field(&r.Instruction, validation.Required),
	)
}

func (s *Server) handleAddJob(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "documentID")
	if _, err := s.orchestrator.Document(docID); err != nil {
		s.writeError(w, err)
		return
	}

	var req addJobRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Clause = strings.TrimSpace(req.Clause)
	req.Instruction = strings.TrimSpace(req.Instruction)
	if err := req.Validate(); err != nil {
		jsonError(w, "Clause and instruction are required", http.StatusBadRequest)
		return
	}

	job, err := s.orchestrator.AddJob(docID, req.Clause, req.Instruction)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "job": job})
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.orchestrator.Jobs(chi.URLParam(r, "documentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobs": jobs})
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	res, err := s.orchestrator.Process(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":              res.Success,
		"results":              res.Jobs,
		"errors":               res.Errors,
		"hasProcessedDocument": res.Assembled(),
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.orchestrator.Download(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"processing": s.orchestrator.Stats()})
}
