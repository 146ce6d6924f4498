package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/csvingest/internal/core"
)

// multipartOverhead is the body allowance on top of the file size for
// boundaries and the other form fields.
const multipartOverhead = 64 << 10

// DatasetResponse describes a dataset and its row rules to clients.
type DatasetResponse struct {
	Key             string         `json:"key"`
	Label           string         `json:"label"`
	Description     string         `json:"description,omitempty"`
	RequiredColumns []string       `json:"requiredColumns"`
	Rules           []RuleResponse `json:"rules"`
}

// RuleResponse is one field rule.
type RuleResponse struct {
	Field      string `json:"field"`
	Kind       string `json:"kind"`
	Constraint string `json:"constraint,omitempty"`
	Message    string `json:"message"`
}

func toDatasetResponse(ds core.Dataset) DatasetResponse {
	rules := make([]RuleResponse, len(ds.Rules))
	for i, r := range ds.Rules {
		rules[i] = RuleResponse{
			Field:      r.Field,
			Kind:       r.Kind.String(),
			Constraint: r.Tag,
			Message:    r.Message,
		}
	}
	return DatasetResponse{
		Key:             ds.Key,
		Label:           ds.Label,
		Description:     ds.Description,
		RequiredColumns: ds.RequiredColumns,
		Rules:           rules,
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListDatasets returns every registered dataset.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets := s.service.ListDatasets()
	out := make([]DatasetResponse, len(datasets))
	for i, ds := range datasets {
		out[i] = toDatasetResponse(ds)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleDownloadTemplate returns a CSV file holding only the dataset's header row.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	ds, err := core.Lookup(chi.URLParam(r, "dataset"))
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_template.csv"`, ds.Key))

	csvWriter := csv.NewWriter(w)
	csvWriter.Write(ds.RequiredColumns)
	csvWriter.Flush()
}

// handleIngest reads the multipart "file" field and returns the IngestResult.
// Invalid files still get 200: the body carries the feedback.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "dataset")
	if _, err := core.Lookup(key); err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	maxSize := s.cfg.Ingest.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			respondError(w, r, err, http.StatusRequestEntityTooLarge)
			return
		}
		respondError(w, r, fmt.Errorf("parse form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, fmt.Errorf("%w: %v", core.ErrNoFile, err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	f := core.NamedReader{Reader: file, FileName: header.Filename}
	result, err := s.service.Ingest(r.Context(), key, f, r.FormValue("encoding"))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleIngestStatus returns the current state of the ingest limiter.
// Used for monitoring and to check if the system can accept more files.
func (s *Server) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.LimiterStatus())
}
