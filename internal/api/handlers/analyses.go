package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rahulverma/legalclarity/internal/auth"
	"github.com/rahulverma/legalclarity/internal/document"
	"github.com/rahulverma/legalclarity/internal/history"
	"github.com/rahulverma/legalclarity/internal/llm"
	"github.com/rahulverma/legalclarity/internal/models"
	"github.com/rahulverma/legalclarity/pkg/textextract"
)

const maxUploadBytes = 32 << 20 // 32MB

// AnalysisService runs the ingestion pipeline.
type AnalysisService interface {
	AnalyzeUpload(ctx context.Context, owner string, up document.Upload) (*models.AnalysisRecord, error)
	AnalyzeText(ctx context.Context, owner, text string) (*models.AnalysisRecord, error)
}

// HistoryStore serves the per-user history views.
type HistoryStore interface {
	ListByOwner(ctx context.Context, owner string) ([]models.AnalysisSummary, error)
	GetByID(ctx context.Context, id uuid.UUID, owner string) (*models.AnalysisRecord, error)
}

type AnalysisHandler struct {
	svc     AnalysisService
	history HistoryStore
}

func NewAnalysisHandler(svc AnalysisService, store HistoryStore) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, history: store}
}

// Create accepts a multipart form with either a "file" upload or a "text"
// field and returns the completed analysis record.
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read file"})
			return
		}

		rec, err := h.svc.AnalyzeUpload(r.Context(), owner, document.Upload{
			Data:     data,
			MimeType: header.Header.Get("Content-Type"),
			Name:     header.Filename,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
		return
	}

	text := r.FormValue("text")
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a file upload or a text field is required"})
		return
	}

	rec, err := h.svc.AnalyzeText(r.Context(), owner, text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())

	items, err := h.history.ListByOwner(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []models.AnalysisSummary{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": items, "count": len(items)})
}

func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := auth.UserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid analysis ID"})
		return
	}

	rec, err := h.history.GetByID(r.Context(), id, owner)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// writeError maps domain sentinels onto HTTP statuses and surfaces the
// error text verbatim.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, textextract.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	case errors.Is(err, document.ErrInsufficientText), errors.Is(err, textextract.ErrExtraction):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, llm.ErrModel):
		status = http.StatusBadGateway
	case errors.Is(err, history.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, history.ErrNotAuthorized):
		status = http.StatusForbidden
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
