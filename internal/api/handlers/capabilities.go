package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rahulverma/legalclarity/internal/analysis"
	"github.com/rahulverma/legalclarity/internal/document"
)

// CapabilityService exposes the secondary model calls made after an
// initial analysis: question answering, simplification, comparison, and
// amendment suggestions.
type CapabilityService interface {
	Answer(ctx context.Context, documentText, question string) (string, error)
	Simplify(ctx context.Context, legalText string) (string, error)
	CompareWithUpload(ctx context.Context, originalText string, up document.Upload) (string, error)
	SuggestAmendment(ctx context.Context, originalClause, riskExplanation string) (*analysis.Amendment, error)
}

// SpeechService synthesizes text into a WAV data URI.
type SpeechService interface {
	SpeechDataURI(ctx context.Context, text string) (string, error)
}

type CapabilityHandler struct {
	svc    CapabilityService
	speech SpeechService
}

func NewCapabilityHandler(svc CapabilityService, speech SpeechService) *CapabilityHandler {
	return &CapabilityHandler{svc: svc, speech: speech}
}

func (h *CapabilityHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DocumentText string `json:"document_text"`
		Question     string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DocumentText == "" || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document_text and question required"})
		return
	}

	answer, err := h.svc.Answer(r.Context(), req.DocumentText, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (h *CapabilityHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LegalText string `json:"legal_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.LegalText == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "legal_text required"})
		return
	}

	simplified, err := h.svc.Simplify(r.Context(), req.LegalText)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"plain_language_text": simplified})
}

// Compare takes the original document's extracted text plus a second file
// upload and returns the model's comparison.
func (h *CapabilityHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	originalText := r.FormValue("original_document_text")
	if originalText == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "original_document_text required"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read file"})
		return
	}

	comparison, err := h.svc.CompareWithUpload(r.Context(), originalText, document.Upload{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Name:     header.Filename,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"comparison": comparison})
}

func (h *CapabilityHandler) SuggestAmendment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OriginalClause  string `json:"original_clause"`
		RiskExplanation string `json:"risk_explanation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.OriginalClause == "" || req.RiskExplanation == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "original_clause and risk_explanation required"})
		return
	}

	amendment, err := h.svc.SuggestAmendment(r.Context(), req.OriginalClause, req.RiskExplanation)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"suggested_amendment": amendment.SuggestedAmendment,
		"explanation":         amendment.Explanation,
	})
}

func (h *CapabilityHandler) Audio(w http.ResponseWriter, r *http.Request) {
	// Synthesis rides on the OpenAI TTS endpoint; without a key there is no
	// backend to call.
	if h.speech == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "speech synthesis is not configured"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	uri, err := h.speech.SpeechDataURI(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"audio_data_uri": uri})
}
