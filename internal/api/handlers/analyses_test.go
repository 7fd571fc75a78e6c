package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rahulverma/legalclarity/internal/auth"
	"github.com/rahulverma/legalclarity/internal/document"
	"github.com/rahulverma/legalclarity/internal/history"
	"github.com/rahulverma/legalclarity/internal/llm"
	"github.com/rahulverma/legalclarity/internal/models"
)

type stubAnalysisService struct {
	rec       *models.AnalysisRecord
	err       error
	gotOwner  string
	gotText   string
	gotUpload *document.Upload
}

func (s *stubAnalysisService) AnalyzeUpload(ctx context.Context, owner string, up document.Upload) (*models.AnalysisRecord, error) {
	s.gotOwner = owner
	s.gotUpload = &up
	return s.rec, s.err
}

func (s *stubAnalysisService) AnalyzeText(ctx context.Context, owner, text string) (*models.AnalysisRecord, error) {
	s.gotOwner = owner
	s.gotText = text
	return s.rec, s.err
}

type stubHistoryStore struct {
	summaries []models.AnalysisSummary
	rec       *models.AnalysisRecord
	err       error
}

func (s *stubHistoryStore) ListByOwner(ctx context.Context, owner string) ([]models.AnalysisSummary, error) {
	return s.summaries, s.err
}

func (s *stubHistoryStore) GetByID(ctx context.Context, id uuid.UUID, owner string) (*models.AnalysisRecord, error) {
	return s.rec, s.err
}

const handlerTestSecret = "handler-test-secret"

func bearerFor(t *testing.T, sub string) string {
	t.Helper()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(handlerTestSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + signed
}

func multipartText(t *testing.T, text string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("text", text); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func multipartFile(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestCreateWithText(t *testing.T) {
	svc := &stubAnalysisService{rec: &models.AnalysisRecord{
		ID:       uuid.New(),
		OwnerID:  "user-9",
		FileName: models.PastedTextName,
		Summary:  "An NDA.",
	}}
	h := NewAnalysisHandler(svc, &stubHistoryStore{})

	body, contentType := multipartText(t, "Each party agrees to keep the other's information confidential.")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, "user-9"))
	rr := httptest.NewRecorder()

	auth.NewMiddleware(handlerTestSecret).Authenticate(http.HandlerFunc(h.Create)).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if svc.gotOwner != "user-9" {
		t.Errorf("owner passed to service = %q, want user-9", svc.gotOwner)
	}
	if !strings.Contains(svc.gotText, "confidential") {
		t.Errorf("text passed to service = %q", svc.gotText)
	}

	var rec models.AnalysisRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Summary != "An NDA." {
		t.Errorf("Summary = %q", rec.Summary)
	}
}

func TestCreateWithFile(t *testing.T) {
	svc := &stubAnalysisService{rec: &models.AnalysisRecord{FileName: "lease.pdf"}}
	h := NewAnalysisHandler(svc, &stubHistoryStore{})

	body, contentType := multipartFile(t, "lease.pdf", "application/pdf", []byte("%PDF-1.7 ..."))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if svc.gotUpload == nil {
		t.Fatal("service never received the upload")
	}
	if svc.gotUpload.Name != "lease.pdf" {
		t.Errorf("upload name = %q", svc.gotUpload.Name)
	}
	if svc.gotUpload.MimeType != "application/pdf" {
		t.Errorf("upload mime = %q", svc.gotUpload.MimeType)
	}
}

func TestCreateWithNeitherInput(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{}, &stubHistoryStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCreateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "insufficient text", err: document.ErrInsufficientText, wantStatus: http.StatusUnprocessableEntity},
		{name: "model failure", err: fmt.Errorf("%w: upstream", llm.ErrModel), wantStatus: http.StatusBadGateway},
		{name: "unknown", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAnalysisHandler(&stubAnalysisService{err: tt.err}, &stubHistoryStore{})

			body, contentType := multipartText(t, "some pasted document text")
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()

			h.Create(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestList(t *testing.T) {
	store := &stubHistoryStore{summaries: []models.AnalysisSummary{
		{ID: uuid.New(), FileName: "lease.pdf", Summary: "A lease."},
		{ID: uuid.New(), FileName: models.PastedTextName, Summary: "An NDA."},
	}}
	h := NewAnalysisHandler(&stubAnalysisService{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Analyses []models.AnalysisSummary `json:"analyses"`
		Count    int                      `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 2 || len(body.Analyses) != 2 {
		t.Errorf("count = %d, analyses = %d, want 2", body.Count, len(body.Analyses))
	}
}

func TestListEmptyHistory(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{}, &stubHistoryStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"analyses":[]`) {
		t.Errorf("body = %s, want an empty array, not null", rr.Body.String())
	}
}

func getViaRouter(h *AnalysisHandler, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/analyses/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/analyses/"+id, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestGet(t *testing.T) {
	id := uuid.New()
	store := &stubHistoryStore{rec: &models.AnalysisRecord{ID: id, FileName: "lease.pdf"}}
	h := NewAnalysisHandler(&stubAnalysisService{}, store)

	rr := getViaRouter(h, id.String())

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var rec models.AnalysisRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID != id {
		t.Errorf("ID = %v, want %v", rec.ID, id)
	}
}

func TestGetInvalidID(t *testing.T) {
	h := NewAnalysisHandler(&stubAnalysisService{}, &stubHistoryStore{})

	rr := getViaRouter(h, "not-a-uuid")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestGetOwnershipAndAbsence(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: history.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "someone else's record", err: history.ErrNotAuthorized, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAnalysisHandler(&stubAnalysisService{}, &stubHistoryStore{err: tt.err})

			rr := getViaRouter(h, uuid.New().String())

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}
