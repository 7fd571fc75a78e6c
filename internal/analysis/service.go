package analysis

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rahulverma/legalclarity/internal/document"
	"github.com/rahulverma/legalclarity/internal/models"
)

// TextExtractor converts an upload into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, up document.Upload) (*document.Text, error)
}

// DocumentAnalyzer produces the merged analysis bundle for validated text.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*models.AnalysisBundle, error)
}

// Recorder persists completed analyses for the history view.
type Recorder interface {
	Save(ctx context.Context, rec *models.AnalysisRecord) (uuid.UUID, error)
}

// Service runs the ingestion pipeline: extract, validate, analyze, then a
// best-effort save. The analysis is the expensive, user-visible step; the
// save is a history convenience, so its failure is logged and swallowed.
type Service struct {
	extractor TextExtractor
	analyzer  DocumentAnalyzer
	caps      *Capabilities
	history   Recorder
}

func NewService(extractor TextExtractor, analyzer DocumentAnalyzer, caps *Capabilities, history Recorder) *Service {
	return &Service{
		extractor: extractor,
		analyzer:  analyzer,
		caps:      caps,
		history:   history,
	}
}

// AnalyzeUpload runs the full pipeline for an uploaded file.
func (s *Service) AnalyzeUpload(ctx context.Context, owner string, up document.Upload) (*models.AnalysisRecord, error) {
	text, err := s.extractor.Extract(ctx, up)
	if err != nil {
		return nil, err
	}
	return s.analyzeText(ctx, owner, text.FileName, text.Content)
}

// AnalyzeText runs the pipeline for pasted text.
func (s *Service) AnalyzeText(ctx context.Context, owner, text string) (*models.AnalysisRecord, error) {
	return s.analyzeText(ctx, owner, models.PastedTextName, text)
}

func (s *Service) analyzeText(ctx context.Context, owner, fileName, text string) (*models.AnalysisRecord, error) {
	validated, err := document.Validate(text)
	if err != nil {
		return nil, err
	}

	bundle, err := s.analyzer.Analyze(ctx, validated)
	if err != nil {
		return nil, err
	}

	rec := &models.AnalysisRecord{
		OwnerID:            owner,
		FileName:           fileName,
		DocumentText:       validated,
		Summary:            bundle.Summary,
		RiskAssessment:     bundle.RiskAssessment,
		KeyClauses:         bundle.KeyClauses,
		ComplianceAnalysis: bundle.ComplianceAnalysis,
		DetailedRisks:      bundle.DetailedRisks,
	}

	if id, err := s.history.Save(ctx, rec); err != nil {
		slog.Error("failed to save analysis history", "owner", owner, "file", fileName, "error", err)
	} else {
		rec.ID = id
	}

	return rec, nil
}

// CompareWithUpload extracts the second document and compares it against
// the already-extracted original text.
func (s *Service) CompareWithUpload(ctx context.Context, originalText string, up document.Upload) (string, error) {
	text, err := s.extractor.Extract(ctx, up)
	if err != nil {
		return "", err
	}
	if _, err := document.Validate(text.Content); err != nil {
		return "", err
	}
	return s.caps.Compare(ctx, originalText, text.Content)
}

func (s *Service) Answer(ctx context.Context, documentText, question string) (string, error) {
	return s.caps.Answer(ctx, documentText, question)
}

func (s *Service) Simplify(ctx context.Context, legalText string) (string, error) {
	return s.caps.Simplify(ctx, legalText)
}

func (s *Service) SuggestAmendment(ctx context.Context, originalClause, riskExplanation string) (*Amendment, error) {
	return s.caps.SuggestAmendment(ctx, originalClause, riskExplanation)
}
