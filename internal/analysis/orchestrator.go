package analysis

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rahulverma/legalclarity/internal/models"
)

// Invoker is the structured model capability: it prompts the model with an
// instruction, feeds it the input text, and unmarshals schema-validated
// JSON into target.
type Invoker interface {
	Generate(ctx context.Context, instruction, input string, schema map[string]any, target any) error
}

// Analyzer merges the two independent model calls that make up a full
// document analysis.
type Analyzer struct {
	inv Invoker
}

func NewAnalyzer(inv Invoker) *Analyzer {
	return &Analyzer{inv: inv}
}

type fullAnalysis struct {
	Summary            string `json:"summary"`
	RiskAssessment     string `json:"riskAssessment"`
	KeyClauses         string `json:"keyClauses"`
	ComplianceAnalysis string `json:"complianceAnalysis"`
}

// Analyze issues the full-document analysis and the clause risk assessment
// concurrently and joins them into one bundle. If either call fails the
// whole operation fails; no partial bundle is ever returned.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*models.AnalysisBundle, error) {
	var (
		full  fullAnalysis
		risks []models.ClauseRisk
	)

	input := "Document Text:\n" + text

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := a.inv.Generate(gctx, analyzeInstruction, input, fullAnalysisSchema(), &full); err != nil {
			return fmt.Errorf("document analysis: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		if err := a.inv.Generate(gctx, assessRiskInstruction, input, clauseRisksSchema(), &risks); err != nil {
			return fmt.Errorf("risk assessment: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if risks == nil {
		risks = []models.ClauseRisk{}
	}

	return &models.AnalysisBundle{
		Summary:            full.Summary,
		RiskAssessment:     full.RiskAssessment,
		KeyClauses:         full.KeyClauses,
		ComplianceAnalysis: full.ComplianceAnalysis,
		DetailedRisks:      risks,
	}, nil
}
