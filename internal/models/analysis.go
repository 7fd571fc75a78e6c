package models

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel classifies a single clause.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// ClauseRisk is one entry of an analysis' detailed risk breakdown.
// ComplianceIssues carries "None" when the model found no issue.
type ClauseRisk struct {
	Clause           string    `json:"clause"`
	RiskLevel        RiskLevel `json:"riskLevel"`
	Explanation      string    `json:"explanation"`
	ComplianceIssues string    `json:"complianceIssues"`
}

// AnalysisBundle is the merged AI output for one document: the four
// narrative fields from the full-document analysis plus the clause-level
// risk entries from the risk assessment.
type AnalysisBundle struct {
	Summary            string       `json:"summary"`
	RiskAssessment     string       `json:"riskAssessment"`
	KeyClauses         string       `json:"keyClauses"`
	ComplianceAnalysis string       `json:"complianceAnalysis"`
	DetailedRisks      []ClauseRisk `json:"detailedRisks"`
}

// AnalysisRecord is a completed analysis as persisted for the history view.
// Records are created once and never updated.
type AnalysisRecord struct {
	ID                 uuid.UUID    `json:"id"`
	OwnerID            string       `json:"ownerId"`
	FileName           string       `json:"fileName"`
	DocumentText       string       `json:"documentText"`
	Summary            string       `json:"summary"`
	RiskAssessment     string       `json:"riskAssessment"`
	KeyClauses         string       `json:"keyClauses"`
	ComplianceAnalysis string       `json:"complianceAnalysis"`
	DetailedRisks      []ClauseRisk `json:"detailedRisks"`
	CreatedAt          time.Time    `json:"createdAt"`
}

// AnalysisSummary is a single row of a user's history listing.
type AnalysisSummary struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// PastedTextName is the sentinel file name for analyses of pasted text.
const PastedTextName = "Pasted Text"
