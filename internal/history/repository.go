// Package history persists completed analyses and serves the per-user
// history views. Records are insert-only; there is no update path.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulverma/legalclarity/internal/models"
)

// ErrNotFound means no record with the given id exists.
var ErrNotFound = errors.New("analysis not found")

// ErrNotAuthorized means the record exists but belongs to another user.
var ErrNotAuthorized = errors.New("not authorized to view this analysis")

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save inserts the record and fills in its server-assigned id and
// timestamp. Callers treat failure as non-fatal.
func (r *Repository) Save(ctx context.Context, rec *models.AnalysisRecord) (uuid.UUID, error) {
	risks, err := json.Marshal(rec.DetailedRisks)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal detailed risks: %w", err)
	}

	id := uuid.New()
	err = r.db.QueryRow(ctx,
		`INSERT INTO analyses (id, owner_id, file_name, document_text, summary, risk_assessment, key_clauses, compliance_analysis, detailed_risks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		id, rec.OwnerID, rec.FileName, rec.DocumentText, rec.Summary, rec.RiskAssessment, rec.KeyClauses, rec.ComplianceAnalysis, risks,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert analysis: %w", err)
	}

	rec.ID = id
	return id, nil
}

// ListByOwner returns the caller's history rows, newest first. Ties on
// created_at fall back to id order so the listing is stable.
func (r *Repository) ListByOwner(ctx context.Context, owner string) ([]models.AnalysisSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, file_name, summary, created_at
		 FROM analyses WHERE owner_id = $1
		 ORDER BY created_at DESC, id`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var items []models.AnalysisSummary
	for rows.Next() {
		var it models.AnalysisSummary
		if err := rows.Scan(&it.ID, &it.FileName, &it.Summary, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches one record and enforces row-level ownership. A missing
// row yields ErrNotFound; an owner mismatch yields ErrNotAuthorized.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID, owner string) (*models.AnalysisRecord, error) {
	var (
		rec   models.AnalysisRecord
		risks []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, file_name, document_text, summary, risk_assessment, key_clauses, compliance_analysis, detailed_risks, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.OwnerID, &rec.FileName, &rec.DocumentText, &rec.Summary, &rec.RiskAssessment, &rec.KeyClauses, &rec.ComplianceAnalysis, &risks, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}

	if rec.OwnerID != owner {
		return nil, ErrNotAuthorized
	}

	if err := json.Unmarshal(risks, &rec.DetailedRisks); err != nil {
		return nil, fmt.Errorf("unmarshal detailed risks: %w", err)
	}
	if rec.DetailedRisks == nil {
		rec.DetailedRisks = []models.ClauseRisk{}
	}

	return &rec, nil
}
