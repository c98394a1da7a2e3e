package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindmate/internal/domain"
)

type AssessmentRepository interface {
	Create(ctx context.Context, record domain.AssessmentRecord) error
	LatestByUserID(ctx context.Context, userID string) (domain.AssessmentRecord, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.AssessmentRecord, error)
}

type PgAssessmentRepository struct {
	pool *pgxpool.Pool
}

func NewPgAssessmentRepository(pool *pgxpool.Pool) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Create(ctx context.Context, record domain.AssessmentRecord) error {
	const query = `
		INSERT INTO assessments (id, user_id, session_id, primary_stage, score, confidence, severity, risk_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var sessionID interface{}
	if record.SessionID != "" {
		sessionID = record.SessionID
	}

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		sessionID,
		record.PrimaryStage,
		record.Score,
		record.Confidence,
		record.Severity,
		record.RiskLevel,
		record.CreatedAt,
	)
	return err
}

func (r *PgAssessmentRepository) LatestByUserID(ctx context.Context, userID string) (domain.AssessmentRecord, error) {
	const query = `
		SELECT id, user_id, session_id, primary_stage, score, confidence, severity, risk_level, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	record, err := scanAssessment(r.pool.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AssessmentRecord{}, err
	}
	return record, err
}

func (r *PgAssessmentRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.AssessmentRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	const query = `
		SELECT id, user_id, session_id, primary_stage, score, confidence, severity, risk_level, created_at
		FROM assessments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.AssessmentRecord
	for rows.Next() {
		record, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (domain.AssessmentRecord, error) {
	var (
		record    domain.AssessmentRecord
		sessionID *string
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&sessionID,
		&record.PrimaryStage,
		&record.Score,
		&record.Confidence,
		&record.Severity,
		&record.RiskLevel,
		&record.CreatedAt,
	)
	if err != nil {
		return domain.AssessmentRecord{}, err
	}
	if sessionID != nil {
		record.SessionID = *sessionID
	}
	return record, nil
}
