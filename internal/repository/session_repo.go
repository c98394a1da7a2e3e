package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindmate/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) error
	GetByID(ctx context.Context, id string) (domain.Session, error)
	UpdateProgress(ctx context.Context, sessionID string, questionIdx int, scores domain.StageScores) error
	Complete(ctx context.Context, sessionID string, stage domain.StageAssessment, completedAt time.Time) error
}

type PgSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSessionRepository(pool *pgxpool.Pool) *PgSessionRepository {
	return &PgSessionRepository{pool: pool}
}

func (r *PgSessionRepository) Create(ctx context.Context, session domain.Session) error {
	scoresJSON, err := json.Marshal(session.Scores)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO sessions (id, user_id, status, question_idx, scores, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Status,
		session.QuestionIdx,
		scoresJSON,
		session.StartedAt,
	)
	return err
}

func (r *PgSessionRepository) GetByID(ctx context.Context, id string) (domain.Session, error) {
	const query = `
		SELECT id, user_id, status, question_idx, scores, stage, started_at, completed_at
		FROM sessions
		WHERE id = $1
	`
	var (
		session    domain.Session
		scoresJSON []byte
		stageJSON  []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.Status,
		&session.QuestionIdx,
		&scoresJSON,
		&stageJSON,
		&session.StartedAt,
		&session.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Session{}, err
	}
	if err != nil {
		return domain.Session{}, err
	}
	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &session.Scores); err != nil {
			return domain.Session{}, err
		}
	}
	if len(stageJSON) > 0 {
		var stage domain.StageAssessment
		if err := json.Unmarshal(stageJSON, &stage); err != nil {
			return domain.Session{}, err
		}
		session.Stage = &stage
	}
	return session, nil
}

// UpdateProgress persiste el índice de pregunta y los puntajes acumulados en
// una sola sentencia; la sesión compartida no se actualiza por partes.
func (r *PgSessionRepository) UpdateProgress(ctx context.Context, sessionID string, questionIdx int, scores domain.StageScores) error {
	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	const query = `
		UPDATE sessions
		SET question_idx = $2, scores = $3
		WHERE id = $1
	`
	_, err = r.pool.Exec(ctx, query, sessionID, questionIdx, scoresJSON)
	return err
}

func (r *PgSessionRepository) Complete(ctx context.Context, sessionID string, stage domain.StageAssessment, completedAt time.Time) error {
	stageJSON, err := json.Marshal(stage)
	if err != nil {
		return err
	}
	const query = `
		UPDATE sessions
		SET status = $2, stage = $3, completed_at = $4
		WHERE id = $1
	`
	_, err = r.pool.Exec(ctx, query, sessionID, domain.SessionStatusCompleted, stageJSON, completedAt)
	return err
}
