package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"mindmate/internal/domain"
)

// MemoryRepository guarda momentos salientes de conversación con su embedding
// para recuperación por similitud.
type MemoryRepository interface {
	Create(ctx context.Context, memory domain.ConversationMemory) error
	Search(ctx context.Context, userID uuid.UUID, queryEmbedding pgvector.Vector, k int) ([]domain.ConversationMemory, error)
}

type PgMemoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemoryRepository(pool *pgxpool.Pool) *PgMemoryRepository {
	return &PgMemoryRepository{pool: pool}
}

func (r *PgMemoryRepository) Create(ctx context.Context, memory domain.ConversationMemory) error {
	const query = `
		INSERT INTO conversation_memories (id, user_id, session_id, content, embedding, stage, risk_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var sessionID interface{}
	if memory.SessionID != nil {
		sessionID = *memory.SessionID
	}

	_, err := r.pool.Exec(ctx, query,
		memory.ID,
		memory.UserID,
		sessionID,
		memory.Content,
		memory.Embedding,
		memory.Stage,
		memory.RiskLevel,
		memory.CreatedAt,
	)
	return err
}

// Search devuelve las k memorias más cercanas por distancia coseno.
func (r *PgMemoryRepository) Search(ctx context.Context, userID uuid.UUID, queryEmbedding pgvector.Vector, k int) ([]domain.ConversationMemory, error) {
	if k <= 0 {
		k = 3
	}
	const query = `
		SELECT id, user_id, session_id, content, embedding, stage, risk_level, created_at
		FROM conversation_memories
		WHERE user_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []domain.ConversationMemory
	for rows.Next() {
		var (
			m         domain.ConversationMemory
			sessionID *uuid.UUID
		)
		err = rows.Scan(
			&m.ID,
			&m.UserID,
			&sessionID,
			&m.Content,
			&m.Embedding,
			&m.Stage,
			&m.RiskLevel,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		m.SessionID = sessionID
		memories = append(memories, m)
	}

	return memories, rows.Err()
}
