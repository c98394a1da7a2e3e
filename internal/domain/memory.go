package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// ConversationMemory es un momento saliente de una conversación de evaluación,
// embebido para recuperación semántica en turnos posteriores.
type ConversationMemory struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	SessionID *uuid.UUID      `json:"session_id,omitempty"`
	Content   string          `json:"content"`
	Embedding pgvector.Vector `json:"embedding"`
	Stage     string          `json:"stage,omitempty"`
	RiskLevel string          `json:"risk_level,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
