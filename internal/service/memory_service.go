package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"mindmate/internal/domain"
	"mindmate/internal/llm"
	"mindmate/internal/repository"
)

const memoryRecallK = 3

// MemoryService embebe y recupera momentos salientes de conversaciones
// pasadas para dar continuidad entre sesiones.
type MemoryService struct {
	memoryRepo repository.MemoryRepository
	llmClient  llm.Client
}

func NewMemoryService(memoryRepo repository.MemoryRepository, llmClient llm.Client) *MemoryService {
	return &MemoryService{
		memoryRepo: memoryRepo,
		llmClient:  llmClient,
	}
}

// Recall devuelve las memorias más cercanas al texto, formateadas como bloque
// de contexto. Devuelve "" si no hay nada relevante.
func (s *MemoryService) Recall(ctx context.Context, userID, query string) (string, error) {
	if s == nil || s.memoryRepo == nil || s.llmClient == nil {
		return "", nil
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return "", nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	embed, err := s.llmClient.CreateEmbedding(ctx, query)
	if err != nil {
		return "", fmt.Errorf("create embedding: %w", err)
	}

	memories, err := s.memoryRepo.Search(ctx, userUUID, pgvector.NewVector(embed), memoryRecallK)
	if err != nil {
		return "", fmt.Errorf("search memories: %w", err)
	}
	if len(memories) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, m := range memories {
		sb.WriteString("- ")
		sb.WriteString(m.Content)
		if m.Stage != "" {
			sb.WriteString(fmt.Sprintf(" (observed: %s)", m.Stage))
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

// Store embebe y guarda un momento de la conversación.
func (s *MemoryService) Store(ctx context.Context, userID, sessionID, content, stage, riskLevel string) error {
	if s == nil || s.memoryRepo == nil || s.llmClient == nil {
		return nil
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	embed, err := s.llmClient.CreateEmbedding(ctx, content)
	if err != nil {
		return fmt.Errorf("create embedding: %w", err)
	}

	memory := domain.ConversationMemory{
		ID:        uuid.New(),
		UserID:    userUUID,
		Content:   content,
		Embedding: pgvector.NewVector(embed),
		Stage:     stage,
		RiskLevel: riskLevel,
		CreatedAt: time.Now().UTC(),
	}
	if sessionUUID, err := uuid.Parse(sessionID); err == nil {
		memory.SessionID = &sessionUUID
	}

	return s.memoryRepo.Create(ctx, memory)
}
