package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

// AssessmentService conduce la evaluación por keywords a lo largo de una
// sesión: puntúa cada turno, acumula por etapa y reduce al completar.
// La política de acumulación (suma por etapa entre turnos) vive acá, no en el
// engine.
type AssessmentService struct {
	logger         *zap.Logger
	sessionRepo    repository.SessionRepository
	assessmentRepo repository.AssessmentRepository
	engine         AssessmentEngine
	bank           []domain.AssessmentQuestion
	pickVariant    func(n int) int
}

var (
	ErrAssessmentInvalidInput  = errors.New("assessment invalid input")
	ErrSessionAlreadyCompleted = errors.New("session already completed")
	ErrAssessmentNotConfigured = errors.New("assessment service not configured")
)

func NewAssessmentService(logger *zap.Logger, sessionRepo repository.SessionRepository, assessmentRepo repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{
		logger:         logger,
		sessionRepo:    sessionRepo,
		assessmentRepo: assessmentRepo,
		engine:         AssessmentEngine{},
		bank:           assessmentQuestions,
		pickVariant:    rand.Intn,
	}
}

// StartSession crea una sesión activa y devuelve el primer prompt.
func (s *AssessmentService) StartSession(ctx context.Context, userID string) (domain.Session, string, error) {
	if s == nil || s.sessionRepo == nil {
		return domain.Session{}, "", ErrAssessmentNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Session{}, "", ErrAssessmentInvalidInput
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Status:    domain.SessionStatusActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return domain.Session{}, "", fmt.Errorf("create session: %w", err)
	}

	return session, s.NextPrompt(session), nil
}

// NextPrompt devuelve una variante de la pregunta actual, o "" si el banco
// ya se agotó (la conversación sigue solo con el LLM).
func (s *AssessmentService) NextPrompt(session domain.Session) string {
	if session.QuestionIdx < 0 || session.QuestionIdx >= len(s.bank) {
		return ""
	}
	q := s.bank[session.QuestionIdx]
	if len(q.Prompts) == 0 {
		return ""
	}
	return q.Prompts[s.pickVariant(len(q.Prompts))]
}

// RecordResponse puntúa la respuesta contra la pregunta actual de la sesión,
// acumula en los puntajes de la sesión y avanza a la siguiente pregunta.
// Devuelve los puntajes del turno (nil si el banco ya se agotó).
func (s *AssessmentService) RecordResponse(ctx context.Context, sessionID, text string) (domain.StageScores, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.Status == domain.SessionStatusCompleted {
		return nil, ErrSessionAlreadyCompleted
	}
	if session.QuestionIdx >= len(s.bank) {
		return nil, nil
	}

	question := s.bank[session.QuestionIdx]
	turnScores := s.engine.ScoreResponse(text, question.ID, s.bank)
	if turnScores == nil {
		// Banco y sesión desincronizados; no debería pasar con config estática.
		return nil, nil
	}

	merged := session.Scores.Merge(turnScores)
	if err := s.sessionRepo.UpdateProgress(ctx, session.ID, session.QuestionIdx+1, merged); err != nil {
		return nil, fmt.Errorf("update session progress: %w", err)
	}

	return turnScores, nil
}

// CompleteSession reduce los puntajes acumulados a una etapa primaria, cierra
// la sesión y persiste el registro para el historial del usuario.
func (s *AssessmentService) CompleteSession(ctx context.Context, sessionID string) (domain.StageAssessment, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return domain.StageAssessment{}, fmt.Errorf("get session: %w", err)
	}
	if session.Status == domain.SessionStatusCompleted {
		return domain.StageAssessment{}, ErrSessionAlreadyCompleted
	}

	stage := s.engine.DetermineStage(session.Scores)
	now := time.Now().UTC()

	if err := s.sessionRepo.Complete(ctx, session.ID, stage, now); err != nil {
		return domain.StageAssessment{}, fmt.Errorf("complete session: %w", err)
	}

	record := domain.AssessmentRecord{
		ID:           uuid.NewString(),
		UserID:       session.UserID,
		SessionID:    session.ID,
		PrimaryStage: stage.PrimaryStage,
		Score:        stage.Score,
		Confidence:   stage.Confidence,
		CreatedAt:    now,
	}
	if err := s.assessmentRepo.Create(ctx, record); err != nil {
		return domain.StageAssessment{}, fmt.Errorf("persist assessment: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("assessment session completed",
			zap.String("session_id", session.ID),
			zap.String("primary_stage", stage.PrimaryStage),
			zap.Float64("confidence", stage.Confidence),
		)
	}

	return stage, nil
}

// QuestionBank expone el banco de preguntas como configuración de solo lectura.
func (s *AssessmentService) QuestionBank() []domain.AssessmentQuestion {
	return s.bank
}
