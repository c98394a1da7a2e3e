package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

type fakeSessionRepo struct {
	sessions map[string]domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session domain.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return domain.Session{}, errors.New("no rows")
	}
	return s, nil
}

func (f *fakeSessionRepo) UpdateProgress(_ context.Context, sessionID string, questionIdx int, scores domain.StageScores) error {
	s := f.sessions[sessionID]
	s.QuestionIdx = questionIdx
	s.Scores = scores
	f.sessions[sessionID] = s
	return nil
}

func (f *fakeSessionRepo) Complete(_ context.Context, sessionID string, stage domain.StageAssessment, completedAt time.Time) error {
	s := f.sessions[sessionID]
	s.Status = domain.SessionStatusCompleted
	s.Stage = &stage
	s.CompletedAt = &completedAt
	f.sessions[sessionID] = s
	return nil
}

type fakeAssessmentRepo struct {
	records []domain.AssessmentRecord
}

func (f *fakeAssessmentRepo) Create(_ context.Context, record domain.AssessmentRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAssessmentRepo) LatestByUserID(_ context.Context, _ string) (domain.AssessmentRecord, error) {
	if len(f.records) == 0 {
		return domain.AssessmentRecord{}, pgx.ErrNoRows
	}
	return f.records[len(f.records)-1], nil
}

func (f *fakeAssessmentRepo) ListByUserID(_ context.Context, _ string, _ int) ([]domain.AssessmentRecord, error) {
	return f.records, nil
}

var (
	_ repository.SessionRepository    = (*fakeSessionRepo)(nil)
	_ repository.AssessmentRepository = (*fakeAssessmentRepo)(nil)
)

func newTestAssessmentService(sessions *fakeSessionRepo, records *fakeAssessmentRepo) *AssessmentService {
	svc := NewAssessmentService(zap.NewNop(), sessions, records)
	svc.pickVariant = func(n int) int { return 0 } // determinista en tests
	return svc
}

func TestAssessmentSession_FullFlow(t *testing.T) {
	sessions := newFakeSessionRepo()
	records := &fakeAssessmentRepo{}
	svc := newTestAssessmentService(sessions, records)

	session, prompt, err := svc.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if prompt != assessmentQuestions[0].Prompts[0] {
		t.Fatalf("expected first mood prompt, got %q", prompt)
	}

	// Turno 1 (mood): deprime y ansiedad empatan en 1.
	turn, err := svc.RecordResponse(context.Background(), session.ID, "I feel hopeless and worried")
	if err != nil {
		t.Fatalf("record response: %v", err)
	}
	if got, _ := turn.Get(domain.StageDepression); got != 1 {
		t.Fatalf("expected depression 1 on turn 1, got %d", got)
	}

	// Turno 2 (sleep): insomnio suma a depresión.
	if _, err := svc.RecordResponse(context.Background(), session.ID, "insomnia every night, so tired"); err != nil {
		t.Fatalf("record response: %v", err)
	}

	// Turno 3 (thoughts): sin señales.
	if _, err := svc.RecordResponse(context.Background(), session.ID, "the future looks bright"); err != nil {
		t.Fatalf("record response: %v", err)
	}

	stage, err := svc.CompleteSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if stage.PrimaryStage != domain.StageDepression {
		t.Fatalf("expected Depression as primary stage, got %q", stage.PrimaryStage)
	}
	if stage.Score != 3 { // hopeless + insomnia + tired
		t.Fatalf("expected accumulated score 3, got %d", stage.Score)
	}

	if len(records.records) != 1 {
		t.Fatalf("expected one persisted assessment, got %d", len(records.records))
	}
	if records.records[0].UserID != "u1" || records.records[0].SessionID != session.ID {
		t.Fatalf("unexpected record linkage: %+v", records.records[0])
	}

	stored := sessions.sessions[session.ID]
	if stored.Status != domain.SessionStatusCompleted || stored.Stage == nil {
		t.Fatalf("expected completed session with stage, got %+v", stored)
	}
}

func TestRecordResponse_BankExhausted(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newTestAssessmentService(sessions, &fakeAssessmentRepo{})

	session, _, err := svc.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	for _, text := range []string{"fine", "fine", "fine"} {
		if _, err := svc.RecordResponse(context.Background(), session.ID, text); err != nil {
			t.Fatalf("record response: %v", err)
		}
	}

	turn, err := svc.RecordResponse(context.Background(), session.ID, "anything else")
	if err != nil {
		t.Fatalf("expected no error after bank exhausted, got %v", err)
	}
	if turn != nil {
		t.Fatalf("expected nil scores after bank exhausted, got %+v", turn)
	}
	if got := svc.NextPrompt(sessions.sessions[session.ID]); got != "" {
		t.Fatalf("expected empty prompt after bank exhausted, got %q", got)
	}
}

func TestCompleteSession_AllZeroDefaultsToNormal(t *testing.T) {
	sessions := newFakeSessionRepo()
	records := &fakeAssessmentRepo{}
	svc := newTestAssessmentService(sessions, records)

	session, _, err := svc.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := svc.RecordResponse(context.Background(), session.ID, "nothing matches here"); err != nil {
		t.Fatalf("record response: %v", err)
	}

	stage, err := svc.CompleteSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if stage.PrimaryStage != domain.StageNormal || stage.Confidence != 0 {
		t.Fatalf("expected Normal baseline, got %+v", stage)
	}
}

func TestCompleteSession_Twice(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newTestAssessmentService(sessions, &fakeAssessmentRepo{})

	session, _, err := svc.StartSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := svc.CompleteSession(context.Background(), session.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.CompleteSession(context.Background(), session.ID); !errors.Is(err, ErrSessionAlreadyCompleted) {
		t.Fatalf("expected ErrSessionAlreadyCompleted, got %v", err)
	}
}

func TestStartSession_InvalidUser(t *testing.T) {
	svc := newTestAssessmentService(newFakeSessionRepo(), &fakeAssessmentRepo{})
	if _, _, err := svc.StartSession(context.Background(), "  "); !errors.Is(err, ErrAssessmentInvalidInput) {
		t.Fatalf("expected ErrAssessmentInvalidInput, got %v", err)
	}
}
