package domain

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// Session es una conversación de evaluación. Scores acumula los puntajes por
// keyword de cada turno; Stage queda fijado al completar la sesión.
type Session struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Status      string           `json:"status"`
	QuestionIdx int              `json:"question_idx"`
	Scores      StageScores      `json:"scores,omitempty"`
	Stage       *StageAssessment `json:"stage,omitempty"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
}
