package email

import (
	"context"
	"errors"
	"time"
)

// CrisisAlert resume una detección de riesgo alto que debe notificarse.
type CrisisAlert struct {
	UserID     string
	SessionID  string
	Stage      string
	RiskLevel  string
	Indicators []string
	DetectedAt time.Time
}

// Sender define la interfaz para envio de alertas de crisis.
type Sender interface {
	SendCrisisAlert(ctx context.Context, toEmail string, alert CrisisAlert) error
}

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendCrisisAlert(_ context.Context, _ string, _ CrisisAlert) error {
	if s.reason == "" {
		return errors.New("email sender disabled")
	}
	return errors.New(s.reason)
}
