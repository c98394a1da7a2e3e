package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

var (
	ErrDietInvalidInput      = errors.New("diet: invalid input")
	ErrDietProfileIncomplete = errors.New("diet: profile incomplete")
)

// DietRecommendation es el plan elegido junto con los datos que lo explican.
type DietRecommendation struct {
	BMI     float64         `json:"bmi"`
	BMIBand string          `json:"bmi_band"`
	Stage   string          `json:"stage"`
	Plan    domain.DietPlan `json:"plan"`
}

// DietService selecciona un plan de comidas según la banda de BMI del usuario
// y su última evaluación de salud mental.
type DietService struct {
	logger         *zap.Logger
	userRepo       repository.UserRepository
	assessmentRepo repository.AssessmentRepository
}

func NewDietService(logger *zap.Logger, userRepo repository.UserRepository, assessmentRepo repository.AssessmentRepository) *DietService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DietService{
		logger:         logger,
		userRepo:       userRepo,
		assessmentRepo: assessmentRepo,
	}
}

// Recommend devuelve el plan para el usuario. Sin evaluación previa se asume
// estado "normal"; una etapa sin plan propio cae al plan base de la banda.
func (s *DietService) Recommend(ctx context.Context, userID string) (DietRecommendation, error) {
	if strings.TrimSpace(userID) == "" {
		return DietRecommendation{}, fmt.Errorf("%w: user id is required", ErrDietInvalidInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return DietRecommendation{}, fmt.Errorf("get user: %w", err)
	}

	band := user.BMIBand()
	if band == "" {
		return DietRecommendation{}, fmt.Errorf("%w: height and weight are required", ErrDietProfileIncomplete)
	}

	stage := "normal"
	record, err := s.assessmentRepo.LatestByUserID(ctx, userID)
	switch {
	case err == nil:
		if trimmed := strings.ToLower(strings.TrimSpace(record.PrimaryStage)); trimmed != "" {
			stage = trimmed
		}
	case errors.Is(err, pgx.ErrNoRows):
		// Primer uso sin evaluaciones: plan base.
	default:
		return DietRecommendation{}, fmt.Errorf("get latest assessment: %w", err)
	}

	plan, ok := lookupDietPlan(band, stage)
	if !ok {
		return DietRecommendation{}, fmt.Errorf("no diet plan for band %q", band)
	}

	s.logger.Debug("diet plan selected",
		zap.String("user_id", userID),
		zap.String("bmi_band", band),
		zap.String("stage", stage),
	)

	return DietRecommendation{
		BMI:     user.BMI(),
		BMIBand: band,
		Stage:   stage,
		Plan:    plan,
	}, nil
}
