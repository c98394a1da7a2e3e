package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

// LocationService mantiene la ventana de muestras de cada usuario y recalcula
// la ubicación frecuente en cada ingreso.
type LocationService struct {
	logger       *zap.Logger
	locationRepo repository.LocationRepository
	engine       LocationEngine
}

var ErrLocationInvalidInput = errors.New("location invalid input")

func NewLocationService(logger *zap.Logger, locationRepo repository.LocationRepository) *LocationService {
	return &LocationService{
		logger:       logger,
		locationRepo: locationRepo,
		engine:       LocationEngine{},
	}
}

// RecordSample agrega una muestra a la historia del usuario, recorta la
// ventana, recalcula la celda dominante y guarda todo como un solo snapshot.
func (s *LocationService) RecordSample(ctx context.Context, userID string, sample domain.GeoSample) (*domain.FrequentLocation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrLocationInvalidInput
	}
	if sample.Latitude < -90 || sample.Latitude > 90 || sample.Longitude < -180 || sample.Longitude > 180 {
		return nil, ErrLocationInvalidInput
	}

	history, err := s.locationRepo.GetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get location history: %w", err)
	}

	history = s.engine.AppendSample(history, sample)
	frequent := s.engine.ClusterMostFrequent(history)

	if err := s.locationRepo.SaveSnapshot(ctx, userID, history, frequent, sample); err != nil {
		return nil, fmt.Errorf("save location snapshot: %w", err)
	}

	if s.logger != nil && frequent != nil {
		s.logger.Debug("location snapshot updated",
			zap.String("user_id", userID),
			zap.Int("window", len(history)),
			zap.Int("frequency", frequent.Frequency),
		)
	}

	return frequent, nil
}

// FrequentLocation devuelve la celda dominante guardada, o nil si no hay datos.
func (s *LocationService) FrequentLocation(ctx context.Context, userID string) (*domain.FrequentLocation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrLocationInvalidInput
	}
	return s.locationRepo.GetFrequent(ctx, userID)
}
