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

// LocationRepository persiste la ventana de muestras y la ubicación frecuente
// derivada. El snapshot se escribe completo en una sola sentencia: la
// actualización de la historia compartida debe ser atómica.
type LocationRepository interface {
	GetHistory(ctx context.Context, userID string) ([]domain.GeoSample, error)
	SaveSnapshot(ctx context.Context, userID string, history []domain.GeoSample, frequent *domain.FrequentLocation, last domain.GeoSample) error
	GetFrequent(ctx context.Context, userID string) (*domain.FrequentLocation, error)
	ListHistory(ctx context.Context, userID string) ([]domain.GeoSample, error)
}

type PgLocationRepository struct {
	pool *pgxpool.Pool
}

func NewPgLocationRepository(pool *pgxpool.Pool) *PgLocationRepository {
	return &PgLocationRepository{pool: pool}
}

func (r *PgLocationRepository) GetHistory(ctx context.Context, userID string) ([]domain.GeoSample, error) {
	const query = `
		SELECT history
		FROM user_locations
		WHERE user_id = $1
	`
	var historyJSON []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&historyJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var history []domain.GeoSample
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &history); err != nil {
			return nil, err
		}
	}
	return history, nil
}

// ListHistory es un alias de lectura usado por el export de reportes.
func (r *PgLocationRepository) ListHistory(ctx context.Context, userID string) ([]domain.GeoSample, error) {
	return r.GetHistory(ctx, userID)
}

func (r *PgLocationRepository) SaveSnapshot(ctx context.Context, userID string, history []domain.GeoSample, frequent *domain.FrequentLocation, last domain.GeoSample) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return err
	}
	lastJSON, err := json.Marshal(last)
	if err != nil {
		return err
	}

	var frequentJSON interface{}
	if frequent != nil {
		b, err := json.Marshal(frequent)
		if err != nil {
			return err
		}
		frequentJSON = b
	}

	const query = `
		INSERT INTO user_locations (user_id, history, frequent, last_sample, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET history = EXCLUDED.history,
		    frequent = EXCLUDED.frequent,
		    last_sample = EXCLUDED.last_sample,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = r.pool.Exec(ctx, query, userID, historyJSON, frequentJSON, lastJSON, time.Now().UTC())
	return err
}

func (r *PgLocationRepository) GetFrequent(ctx context.Context, userID string) (*domain.FrequentLocation, error) {
	const query = `
		SELECT frequent
		FROM user_locations
		WHERE user_id = $1
	`
	var frequentJSON []byte
	err := r.pool.QueryRow(ctx, query, userID).Scan(&frequentJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(frequentJSON) == 0 {
		return nil, nil
	}

	var frequent domain.FrequentLocation
	if err := json.Unmarshal(frequentJSON, &frequent); err != nil {
		return nil, err
	}
	return &frequent, nil
}
