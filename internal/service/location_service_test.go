package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/repository"
)

type fakeLocationRepo struct {
	history  []domain.GeoSample
	frequent *domain.FrequentLocation
	getErr   error
	saveErr  error
	saves    int
}

func (f *fakeLocationRepo) GetHistory(_ context.Context, _ string) ([]domain.GeoSample, error) {
	return f.history, f.getErr
}

func (f *fakeLocationRepo) ListHistory(ctx context.Context, userID string) ([]domain.GeoSample, error) {
	return f.GetHistory(ctx, userID)
}

func (f *fakeLocationRepo) SaveSnapshot(_ context.Context, _ string, history []domain.GeoSample, frequent *domain.FrequentLocation, _ domain.GeoSample) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.history = history
	f.frequent = frequent
	f.saves++
	return nil
}

func (f *fakeLocationRepo) GetFrequent(_ context.Context, _ string) (*domain.FrequentLocation, error) {
	return f.frequent, nil
}

var _ repository.LocationRepository = (*fakeLocationRepo)(nil)

func TestRecordSample_AppendsAndRecomputes(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(zap.NewNop(), repo)

	freq, err := svc.RecordSample(context.Background(), "u1", sampleAt(40.0, -3.0, "2026-06-01T10:00:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if freq == nil || freq.Frequency != 1 {
		t.Fatalf("expected frequency 1, got %+v", freq)
	}
	if len(repo.history) != 1 || repo.saves != 1 {
		t.Fatalf("expected one persisted sample, got %d (saves=%d)", len(repo.history), repo.saves)
	}
}

func TestRecordSample_WindowNeverExceedsCap(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(zap.NewNop(), repo)

	for i := 0; i < 25; i++ {
		ts := fmt.Sprintf("2026-06-01T10:%02d:00Z", i)
		if _, err := svc.RecordSample(context.Background(), "u1", sampleAt(float64(i), 0, ts)); err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if len(repo.history) > LocationHistoryCap {
			t.Fatalf("window exceeded cap after sample %d: %d", i, len(repo.history))
		}
	}
	if len(repo.history) != LocationHistoryCap {
		t.Fatalf("expected full window of %d, got %d", LocationHistoryCap, len(repo.history))
	}
}

func TestRecordSample_InvalidInput(t *testing.T) {
	svc := NewLocationService(zap.NewNop(), &fakeLocationRepo{})

	if _, err := svc.RecordSample(context.Background(), "  ", sampleAt(1, 1, "")); !errors.Is(err, ErrLocationInvalidInput) {
		t.Fatalf("expected ErrLocationInvalidInput for empty user, got %v", err)
	}
	if _, err := svc.RecordSample(context.Background(), "u1", sampleAt(91, 0, "")); !errors.Is(err, ErrLocationInvalidInput) {
		t.Fatalf("expected ErrLocationInvalidInput for bad latitude, got %v", err)
	}
	if _, err := svc.RecordSample(context.Background(), "u1", sampleAt(0, -181, "")); !errors.Is(err, ErrLocationInvalidInput) {
		t.Fatalf("expected ErrLocationInvalidInput for bad longitude, got %v", err)
	}
}

func TestRecordSample_RepoErrorWrapped(t *testing.T) {
	repo := &fakeLocationRepo{getErr: errors.New("boom")}
	svc := NewLocationService(zap.NewNop(), repo)

	if _, err := svc.RecordSample(context.Background(), "u1", sampleAt(1, 1, "2026-06-01T10:00:00Z")); err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestFrequentLocation_ReadsStored(t *testing.T) {
	repo := &fakeLocationRepo{frequent: &domain.FrequentLocation{Latitude: 1, Longitude: 2, Frequency: 4}}
	svc := NewLocationService(zap.NewNop(), repo)

	freq, err := svc.FrequentLocation(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if freq == nil || freq.Frequency != 4 {
		t.Fatalf("expected stored frequent location, got %+v", freq)
	}
}
