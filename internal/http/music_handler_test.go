package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/music"
	"mindmate/internal/service"
)

type fakeMusicFetcher struct {
	tracks map[string][]domain.Track
	calls  int
}

func (f *fakeMusicFetcher) FetchByCategory(_ context.Context, category string) ([]domain.Track, error) {
	f.calls++
	return f.tracks[category], nil
}

func newMusicTestRouter(t *testing.T, fetcher *fakeMusicFetcher) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := service.NewJWTService("secret", 15*time.Minute, 30*time.Minute)
	catalog := music.NewCatalog(zap.NewNop(), fetcher, music.DefaultCacheTTL)
	handler := NewMusicHandler(zap.NewNop(), catalog)

	r := gin.New()
	protected := r.Group("/", JWTAuthMiddleware(jwtSvc))
	protected.GET("/music", handler.ListTracks)
	return r, newAuthToken(t, jwtSvc, "user-1")
}

func TestMusicHandler_ListByCategory(t *testing.T) {
	fetcher := &fakeMusicFetcher{tracks: map[string][]domain.Track{
		"Sleep": {{ID: "t1", Title: "Deep Rest", Category: "Sleep", StreamURL: "https://example.com/t1"}},
	}}
	r, token := newMusicTestRouter(t, fetcher)

	res := doJSON(r, http.MethodGet, "/music?category=Sleep", token, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Category string         `json:"category"`
		Tracks   []domain.Track `json:"tracks"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Category != "Sleep" || len(resp.Tracks) != 1 || resp.Tracks[0].ID != "t1" {
		t.Fatalf("unexpected response: %s", res.Body.String())
	}
}

func TestMusicHandler_ListAll(t *testing.T) {
	fetcher := &fakeMusicFetcher{tracks: map[string][]domain.Track{
		"Meditation": {{ID: "m1", Title: "Calm", Category: "Meditation", StreamURL: "https://example.com/m1"}},
	}}
	r, token := newMusicTestRouter(t, fetcher)

	res := doJSON(r, http.MethodGet, "/music", token, nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp struct {
		Categories []string       `json:"categories"`
		Tracks     []domain.Track `json:"tracks"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Categories) != len(music.Categories) {
		t.Fatalf("expected %d categories, got %d", len(music.Categories), len(resp.Categories))
	}
	// Las categorías sin datos del proveedor degradan al catálogo estático.
	if len(resp.Tracks) == 0 {
		t.Fatalf("expected tracks in response: %s", res.Body.String())
	}
}
