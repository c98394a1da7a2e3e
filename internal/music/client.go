package music

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"mindmate/internal/domain"
)

// Categorías soportadas, en el orden en que las lista el catálogo.
var Categories = []string{"Meditation", "Nature Sounds", "Sleep", "Relaxation"}

// searchQueries traduce cada categoría a los parámetros de búsqueda del
// proveedor.
var searchQueries = map[string]string{
	"Meditation":    "tags=meditation+ambient&mood=relaxed",
	"Nature Sounds": "tags=nature+ambient&mood=peaceful",
	"Sleep":         "tags=sleep+ambient&mood=peaceful",
	"Relaxation":    "tags=relaxation+ambient&mood=relaxed",
}

const trackFetchLimit = 10

// Client consulta el catálogo de pistas de un proveedor compatible con la API
// de Jamendo.
type Client struct {
	baseURL  string
	clientID string
	client   *http.Client
	logger   *zap.Logger
}

func NewClient(baseURL, clientID string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.jamendo.com/v3.0"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		client:   &http.Client{Timeout: 15 * time.Second},
		logger:   logger,
	}
}

type apiTrack struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Duration      int    `json:"duration"`
	Image         string `json:"image"`
	ShareURL      string `json:"shareurl"`
	ArtistName    string `json:"artist_name"`
	Audio         string `json:"audio"`
	AudioDownload string `json:"audiodownload"`
}

type apiResponse struct {
	Results []apiTrack `json:"results"`
}

// FetchByCategory devuelve las pistas de la categoría. Categorías sin query
// configurada devuelven nil sin error.
func (c *Client) FetchByCategory(ctx context.Context, category string) ([]domain.Track, error) {
	query, ok := searchQueries[category]
	if !ok {
		return nil, nil
	}

	url := fmt.Sprintf("%s/tracks/?client_id=%s&format=json&limit=%d&include=musicinfo&%s&boost=popularity_month",
		c.baseURL, c.clientID, trackFetchLimit, query)

	var payload apiResponse
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, fmt.Errorf("fetch %s tracks: %w", category, err)
	}

	tracks := make([]domain.Track, 0, len(payload.Results))
	for _, t := range payload.Results {
		track, ok := transformTrack(t, category)
		if !ok {
			continue
		}
		tracks = append(tracks, track)
	}

	c.logger.Debug("fetched music category",
		zap.String("category", category),
		zap.Int("tracks", len(tracks)),
	)
	return tracks, nil
}

// FetchAll recorre las categorías en orden y deduplica por id.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Track, error) {
	var (
		all  []domain.Track
		seen = make(map[string]bool)
	)
	for _, category := range Categories {
		tracks, err := c.FetchByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		for _, t := range tracks {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			all = append(all, t)
		}
	}
	return all, nil
}

// transformTrack convierte la pista del proveedor al formato propio. Pistas
// sin URL de streaming se descartan.
func transformTrack(t apiTrack, category string) (domain.Track, bool) {
	if t.ID == "" || t.AudioDownload == "" {
		return domain.Track{}, false
	}
	return domain.Track{
		ID:         t.ID,
		Title:      t.Name,
		Artist:     t.ArtistName,
		Category:   category,
		Duration:   formatDuration(t.Duration),
		Thumbnail:  t.Image,
		URL:        t.ShareURL,
		PreviewURL: t.Audio,
		StreamURL:  t.AudioDownload,
	}, true
}

// formatDuration pasa segundos a "M:SS".
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 10 * time.Second

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode >= 400 {
			httpErr := fmt.Errorf("music http error: status=%d", resp.StatusCode)
			if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(httpErr)
			}
			return httpErr
		}

		if err := json.Unmarshal(body, target); err != nil {
			return backoff.Permanent(fmt.Errorf("unmarshal response: %w", err))
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(bo, ctx))
}
