package music

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"mindmate/internal/domain"
)

// DefaultCacheTTL es la vigencia del catálogo en memoria.
const DefaultCacheTTL = 5 * time.Minute

// Fetcher abstrae la consulta remota por categoría.
type Fetcher interface {
	FetchByCategory(ctx context.Context, category string) ([]domain.Track, error)
}

type cacheEntry struct {
	tracks    []domain.Track
	fetchedAt time.Time
}

// Catalog sirve pistas por categoría con cache en memoria y catálogo
// estático de contingencia. Nunca devuelve error al caller: ante fallo del
// proveedor responde con las pistas de contingencia.
type Catalog struct {
	logger  *zap.Logger
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewCatalog(logger *zap.Logger, fetcher Fetcher, ttl time.Duration) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Catalog{
		logger:  logger,
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]cacheEntry),
	}
}

// ByCategory devuelve las pistas de una categoría, de cache si sigue vigente.
func (c *Catalog) ByCategory(ctx context.Context, category string) []domain.Track {
	if _, ok := searchQueries[category]; !ok {
		return FallbackByCategory(category)
	}

	if tracks, ok := c.cached(category); ok {
		return tracks
	}

	tracks, err := c.fetcher.FetchByCategory(ctx, category)
	if err != nil {
		c.logger.Warn("music fetch failed, serving fallback",
			zap.String("category", category),
			zap.Error(err),
		)
		return FallbackByCategory(category)
	}
	if len(tracks) == 0 {
		return FallbackByCategory(category)
	}

	c.store(category, tracks)
	return tracks
}

// All devuelve el catálogo completo deduplicado por id.
func (c *Catalog) All(ctx context.Context) []domain.Track {
	var (
		all  []domain.Track
		seen = make(map[string]bool)
	)
	for _, category := range Categories {
		for _, t := range c.ByCategory(ctx, category) {
			if t.ID == "" || seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			all = append(all, t)
		}
	}
	return all
}

func (c *Catalog) cached(category string) ([]domain.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[category]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.cache, category)
		return nil, false
	}
	return entry.tracks, true
}

func (c *Catalog) store(category string, tracks []domain.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[category] = cacheEntry{tracks: tracks, fetchedAt: c.now()}
}
