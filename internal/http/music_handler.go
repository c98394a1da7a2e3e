package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/music"
)

// MusicHandler sirve el catálogo de pistas relajantes.
type MusicHandler struct {
	logger  *zap.Logger
	catalog *music.Catalog
}

func NewMusicHandler(logger *zap.Logger, catalog *music.Catalog) *MusicHandler {
	return &MusicHandler{
		logger:  logger,
		catalog: catalog,
	}
}

// ListTracks maneja GET /music. Acepta ?category= para filtrar.
func (h *MusicHandler) ListTracks(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	if category != "" {
		tracks := h.catalog.ByCategory(c.Request.Context(), category)
		c.JSON(http.StatusOK, gin.H{"category": category, "tracks": tracks})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": music.Categories,
		"tracks":     h.catalog.All(c.Request.Context()),
	})
}
