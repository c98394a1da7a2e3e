package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/service"
)

// LocationHandler mantiene dependencias para endpoints de ubicación.
type LocationHandler struct {
	logger       *zap.Logger
	locationServ *service.LocationService
}

func NewLocationHandler(logger *zap.Logger, locationServ *service.LocationService) *LocationHandler {
	return &LocationHandler{
		logger:       logger,
		locationServ: locationServ,
	}
}

// RecordSample maneja POST /location.
func (h *LocationHandler) RecordSample(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	// Punteros: 0 es una coordenada válida (ecuador, meridiano de Greenwich)
	// y el binding required de gin descarta el valor cero en campos planos.
	var req struct {
		Latitude  *float64 `json:"latitude" binding:"required"`
		Longitude *float64 `json:"longitude" binding:"required"`
		Timestamp string   `json:"timestamp"`
		Accuracy  float64  `json:"accuracy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid location request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	frequent, err := h.locationServ.RecordSample(c.Request.Context(), claims.UserID, domain.GeoSample{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Timestamp: req.Timestamp,
		Accuracy:  req.Accuracy,
	})
	if err != nil {
		if errors.Is(err, service.ErrLocationInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}
		h.logger.Error("record location failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"frequent_location": frequent})
}

// GetFrequent maneja GET /location/frequent.
func (h *LocationHandler) GetFrequent(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	frequent, err := h.locationServ.FrequentLocation(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("get frequent location failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get frequent location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"frequent_location": frequent})
}
