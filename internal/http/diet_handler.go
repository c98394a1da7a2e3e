package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/service"
)

// DietHandler sirve el plan de comidas personalizado.
type DietHandler struct {
	logger   *zap.Logger
	dietServ *service.DietService
}

func NewDietHandler(logger *zap.Logger, dietServ *service.DietService) *DietHandler {
	return &DietHandler{
		logger:   logger,
		dietServ: dietServ,
	}
}

// GetPlan maneja GET /diet.
func (h *DietHandler) GetPlan(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	rec, err := h.dietServ.Recommend(c.Request.Context(), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDietProfileIncomplete):
			c.JSON(http.StatusPreconditionFailed, gin.H{"error": "complete profile setup first"})
			return
		case errors.Is(err, service.ErrDietInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		default:
			h.logger.Error("diet recommend failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build diet plan"})
			return
		}
	}

	c.JSON(http.StatusOK, rec)
}
