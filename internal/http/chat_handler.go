package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindmate/internal/repository"
	"mindmate/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones de evaluación
// y mensajes.
type ChatHandler struct {
	logger      *zap.Logger
	sessions    repository.SessionRepository
	assessments repository.AssessmentRepository
	assessServ  *service.AssessmentService
	chatServ    *service.ChatService
	messageServ *service.MessageService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	assessments repository.AssessmentRepository,
	assessServ *service.AssessmentService,
	chatServ *service.ChatService,
	messageServ *service.MessageService,
) *ChatHandler {
	return &ChatHandler{
		logger:      logger,
		sessions:    sessions,
		assessments: assessments,
		assessServ:  assessServ,
		chatServ:    chatServ,
		messageServ: messageServ,
	}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	session, prompt, err := h.assessServ.StartSession(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session, "prompt": prompt})
}

// PostMessage maneja POST /message: puntúa la respuesta contra la pregunta
// vigente, genera la respuesta del asistente y devuelve la siguiente pregunta
// si el cuestionario sigue abierto.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	var req struct {
		SessionID string `json:"session_id" binding:"required"`
		Content   string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	turnScores, err := h.assessServ.RecordResponse(c.Request.Context(), req.SessionID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyCompleted) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
			return
		}
		h.logger.Error("record response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record response"})
		return
	}

	reply, err := h.chatServ.ProcessMessage(c.Request.Context(), claims.UserID, req.SessionID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrChatInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		h.logger.Error("chat response failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate response"})
		return
	}

	resp := gin.H{
		"message":    reply.Message,
		"assessment": reply.Assessment,
	}
	if turnScores != nil {
		resp["turn_scores"] = turnScores
	}
	if session, err := h.sessions.GetByID(c.Request.Context(), req.SessionID); err == nil {
		if prompt := h.assessServ.NextPrompt(session); prompt != "" {
			resp["next_prompt"] = prompt
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// CompleteSession maneja POST /session/:id/complete.
func (h *ChatHandler) CompleteSession(c *gin.Context) {
	if _, ok := GetAuthClaims(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sessionID := c.Param("id")
	stage, err := h.assessServ.CompleteSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyCompleted) {
			c.JSON(http.StatusConflict, gin.H{"error": "session already completed"})
			return
		}
		h.logger.Error("complete session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not complete session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stage": stage})
}

// GetSessionMessages maneja GET /session/:id/messages.
func (h *ChatHandler) GetSessionMessages(c *gin.Context) {
	if _, ok := GetAuthClaims(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sessionID := c.Param("id")
	messages, err := h.messageServ.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetQuestions maneja GET /questions.
func (h *ChatHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.assessServ.QuestionBank()})
}

// GetAssessmentHistory maneja GET /assessments.
func (h *ChatHandler) GetAssessmentHistory(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	records, err := h.assessments.ListByUserID(c.Request.Context(), claims.UserID, 20)
	if err != nil {
		h.logger.Error("list assessments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": records})
}
