package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindmate/internal/domain"
	"mindmate/internal/email"
	"mindmate/internal/llm"
	"mindmate/internal/repository"
)

// memorySalienceThreshold decide qué turnos merecen guardarse como memoria
// de largo plazo.
const memorySalienceThreshold = 0.7

var ErrChatInvalidInput = errors.New("chat: invalid input")

// ChatReply es el resultado de un turno conversacional: el mensaje del
// asistente ya persistido y la evaluación clínica estructurada del turno.
type ChatReply struct {
	Message    domain.Message         `json:"message"`
	Assessment *domain.ChatAssessment `json:"assessment,omitempty"`
}

// ChatService orquesta la conversación de evaluación clínica: construye el
// prompt con contexto y memoria, llama al LLM, interpreta el JSON de salida
// y dispara la alerta de crisis cuando el riesgo es alto.
type ChatService struct {
	logger         *zap.Logger
	llmClient      llm.Client
	messageRepo    repository.MessageRepository
	contextService ContextService
	memoryService  *MemoryService
	parser         AssessmentParser
	crisisSender   email.Sender
	crisisEmail    string

	now func() time.Time
}

func NewChatService(
	logger *zap.Logger,
	llmClient llm.Client,
	messageRepo repository.MessageRepository,
	contextService ContextService,
	memoryService *MemoryService,
	crisisSender email.Sender,
	crisisEmail string,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		logger:         logger,
		llmClient:      llmClient,
		messageRepo:    messageRepo,
		contextService: contextService,
		memoryService:  memoryService,
		crisisSender:   crisisSender,
		crisisEmail:    crisisEmail,
		now:            time.Now,
	}
}

// ProcessMessage procesa un turno del usuario: persiste su mensaje, genera la
// respuesta del asistente y devuelve respuesta más evaluación. Si el modelo no
// devuelve JSON usable se responde con el turno de contingencia en lugar de
// fallar.
func (s *ChatService) ProcessMessage(ctx context.Context, userID, sessionID, userMessage string) (ChatReply, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return ChatReply{}, fmt.Errorf("%w: user id and session id are required", ErrChatInvalidInput)
	}
	if strings.TrimSpace(userMessage) == "" {
		return ChatReply{}, fmt.Errorf("%w: message is empty", ErrChatInvalidInput)
	}

	// El contexto se arma antes de persistir el turno: el mensaje actual ya
	// va explícito al final del prompt y no debe duplicarse en el historial.
	contextText, err := s.contextService.GetContext(ctx, sessionID)
	if err != nil {
		return ChatReply{}, fmt.Errorf("get context: %w", err)
	}

	incoming := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   userMessage,
		Role:      domain.MessageRoleUser,
		CreatedAt: s.now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, incoming); err != nil {
		return ChatReply{}, fmt.Errorf("persist user message: %w", err)
	}

	var memoryText string
	if s.memoryService != nil {
		memoryText, err = s.memoryService.Recall(ctx, userID, userMessage)
		if err != nil {
			// La memoria es un refuerzo, no un requisito del turno.
			s.logger.Warn("memory recall failed", zap.String("user_id", userID), zap.Error(err))
			memoryText = ""
		}
	}

	prompt := s.buildAssessmentPrompt(contextText, memoryText, userMessage)

	raw, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return ChatReply{}, fmt.Errorf("llm generate: %w", err)
	}

	turn, ok := s.parser.ParseChatTurn(raw)
	if !ok {
		s.logger.Warn("unparseable llm turn, using fallback",
			zap.String("session_id", sessionID),
			zap.Int("raw_len", len(raw)),
		)
		turn = s.parser.FallbackChatTurn()
	}

	reply := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   turn.Response,
		Role:      domain.MessageRoleAssistant,
		CreatedAt: s.now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, reply); err != nil {
		return ChatReply{}, fmt.Errorf("persist assistant message: %w", err)
	}

	if turn.Assessment != nil {
		s.rememberSalientTurn(ctx, userID, sessionID, userMessage, turn.Assessment)
		if turn.Assessment.RiskLevel == "high" {
			s.notifyCrisis(ctx, userID, sessionID, turn.Assessment)
		}
	}

	return ChatReply{Message: reply, Assessment: turn.Assessment}, nil
}

func (s *ChatService) rememberSalientTurn(ctx context.Context, userID, sessionID, userMessage string, assessment *domain.ChatAssessment) {
	if s.memoryService == nil {
		return
	}
	if assessment.RiskLevel != "high" && assessment.Confidence < memorySalienceThreshold {
		return
	}
	err := s.memoryService.Store(ctx, userID, sessionID, userMessage, assessment.PrimaryCondition, assessment.RiskLevel)
	if err != nil {
		s.logger.Warn("store conversation memory failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *ChatService) notifyCrisis(ctx context.Context, userID, sessionID string, assessment *domain.ChatAssessment) {
	if s.crisisSender == nil || strings.TrimSpace(s.crisisEmail) == "" {
		s.logger.Warn("high risk detected but crisis alerts are not configured",
			zap.String("user_id", userID),
			zap.String("stage", assessment.PrimaryCondition),
		)
		return
	}

	alert := email.CrisisAlert{
		UserID:     userID,
		SessionID:  sessionID,
		Stage:      assessment.PrimaryCondition,
		RiskLevel:  assessment.RiskLevel,
		Indicators: assessment.KeyIndicators,
		DetectedAt: s.now().UTC(),
	}
	if err := s.crisisSender.SendCrisisAlert(ctx, s.crisisEmail, alert); err != nil {
		s.logger.Error("send crisis alert failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	s.logger.Info("crisis alert sent",
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
		zap.String("stage", assessment.PrimaryCondition),
	)
}

func (s *ChatService) buildAssessmentPrompt(contextText, memoryText, userMessage string) string {
	var sb strings.Builder

	sb.WriteString("You are an AI mental health assistant conducting a clinical assessment. Your role is to:\n\n")
	sb.WriteString("1. Engage in empathetic conversation while assessing mental health indicators\n")
	sb.WriteString("2. Ask relevant follow-up questions to gather more information\n")
	sb.WriteString("3. Analyze responses for signs of:\n")
	sb.WriteString("   - Depression (mild, moderate, severe)\n")
	sb.WriteString("   - Anxiety (general, social, panic disorder)\n")
	sb.WriteString("   - Suicidal thoughts or tendencies\n")
	sb.WriteString("   - Stress (acute, chronic)\n")
	sb.WriteString("   - Bipolar disorder\n")
	sb.WriteString("   - Personality disorders\n")
	sb.WriteString("   - PTSD\n")
	sb.WriteString("   - OCD\n")
	sb.WriteString("   - Eating disorders\n")
	sb.WriteString("   - Addiction tendencies\n")
	sb.WriteString("   - Anger management issues\n")
	sb.WriteString("   - Grief/Loss\n")
	sb.WriteString("   - Sleep disorders\n")
	sb.WriteString("   - Social isolation\n")
	sb.WriteString("   - Self-esteem issues\n")
	sb.WriteString("   - Relationship problems\n\n")
	sb.WriteString("4. Format your response as JSON:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"response\": \"your empathetic response and follow-up question\",\n")
	sb.WriteString("  \"assessment\": {\n")
	sb.WriteString("    \"primaryCondition\": \"identified primary condition\",\n")
	sb.WriteString("    \"secondaryConditions\": [\"other observed conditions\"],\n")
	sb.WriteString("    \"severity\": \"mild/moderate/severe\",\n")
	sb.WriteString("    \"confidence\": 0.1-1.0,\n")
	sb.WriteString("    \"riskLevel\": \"low/medium/high\",\n")
	sb.WriteString("    \"keyIndicators\": [\"observed symptoms/behaviors\"],\n")
	sb.WriteString("    \"recommendedAction\": \"immediate help/professional consultation/self-care\"\n")
	sb.WriteString("  }\n")
	sb.WriteString("}\n")

	if strings.TrimSpace(memoryText) != "" {
		sb.WriteString("\nRelevant observations from earlier sessions:\n")
		sb.WriteString(strings.TrimSpace(memoryText))
		sb.WriteString("\n")
	}

	sb.WriteString("\nPrevious conversation:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("User: %s\n\n", userMessage))

	sb.WriteString("Remember:\n")
	sb.WriteString("- Maintain a supportive, non-judgmental tone\n")
	sb.WriteString("- Flag any concerning patterns, especially related to self-harm\n")
	sb.WriteString("- Include crisis resources for high-risk situations\n")
	sb.WriteString("- Emphasize that this is an AI assessment and recommend professional evaluation")

	return sb.String()
}
