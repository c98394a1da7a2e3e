package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mindmate/internal/config"
	"mindmate/internal/db"
	"mindmate/internal/domain"
	"mindmate/internal/email"
	"mindmate/internal/llm"
	"mindmate/internal/repository"
	"mindmate/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	assessmentRepo := repository.NewPgAssessmentRepository(pool)
	memoryRepo := repository.NewPgMemoryRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)
	contextSvc := service.NewBasicContextService(messageRepo)
	memorySvc := service.NewMemoryService(memoryRepo, llmClient)
	crisisSender := email.NewDisabledSender("crisis alerts disabled in cli")
	chatSvc := service.NewChatService(logger, llmClient, messageRepo, contextSvc, memorySvc, crisisSender, "")
	assessSvc := service.NewAssessmentService(logger, sessionRepo, assessmentRepo)

	user, err := ensureUser(ctx, userRepo, "cli_test@example.com")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("===== Evaluación Conversacional =====")
	fmt.Println("Escribe 'salir' para cerrar la sesión y ver el resultado.")

	session, prompt, err := assessSvc.StartSession(ctx, user.ID)
	if err != nil {
		log.Fatalf("crear sesion: %v", err)
	}
	fmt.Printf("\nAsistente > %s\n", prompt)

	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("leer input: %v", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			finishSession(ctx, assessSvc, session.ID)
			return
		}

		if _, err := assessSvc.RecordResponse(ctx, session.ID, text); err != nil {
			if errors.Is(err, service.ErrSessionAlreadyCompleted) {
				fmt.Println("La sesión ya fue completada.")
				return
			}
			fmt.Printf("error registrando respuesta: %v\n", err)
			continue
		}

		reply, err := chatSvc.ProcessMessage(ctx, user.ID, session.ID, text)
		if err != nil {
			fmt.Printf("error generando respuesta: %v\n", err)
			continue
		}
		fmt.Printf("Asistente > %s\n", reply.Message.Content)
		if reply.Assessment != nil && reply.Assessment.RiskLevel == "high" {
			fmt.Println("[!] Se detectaron indicadores de riesgo alto.")
		}

		if refreshed, err := sessionRepo.GetByID(ctx, session.ID); err == nil {
			if next := assessSvc.NextPrompt(refreshed); next != "" {
				fmt.Printf("Asistente > %s\n", next)
			} else {
				fmt.Println("\nNo quedan más preguntas. Cerrando la sesión...")
				finishSession(ctx, assessSvc, session.ID)
				return
			}
		}
	}
}

func finishSession(ctx context.Context, assessSvc *service.AssessmentService, sessionID string) {
	stage, err := assessSvc.CompleteSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionAlreadyCompleted) {
			fmt.Println("La sesión ya fue completada.")
			return
		}
		fmt.Printf("error completando sesion: %v\n", err)
		return
	}
	fmt.Printf("\nResultado: %s (confianza %.2f)\n", stage.PrimaryStage, stage.Confidence)
}

func ensureUser(ctx context.Context, repo repository.UserRepository, emailAddr string) (domain.User, error) {
	u, err := repo.GetByEmail(ctx, emailAddr)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	u = domain.User{
		ID:        uuid.NewString(),
		Email:     emailAddr,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}
