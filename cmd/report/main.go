package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mindmate/internal/report"
	"mindmate/internal/repository"
)

// reportConfig sólo necesita la base de datos; el resto de la configuración
// del servicio no aplica a este comando.
type reportConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

func main() {
	userID := flag.String("user", "", "user id to export")
	outPath := flag.String("out", "report.xlsx", "output .xlsx path")
	flag.Parse()

	if *userID == "" {
		log.Fatal("usage: report -user <user-id> [-out report.xlsx]")
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	var cfg reportConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	exporter := report.NewExporter(
		logger,
		repository.NewPgAssessmentRepository(pool),
		repository.NewPgLocationRepository(pool),
	)

	f, err := os.Create(*outPath)
	if err != nil {
		logger.Fatal("create output file", zap.Error(err))
	}
	defer f.Close()

	if err := exporter.Write(ctx, *userID, f); err != nil {
		logger.Fatal("export report", zap.Error(err))
	}

	logger.Info("report written", zap.String("path", *outPath), zap.String("user_id", *userID))
}
