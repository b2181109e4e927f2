package main

import (
	"context"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"adlens/adapters/llm"
	"adlens/adapters/postgres"
	"adlens/adapters/postgres/migrations"
	"adlens/api"
	"adlens/app"
	"adlens/internal"
	"adlens/internal/config"
	"adlens/internal/testkit"
	"adlens/ports"
)

func main() {
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration invalid: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := migrations.NewMigrator(db.DB).Up(context.Background()); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	clock := ports.SystemClock{}

	// Platform boundary. Without credentials the engine runs against the
	// synthetic provider so every pipeline stays exercisable locally.
	var metrics ports.MetricsProvider = testkit.NewMetricsAdapter(testkit.DefaultGeneratorConfig(), nil)
	var extractor ports.SignalExtractor = testkit.NewCompleteExtractorStub()

	var checklists ports.ChecklistGenerator
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		llmCfg := llm.DefaultConfig()
		llmCfg.APIKey = apiKey
		adapter, err := llm.NewChecklistAdapter(llmCfg)
		if err != nil {
			log.Fatalf("LLM adapter setup failed: %v", err)
		}
		checklists = adapter
	} else {
		logger.Warn("OPENAI_API_KEY unset, checklist drafting uses the mock client")
		checklists = llm.NewChecklistAdapterWithClient(llm.DefaultConfig(), &llm.MockLLMClient{})
	}

	extractionRepo := postgres.NewExtractionRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)
	baselineRepo := postgres.NewBaselineRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	server := api.NewServer(
		app.NewEvaluationService(metrics, extractionRepo, baselineRepo, auditRepo, clock, cfg.Engine, logger),
		app.NewExtractionService(extractor, extractionRepo, clock, logger),
		app.NewBaselineService(metrics, baselineRepo, clock, cfg.Engine, logger),
		app.NewRecommendationService(recommendationRepo, clock, cfg.Engine, logger),
		app.NewNarrativeService(checklists, clock, logger),
		logger,
	)

	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
