package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/unify-edu/unify-backend/internal/adapters/database"
	"github.com/unify-edu/unify-backend/internal/adapters/modelstore"
	"github.com/unify-edu/unify-backend/internal/application/services"
	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/evaluation"
	"github.com/unify-edu/unify-backend/internal/infrastructure/clients/postgres"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
	"github.com/unify-edu/unify-backend/pkg/config"
)

func main() {
	goldenPath := flag.String("golden", "config/golden_profiles.json", "path to the golden profile set")
	flag.Parse()

	observability.InitLogger("unify-evaluate", "development")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := modelstore.NewFileStore(cfg.Model.ArtifactPath)
	model, err := store.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load model artifact: %v", err)
	}
	vocabulary := entities.NewVocabulary(model.Version, model.Labels)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	catalog := services.NewCatalogService(database.NewUniversityAdapter(pgClient))
	if err := catalog.Reload(context.Background()); err != nil {
		log.Fatalf("Failed to load university catalog: %v", err)
	}

	scorer := services.NewUniversityScorer(cfg.Engine.RatingWeight, cfg.Engine.OverlapWeight)
	engine := services.NewRecommendationService(
		services.NewProfileEncoder(model),
		services.NewAccommodationPredictor(model, vocabulary, cfg.Engine.PredictionThreshold, cfg.Engine.PredictionTopK),
		scorer,
		catalog,
		vocabulary,
		nil, // evaluation exercises the deterministic tiers only
		services.NewDefaultRecommendationService(scorer, vocabulary),
		nil,
		nil,
		cfg.Engine,
		cfg.Gemini.Timeout,
	)

	profiles, err := evaluation.LoadGoldenProfiles(*goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden profiles: %v", err)
	}
	if err := evaluation.ValidateGoldenProfiles(profiles); err != nil {
		log.Fatalf("Invalid golden profiles: %v", err)
	}

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinRecommendations: 1,
		MaxRecommendations: cfg.Engine.MaxRecommendations,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	runner := evaluation.NewRunner(engine, guardrails)
	summary, err := runner.Run(ctx, profiles)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	printSummary(summary)
}

func printSummary(s *evaluation.EvalSummary) {
	fmt.Printf("Profiles evaluated:      %d\n", s.TotalProfiles)
	fmt.Printf("Profiles with results:   %d\n", s.ProfilesWithResults)
	fmt.Printf("Guardrail violations:    %d\n", s.GuardrailViolations)
	fmt.Printf("Avg accommodation recall: %.3f\n", s.AvgAccommodationRecall)
	fmt.Printf("Avg university MRR:       %.3f\n", s.AvgUniversityMRR)
	fmt.Printf("Avg latency:              %s\n", s.AvgLatency)

	bySource, _ := json.MarshalIndent(s.BySource, "", "  ")
	fmt.Printf("By source:\n%s\n", bySource)
}
