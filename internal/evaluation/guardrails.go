package evaluation

import (
	"fmt"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

type GuardrailConfig struct {
	MinRecommendations int
	MaxRecommendations int
}

// Guardrails flag results that violate the engine's serving contract: a
// result must succeed, name a known tier, and never be empty.
type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MinRecommendations <= 0 {
		config.MinRecommendations = 1
	}
	if config.MaxRecommendations <= 0 {
		config.MaxRecommendations = 10
	}
	return &Guardrails{config: config}
}

func (g *Guardrails) Check(result *entities.RecommendationResult) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}
	if !result.Success {
		return fmt.Errorf("unsuccessful result from source %q", result.Source)
	}
	if !result.Source.IsValid() {
		return fmt.Errorf("unknown source %q", result.Source)
	}
	if len(result.Recommendations) < g.config.MinRecommendations {
		return fmt.Errorf("only %d recommendations, want at least %d", len(result.Recommendations), g.config.MinRecommendations)
	}
	if len(result.Recommendations) > g.config.MaxRecommendations {
		return fmt.Errorf("%d recommendations, want at most %d", len(result.Recommendations), g.config.MaxRecommendations)
	}
	return nil
}
