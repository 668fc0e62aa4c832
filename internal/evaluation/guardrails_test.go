package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

func TestGuardrails_AcceptsAdequateResult(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinRecommendations: 2, MaxRecommendations: 5})

	result := &entities.RecommendationResult{
		Success: true,
		Source:  entities.SourceMLPipeline,
		Recommendations: []entities.UniversityCandidate{
			{Name: "University of Toronto"},
			{Name: "McGill University"},
		},
	}

	assert.NoError(t, g.Check(result))
}

func TestGuardrails_RejectsEmptyResult(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinRecommendations: 1})

	result := &entities.RecommendationResult{
		Success: true,
		Source:  entities.SourceDefaultFallback,
	}

	assert.Error(t, g.Check(result))
}

func TestGuardrails_RejectsFailureAndUnknownSource(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	assert.Error(t, g.Check(nil))
	assert.Error(t, g.Check(&entities.RecommendationResult{Success: false, Source: entities.SourceMLPipeline}))
	assert.Error(t, g.Check(&entities.RecommendationResult{
		Success:         true,
		Source:          "oracle",
		Recommendations: []entities.UniversityCandidate{{Name: "X"}},
	}))
}
