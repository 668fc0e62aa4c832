package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
)

func aiRecommendation() *providers.GenerativeRecommendation {
	return &providers.GenerativeRecommendation{
		NeededAccommodations: []string{"Extended Test Time", "Telepathic Note-Taking", "Quiet Exam Rooms"},
		Universities: []entities.UniversityCandidate{
			{Name: "University of Toronto", AccessibilityRating: 4.5, DisabilitySupportRating: 4.8, Reason: "Strong support office"},
			{Name: "Carleton University", AccessibilityRating: 4.4, DisabilitySupportRating: 4.5, Reason: "Accessible campus"},
		},
	}
}

func TestRecommend_ServesMLTierWhenCatalogLoaded(t *testing.T) {
	engine := newTestEngine(engineOptions{
		universities: testUniversities(),
		cfg:          testEngineConfig(),
	})

	result := engine.Recommend(context.Background(), testProfile())

	require.True(t, result.Success)
	assert.Equal(t, entities.SourceMLPipeline, result.Source)
	assert.NotEmpty(t, result.NeededAccommodations)
	assert.GreaterOrEqual(t, len(result.Recommendations), 2)
	assert.Equal(t, "University of Toronto", result.Recommendations[0].Name)
}

func TestRecommend_FallsBackToAITierWhenCatalogEmpty(t *testing.T) {
	generative := &stubGenerative{rec: aiRecommendation()}
	engine := newTestEngine(engineOptions{
		generative: generative,
		cfg:        testEngineConfig(),
	})

	result := engine.Recommend(context.Background(), testProfile())

	require.True(t, result.Success)
	assert.Equal(t, entities.SourceGeminiAI, result.Source)
	assert.Equal(t, 1, generative.calls)
	// Labels outside the vocabulary never reach the result.
	assert.Equal(t, []string{"Extended Test Time", "Quiet Exam Rooms"}, result.NeededAccommodations)
	assert.Len(t, result.Recommendations, 2)
}

func TestRecommend_FallsBackToDefaultsWhenAIFails(t *testing.T) {
	generative := &stubGenerative{err: fmt.Errorf("upstream unavailable")}
	engine := newTestEngine(engineOptions{
		generative: generative,
		cfg:        testEngineConfig(),
	})

	result := engine.Recommend(context.Background(), testProfile())

	require.True(t, result.Success)
	assert.Equal(t, entities.SourceDefaultFallback, result.Source)
	assert.Equal(t, 1, generative.calls)
	assert.GreaterOrEqual(t, len(result.Recommendations), 2)
}

func TestRecommend_SkipsAITierWhenNotConfigured(t *testing.T) {
	engine := newTestEngine(engineOptions{cfg: testEngineConfig()})

	result := engine.Recommend(context.Background(), testProfile())

	require.True(t, result.Success)
	assert.Equal(t, entities.SourceDefaultFallback, result.Source)
}

func TestRecommend_SkipsAITierUnderDeadlinePressure(t *testing.T) {
	generative := &stubGenerative{rec: aiRecommendation()}
	engine := newTestEngine(engineOptions{
		generative: generative,
		cfg:        testEngineConfig(),
		aiBudget:   time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result := engine.Recommend(ctx, testProfile())

	assert.Equal(t, entities.SourceDefaultFallback, result.Source)
	assert.Equal(t, 0, generative.calls)
}

func TestRecommend_InadequateTierResultsTriggerFallback(t *testing.T) {
	// One catalog entry cannot satisfy the minimum result count.
	engine := newTestEngine(engineOptions{
		universities: testUniversities()[:1],
		cfg:          testEngineConfig(),
	})

	result := engine.Recommend(context.Background(), testProfile())

	assert.Equal(t, entities.SourceDefaultFallback, result.Source)
}

func TestRecommend_ServesEmergencyFallbackWhenEverythingIsInadequate(t *testing.T) {
	cfg := testEngineConfig()
	cfg.MinResults = 10
	engine := newTestEngine(engineOptions{
		universities: testUniversities(),
		cfg:          cfg,
	})

	result := engine.Recommend(context.Background(), testProfile())

	require.True(t, result.Success)
	assert.Equal(t, entities.SourceEmergencyFallback, result.Source)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.NeededAccommodations)
}

func TestRecommend_CachesAdequateResults(t *testing.T) {
	cache := newMapCache()
	engine := newTestEngine(engineOptions{
		universities: testUniversities(),
		cache:        cache,
		cfg:          testEngineConfig(),
	})

	first := engine.Recommend(context.Background(), testProfile())
	second := engine.Recommend(context.Background(), testProfile())

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestRecommend_CacheKeyIgnoresFieldCasingDifferences(t *testing.T) {
	cache := newMapCache()
	engine := newTestEngine(engineOptions{
		universities: testUniversities(),
		cache:        cache,
		cfg:          testEngineConfig(),
	})

	profile := testProfile()
	engine.Recommend(context.Background(), profile)

	shouted := profile
	shouted.Severity = "MODERATE"
	engine.Recommend(context.Background(), shouted)

	assert.Equal(t, 1, cache.hits)
}

func TestRecommend_IsDeterministicForSameProfile(t *testing.T) {
	engine := newTestEngine(engineOptions{
		universities: testUniversities(),
		cfg:          testEngineConfig(),
	})

	first := engine.Recommend(context.Background(), testProfile())
	second := engine.Recommend(context.Background(), testProfile())

	assert.Equal(t, first, second)
}

func TestAIRecommend_ErrorsWhenNotConfigured(t *testing.T) {
	engine := newTestEngine(engineOptions{cfg: testEngineConfig()})

	_, err := engine.AIRecommend(context.Background(), testProfile())

	assert.ErrorIs(t, err, providers.ErrGenerativeUnavailable)
}

func TestAIRecommend_ScoresAndCapsCandidates(t *testing.T) {
	rec := aiRecommendation()
	rec.Universities = append(rec.Universities, make([]entities.UniversityCandidate, 6)...)
	for i := 2; i < len(rec.Universities); i++ {
		rec.Universities[i].Name = fmt.Sprintf("Filler University %d", i)
	}
	engine := newTestEngine(engineOptions{
		generative: &stubGenerative{rec: rec},
		cfg:        testEngineConfig(),
	})

	result, err := engine.AIRecommend(context.Background(), testProfile())
	require.NoError(t, err)

	assert.Len(t, result.Recommendations, 5)
	assert.Greater(t, result.Recommendations[0].Score, 0.0)
}
