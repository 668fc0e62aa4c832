package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
	"github.com/unify-edu/unify-backend/pkg/config"
)

// RecommendationService runs the tiered recommendation cascade. Tiers are
// tried in order of decreasing quality; a tier's answer is served only when
// it is adequate (successful with at least MinResults recommendations), and
// the terminal emergency tier guarantees a caller always gets a well-formed
// result. Tier failures degrade the answer, never the request.
type RecommendationService struct {
	encoder    *ProfileEncoder
	predictor  *AccommodationPredictor
	scorer     *UniversityScorer
	catalog    *CatalogService
	vocabulary *entities.Vocabulary
	generative providers.GenerativeRecommender
	defaults   *DefaultRecommendationService
	cache      providers.CacheProvider
	metrics    *observability.Metrics
	cfg        config.EngineConfig
	aiBudget   time.Duration
}

// NewRecommendationService creates the cascade. The generative recommender,
// cache and metrics are optional; when absent the corresponding tier or
// concern is skipped.
func NewRecommendationService(
	encoder *ProfileEncoder,
	predictor *AccommodationPredictor,
	scorer *UniversityScorer,
	catalog *CatalogService,
	vocabulary *entities.Vocabulary,
	generative providers.GenerativeRecommender,
	defaults *DefaultRecommendationService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	cfg config.EngineConfig,
	aiBudget time.Duration,
) *RecommendationService {
	return &RecommendationService{
		encoder:    encoder,
		predictor:  predictor,
		scorer:     scorer,
		catalog:    catalog,
		vocabulary: vocabulary,
		generative: generative,
		defaults:   defaults,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
		aiBudget:   aiBudget,
	}
}

// Vocabulary returns the accommodation vocabulary the engine serves.
func (s *RecommendationService) Vocabulary() *entities.Vocabulary {
	return s.vocabulary
}

// Recommend runs the full cascade for a profile. The profile must already
// have passed boundary validation.
func (s *RecommendationService) Recommend(ctx context.Context, profile entities.StudentProfile) *entities.RecommendationResult {
	ctx, span := observability.StartSpan(ctx, "recommendation.Recommend")
	defer span.End()

	p := profile.Normalized()

	if cached := s.cachedResult(ctx, p); cached != nil {
		return cached
	}

	return s.cascade(ctx, p, true)
}

// cascade walks the tiers in priority order. With includeAI false the
// generative tier is left out entirely, which gives verification a baseline
// that cannot itself be an AI answer.
func (s *RecommendationService) cascade(ctx context.Context, p entities.StudentProfile, includeAI bool) *entities.RecommendationResult {
	tiers := []struct {
		source entities.Source
		run    func(context.Context, entities.StudentProfile) (*entities.RecommendationResult, error)
	}{
		{entities.SourceMLPipeline, s.recommendML},
		{entities.SourceGeminiAI, s.recommendAI},
		{entities.SourceDefaultFallback, func(_ context.Context, p entities.StudentProfile) (*entities.RecommendationResult, error) {
			return s.defaults.Recommend(p), nil
		}},
	}

	for _, tier := range tiers {
		if tier.source == entities.SourceGeminiAI && (!includeAI || s.skipAITier(ctx)) {
			continue
		}

		result, err := tier.run(ctx, p)
		adequate := err == nil && s.adequate(result)
		if s.metrics != nil {
			observability.RecordTierAttempt(ctx, s.metrics, string(tier.source), adequate)
		}

		if err != nil {
			log.Warn().
				Err(err).
				Str("tier", string(tier.source)).
				Msg("Recommendation tier failed, falling back")
			continue
		}
		if !adequate {
			log.Warn().
				Str("tier", string(tier.source)).
				Int("results", len(result.Recommendations)).
				Int("min_results", s.cfg.MinResults).
				Msg("Recommendation tier returned inadequate results, falling back")
			continue
		}

		s.storeResult(ctx, p, result)
		return result
	}

	if s.metrics != nil {
		observability.RecordTierAttempt(ctx, s.metrics, string(entities.SourceEmergencyFallback), true)
	}
	log.Error().Msg("All recommendation tiers exhausted, serving emergency fallback")
	return s.defaults.Emergency(p)
}

// AIRecommend runs only the generative tier, for callers that explicitly ask
// for an AI answer.
func (s *RecommendationService) AIRecommend(ctx context.Context, profile entities.StudentProfile) (*entities.RecommendationResult, error) {
	return s.recommendAI(ctx, profile.Normalized())
}

// adequate applies the quality gate: a tier answer is served only when it
// succeeded and carries enough recommendations to be useful.
func (s *RecommendationService) adequate(result *entities.RecommendationResult) bool {
	return result != nil && result.Success && len(result.Recommendations) >= s.cfg.MinResults
}

// skipAITier reports whether the generative tier should be skipped, either
// because no recommender is configured or because the request deadline no
// longer leaves room for an AI round trip.
func (s *RecommendationService) skipAITier(ctx context.Context) bool {
	if s.generative == nil {
		return true
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < s.aiBudget {
		log.Warn().
			Dur("remaining", time.Until(deadline)).
			Dur("ai_budget", s.aiBudget).
			Msg("Skipping AI tier under deadline pressure")
		return true
	}
	return false
}

func (s *RecommendationService) recommendML(ctx context.Context, profile entities.StudentProfile) (*entities.RecommendationResult, error) {
	universities := s.catalog.Universities()
	if len(universities) == 0 {
		return nil, fmt.Errorf("university catalog is empty")
	}

	features := s.encoder.Encode(profile)
	needed := s.predictor.Predict(features)

	return &entities.RecommendationResult{
		Success:              true,
		Source:               entities.SourceMLPipeline,
		NeededAccommodations: needed,
		Recommendations:      s.scorer.Rank(universities, needed, s.cfg.MaxRecommendations),
	}, nil
}

func (s *RecommendationService) recommendAI(ctx context.Context, profile entities.StudentProfile) (*entities.RecommendationResult, error) {
	if s.generative == nil {
		return nil, providers.ErrGenerativeUnavailable
	}

	constraints := providers.GenerativeConstraints{
		AccommodationVocabulary: s.vocabulary.Labels(),
		UniversityNames:         s.catalog.Names(),
	}

	rec, err := s.generative.Recommend(ctx, profile, constraints)
	if err != nil {
		return nil, err
	}

	// Generative output is untrusted: accommodation names outside the
	// vocabulary are dropped before they can reach a result.
	needed := s.vocabulary.Filter(rec.NeededAccommodations)

	candidates := rec.Universities
	if s.cfg.MaxRecommendations > 0 && len(candidates) > s.cfg.MaxRecommendations {
		candidates = candidates[:s.cfg.MaxRecommendations]
	}
	for i := range candidates {
		candidates[i].AvailableAccommodations = s.vocabulary.Filter(candidates[i].AvailableAccommodations)
		candidates[i].Score = s.scorer.Score(
			candidates[i].AccessibilityRating,
			candidates[i].DisabilitySupportRating,
			candidates[i].AvailableAccommodations,
			needed,
		)
	}

	return &entities.RecommendationResult{
		Success:              true,
		Source:               entities.SourceGeminiAI,
		NeededAccommodations: needed,
		Recommendations:      candidates,
	}, nil
}

func (s *RecommendationService) cacheKey(profile entities.StudentProfile) string {
	data, err := json.Marshal(profile)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("recommendation:%x", sha256.Sum256(data))
}

func (s *RecommendationService) cachedResult(ctx context.Context, profile entities.StudentProfile) *entities.RecommendationResult {
	if s.cache == nil {
		return nil
	}
	key := s.cacheKey(profile)
	if key == "" {
		return nil
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, key)
		}
		return nil
	}

	var result entities.RecommendationResult
	if err := json.Unmarshal(data, &result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding malformed cached recommendation")
		return nil
	}

	if s.metrics != nil {
		observability.RecordCacheHit(ctx, s.metrics, key)
	}
	return &result
}

func (s *RecommendationService) storeResult(ctx context.Context, profile entities.StudentProfile, result *entities.RecommendationResult) {
	if s.cache == nil {
		return
	}
	key := s.cacheKey(profile)
	if key == "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cfg.CacheTTLSeconds); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache recommendation result")
	}
}
