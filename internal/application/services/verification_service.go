package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/infrastructure/observability"
)

// VerificationService cross-checks the engine's answer against an
// independent AI evaluation. Both evaluations run concurrently; candidates
// confirmed by both are ranked first with high confidence, engine-only
// candidates keep medium confidence, AI-only candidates are appended with low
// confidence. Verification can only add information: when the AI evaluation
// fails, the engine's answer is returned unchanged apart from a summary
// recording that no AI opinion was obtained.
type VerificationService struct {
	engine *RecommendationService
}

// NewVerificationService creates a new verification service
func NewVerificationService(engine *RecommendationService) *VerificationService {
	return &VerificationService{engine: engine}
}

// Verify runs the deterministic tiers and the AI evaluation side by side and
// merges their answers. The baseline deliberately leaves the generative tier
// out, so the summary's ML side never counts an AI answer against itself.
func (s *VerificationService) Verify(ctx context.Context, profile entities.StudentProfile) *entities.RecommendationResult {
	ctx, span := observability.StartSpan(ctx, "recommendation.Verify")
	defer span.End()

	p := profile.Normalized()

	type aiOutcome struct {
		result *entities.RecommendationResult
		err    error
	}
	aiCh := make(chan aiOutcome, 1)
	go func() {
		result, err := s.engine.recommendAI(ctx, p)
		aiCh <- aiOutcome{result: result, err: err}
	}()

	base := s.engine.cascade(ctx, p, false)

	ai := <-aiCh
	if ai.err != nil {
		log.Warn().Err(ai.err).Msg("AI verification unavailable, serving unverified result")
		base.VerificationSummary = &entities.VerificationSummary{
			MLCount:       len(base.Recommendations),
			AICount:       0,
			OverlapCount:  0,
			TotalVerified: len(base.Recommendations),
		}
		return base
	}

	return merge(base, ai.result)
}

// merge combines the engine and AI answers into a verified result.
func merge(base, ai *entities.RecommendationResult) *entities.RecommendationResult {
	aiByName := make(map[string]entities.UniversityCandidate, len(ai.Recommendations))
	for _, c := range ai.Recommendations {
		aiByName[candidateKey(c.Name)] = c
	}
	baseNames := make(map[string]struct{}, len(base.Recommendations))
	for _, c := range base.Recommendations {
		baseNames[candidateKey(c.Name)] = struct{}{}
	}

	var confirmed, engineOnly, aiOnly []entities.UniversityCandidate
	for _, c := range base.Recommendations {
		if aiMatch, ok := aiByName[candidateKey(c.Name)]; ok {
			c.Confidence = entities.ConfidenceHigh
			if c.Reason == "" {
				c.Reason = aiMatch.Reason
			}
			confirmed = append(confirmed, c)
		} else {
			c.Confidence = entities.ConfidenceMedium
			engineOnly = append(engineOnly, c)
		}
	}
	for _, c := range ai.Recommendations {
		if _, ok := baseNames[candidateKey(c.Name)]; !ok {
			c.Confidence = entities.ConfidenceLow
			aiOnly = append(aiOnly, c)
		}
	}

	merged := make([]entities.UniversityCandidate, 0, len(confirmed)+len(engineOnly)+len(aiOnly))
	merged = append(merged, confirmed...)
	merged = append(merged, engineOnly...)
	merged = append(merged, aiOnly...)

	return &entities.RecommendationResult{
		Success:              true,
		Source:               entities.SourceVerified,
		NeededAccommodations: mergeNeeded(base.NeededAccommodations, ai.NeededAccommodations),
		Recommendations:      merged,
		VerificationSummary: &entities.VerificationSummary{
			MLCount:       len(base.Recommendations),
			AICount:       len(ai.Recommendations),
			OverlapCount:  len(confirmed),
			TotalVerified: len(merged),
		},
	}
}

func mergeNeeded(base, ai []string) []string {
	seen := make(map[string]struct{}, len(base)+len(ai))
	out := make([]string, 0, len(base)+len(ai))
	for _, label := range append(append([]string{}, base...), ai...) {
		key := candidateKey(label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	return out
}

func candidateKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
