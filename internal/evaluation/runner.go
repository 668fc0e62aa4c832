package evaluation

import (
	"context"
	"time"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// Recommender is the slice of the engine the runner needs.
type Recommender interface {
	Recommend(ctx context.Context, profile entities.StudentProfile) *entities.RecommendationResult
}

// Runner runs evaluation across a set of golden profiles.
type Runner struct {
	engine     Recommender
	guardrails *Guardrails
}

func NewRunner(engine Recommender, guardrails *Guardrails) *Runner {
	return &Runner{engine: engine, guardrails: guardrails}
}

func (r *Runner) Run(ctx context.Context, profiles []GoldenProfile) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalProfiles: len(profiles),
		BySource:      make(map[entities.Source]*SourceSummary),
	}

	for _, gp := range profiles {
		start := time.Now()
		res := r.engine.Recommend(ctx, gp.Profile)
		duration := time.Since(start)

		if r.guardrails != nil {
			if err := r.guardrails.Check(res); err != nil {
				summary.GuardrailViolations++
			}
		}

		result := EvalResult{
			ProfileID:           gp.ID,
			Source:              res.Source,
			AccommodationRecall: RecallAtK(gp.ExpectedAccommodations, res.NeededAccommodations, 10),
			UniversityMRR:       MRRAtK(gp.ExpectedUniversities, res.UniversityNames(), 10),
			ResultCount:         len(res.Recommendations),
			Latency:             duration,
		}

		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.AvgAccommodationRecall += res.AccommodationRecall
	s.AvgUniversityMRR += res.UniversityMRR
	s.AvgLatency += res.Latency
	if res.ResultCount > 0 {
		s.ProfilesWithResults++
	}

	if _, ok := s.BySource[res.Source]; !ok {
		s.BySource[res.Source] = &SourceSummary{}
	}
	ss := s.BySource[res.Source]
	ss.Count++
	ss.AvgAccommodationRecall += res.AccommodationRecall
	ss.AvgUniversityMRR += res.UniversityMRR
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalProfiles > 0 {
		n := float64(s.TotalProfiles)
		s.AvgAccommodationRecall /= n
		s.AvgUniversityMRR /= n
		s.AvgLatency /= time.Duration(s.TotalProfiles)
	}

	for _, ss := range s.BySource {
		if ss.Count > 0 {
			n := float64(ss.Count)
			ss.AvgAccommodationRecall /= n
			ss.AvgUniversityMRR /= n
		}
	}
}
