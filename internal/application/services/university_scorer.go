package services

import (
	"sort"
	"strings"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// ratingScale is the upper bound of the rating axis. Coverage is scaled to
// it so both score terms share the same [0,5] range.
const ratingScale = 5.0

// UniversityScorer ranks universities against a student's accommodation
// needs. The score blends the institution's ratings with the fraction of
// needed accommodations it offers:
//
//	score = ratingWeight * (accessibility + support) / 2 + overlapWeight * coverage * ratingScale
//
// Scoring is deterministic: equal scores are broken by support rating,
// then accessibility rating, then name, so repeated requests rank
// identically.
type UniversityScorer struct {
	ratingWeight  float64
	overlapWeight float64
}

// NewUniversityScorer creates a new university scorer
func NewUniversityScorer(ratingWeight, overlapWeight float64) *UniversityScorer {
	return &UniversityScorer{
		ratingWeight:  ratingWeight,
		overlapWeight: overlapWeight,
	}
}

// Score computes the blended score for one university. An empty needs list
// contributes no coverage, so such profiles rank on ratings alone.
func (s *UniversityScorer) Score(accessibilityRating, supportRating float64, available, needed []string) float64 {
	ratingAvg := (accessibilityRating + supportRating) / 2.0
	return s.ratingWeight*ratingAvg + s.overlapWeight*coverage(available, needed)*ratingScale
}

// Rank scores and orders the catalog against the needed accommodations,
// returning at most limit candidates.
func (s *UniversityScorer) Rank(universities []*entities.University, needed []string, limit int) []entities.UniversityCandidate {
	candidates := make([]entities.UniversityCandidate, 0, len(universities))
	for _, u := range universities {
		candidates = append(candidates, entities.UniversityCandidate{
			Name:                    u.Name,
			Score:                   s.Score(u.AccessibilityRating, u.DisabilitySupportRating, u.AvailableAccommodations, needed),
			AccessibilityRating:     u.AccessibilityRating,
			DisabilitySupportRating: u.DisabilitySupportRating,
			AvailableAccommodations: u.AvailableAccommodations,
			Location:                u.Location,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		if candidates[a].DisabilitySupportRating != candidates[b].DisabilitySupportRating {
			return candidates[a].DisabilitySupportRating > candidates[b].DisabilitySupportRating
		}
		if candidates[a].AccessibilityRating != candidates[b].AccessibilityRating {
			return candidates[a].AccessibilityRating > candidates[b].AccessibilityRating
		}
		return candidates[a].Name < candidates[b].Name
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// coverage returns the fraction of needed accommodations the university
// offers. Matching is case-insensitive.
func coverage(available, needed []string) float64 {
	if len(needed) == 0 {
		return 0.0
	}

	offered := make(map[string]struct{}, len(available))
	for _, a := range available {
		offered[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}

	matched := 0
	for _, n := range needed {
		if _, ok := offered[strings.ToLower(strings.TrimSpace(n))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(needed))
}
