package services

import (
	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// DefaultRecommendationService serves curated recommendations when neither
// the model nor the AI tier can. The data is a small, hand-maintained list of
// institutions with strong accessibility services, so the answer is useful
// even with every upstream dependency down.
type DefaultRecommendationService struct {
	scorer     *UniversityScorer
	vocabulary *entities.Vocabulary
}

// NewDefaultRecommendationService creates a new default recommendation service
func NewDefaultRecommendationService(scorer *UniversityScorer, vocabulary *entities.Vocabulary) *DefaultRecommendationService {
	return &DefaultRecommendationService{scorer: scorer, vocabulary: vocabulary}
}

// curatedUniversities is the built-in fallback catalog.
func curatedUniversities() []*entities.University {
	return []*entities.University{
		{
			Name:                    "University of Toronto",
			Location:                "Toronto, ON",
			AccessibilityRating:     4.5,
			DisabilitySupportRating: 4.8,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Note-Taking Services",
				"Counseling Services",
				"Accessible Transportation",
			},
			IsActive: true,
		},
		{
			Name:                    "University of British Columbia",
			Location:                "Vancouver, BC",
			AccessibilityRating:     4.3,
			DisabilitySupportRating: 4.6,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Assistive Technology",
				"Accessible Housing",
				"Counseling Services",
			},
			IsActive: true,
		},
		{
			Name:                    "McGill University",
			Location:                "Montreal, QC",
			AccessibilityRating:     4.2,
			DisabilitySupportRating: 4.4,
			AvailableAccommodations: []string{
				"Extended Test Time",
				"Note-Taking Services",
				"Priority Registration",
			},
			IsActive: true,
		},
	}
}

// defaultAccommodations derives a conservative needs list from the profile's
// declared conditions and severity. The result is filtered against the
// vocabulary so curated data can never emit a label the system does not know;
// if everything is filtered out, the first vocabulary label stands in so the
// needs list is never empty.
func (s *DefaultRecommendationService) defaultAccommodations(profile entities.StudentProfile) []string {
	var needed []string
	if profile.HasMentalHealthCondition() {
		needed = append(needed, "Counseling Services", "Extended Test Time", "Note-Taking Services")
	}
	if profile.HasPhysicalHealthCondition() {
		needed = append(needed, "Accessible Transportation", "Priority Registration")
	}
	if profile.Severity == entities.SeveritySevere {
		needed = append(needed, "Reduced Course Load")
	}
	if len(needed) == 0 {
		needed = append(needed, "Counseling Services")
	}

	needed = s.vocabulary.Filter(needed)
	if len(needed) == 0 && s.vocabulary.Len() > 0 {
		needed = append(needed, s.vocabulary.Label(0))
	}
	return needed
}

// Recommend builds a result from the curated catalog. It never fails.
func (s *DefaultRecommendationService) Recommend(profile entities.StudentProfile) *entities.RecommendationResult {
	needed := s.defaultAccommodations(profile)
	return &entities.RecommendationResult{
		Success:              true,
		Source:               entities.SourceDefaultFallback,
		NeededAccommodations: needed,
		Recommendations:      s.scorer.Rank(curatedUniversities(), needed, 0),
	}
}

// Emergency is the terminal tier: a single generic recommendation that cannot
// depend on any data at all.
func (s *DefaultRecommendationService) Emergency(profile entities.StudentProfile) *entities.RecommendationResult {
	return &entities.RecommendationResult{
		Success:              true,
		Source:               entities.SourceEmergencyFallback,
		NeededAccommodations: s.defaultAccommodations(profile),
		Recommendations: []entities.UniversityCandidate{
			{
				Name:   "University of Toronto",
				Reason: "Widely available accessibility services; contact the accessibility office directly to discuss your needs.",
			},
		},
	}
}
