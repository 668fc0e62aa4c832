package evaluation

import (
	"time"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// GoldenProfile represents a labeled student profile with expected outcomes.
type GoldenProfile struct {
	ID                     string                  `json:"id"`
	Profile                entities.StudentProfile `json:"profile"`
	ExpectedAccommodations []string                `json:"expected_accommodations"`
	ExpectedUniversities   []string                `json:"expected_universities"`
	Difficulty             string                  `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single profile.
type EvalResult struct {
	ProfileID           string
	Source              entities.Source
	AccommodationRecall float64
	UniversityMRR       float64
	ResultCount         int
	Latency             time.Duration
}

// EvalSummary holds aggregate metrics across all golden profiles.
type EvalSummary struct {
	TotalProfiles          int
	AvgAccommodationRecall float64
	AvgUniversityMRR       float64
	AvgLatency             time.Duration
	ProfilesWithResults    int // profiles that received at least 1 recommendation
	GuardrailViolations    int
	BySource               map[entities.Source]*SourceSummary
}

// SourceSummary holds metrics grouped by the tier that answered.
type SourceSummary struct {
	Count                  int
	AvgAccommodationRecall float64
	AvgUniversityMRR       float64
}
