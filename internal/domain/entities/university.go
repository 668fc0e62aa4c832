package entities

import "time"

// University represents one institution in the catalog. Records are loaded
// once at startup (or on an explicit reload) and are read-only during
// serving.
type University struct {
	ID                      string    `json:"id" db:"id"`
	Name                    string    `json:"name" db:"name"`
	Location                string    `json:"location" db:"location"`
	AccessibilityRating     float64   `json:"accessibility_rating" db:"accessibility_rating"`
	DisabilitySupportRating float64   `json:"disability_support_rating" db:"disability_support_rating"`
	AvailableAccommodations []string  `json:"available_accommodations" db:"-"`
	IsActive                bool      `json:"is_active" db:"is_active"`
	CreatedAt               time.Time `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time `json:"updated_at" db:"updated_at"`
}

// HasAccommodation reports whether the university offers the given
// accommodation label.
func (u *University) HasAccommodation(label string) bool {
	for _, a := range u.AvailableAccommodations {
		if a == label {
			return true
		}
	}
	return false
}

// Confidence marks how strongly a recommendation is supported after
// verification. Candidates confirmed by both the ML and AI evaluations are
// "high"; ML-only candidates are "medium"; AI-only candidates are "low".
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// UniversityCandidate is one ranked entry in a recommendation result.
type UniversityCandidate struct {
	Name                    string     `json:"name"`
	Score                   float64    `json:"score"`
	AccessibilityRating     float64    `json:"accessibility_rating"`
	DisabilitySupportRating float64    `json:"disability_support_rating"`
	AvailableAccommodations []string   `json:"available_accommodations"`
	Location                string     `json:"location"`
	Reason                  string     `json:"reason,omitempty"`
	Confidence              Confidence `json:"confidence,omitempty"`
}
