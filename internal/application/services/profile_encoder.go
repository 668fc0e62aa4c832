package services

import (
	"strings"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// ProfileEncoder turns a student profile into the fixed-length feature vector
// the accommodation model was trained on. Encoding is deterministic: the same
// profile always yields the same vector.
type ProfileEncoder struct {
	model *entities.ModelArtifact
}

// NewProfileEncoder creates a new profile encoder
func NewProfileEncoder(model *entities.ModelArtifact) *ProfileEncoder {
	return &ProfileEncoder{model: model}
}

// Encode builds the feature vector for a profile. Categorical fields are
// matched case-insensitively against the training-time encoders; values the
// encoders never saw map to their unknown bucket. GPA is clipped to [0, 4]
// and rescaled to [0, 1].
func (e *ProfileEncoder) Encode(profile entities.StudentProfile) []float64 {
	p := profile.Normalized()

	features := make([]float64, entities.FeatureCount)
	features[0] = float64(e.model.MentalHealth.Encode(normalizeCategory(p.MentalHealth)))
	features[1] = float64(e.model.PhysicalHealth.Encode(normalizeCategory(p.PhysicalHealth)))
	features[2] = float64(e.model.Courses.Encode(normalizeCategory(p.Courses)))
	features[3] = clampGPA(p.GPA) / 4.0
	features[4] = float64(p.Severity.Ordinal())
	return features
}

func normalizeCategory(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func clampGPA(gpa float64) float64 {
	if gpa < 0 {
		return 0
	}
	if gpa > 4 {
		return 4
	}
	return gpa
}
