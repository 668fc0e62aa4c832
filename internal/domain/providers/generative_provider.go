package providers

import (
	"context"
	"errors"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// ErrGenerativeUnavailable indicates the generative provider is not
// configured (e.g. missing API key) rather than transiently failing.
var ErrGenerativeUnavailable = errors.New("generative provider unavailable")

// GenerativeConstraints bound what the generative provider may talk about.
// The vocabulary and university names are passed into the prompt so the
// model stays inside the catalog, and its output is still filtered against
// them afterwards.
type GenerativeConstraints struct {
	AccommodationVocabulary []string
	UniversityNames         []string
}

// GenerativeRecommendation is the parsed, schema-validated payload returned
// by the generative provider. Labels inside it are untrusted until filtered
// against the vocabulary.
type GenerativeRecommendation struct {
	NeededAccommodations []string
	Universities         []entities.UniversityCandidate
	Model                string
}

// GenerativeRecommender defines a provider that can produce a second-opinion
// recommendation from a student profile.
type GenerativeRecommender interface {
	Recommend(ctx context.Context, profile entities.StudentProfile, constraints GenerativeConstraints) (*GenerativeRecommendation, error)
}
