package providers

import (
	"context"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// ModelStore defines a provider that supplies the trained model artifact.
// A store that cannot produce an artifact is a fatal startup condition, not
// a per-request fallback.
type ModelStore interface {
	Load(ctx context.Context) (*entities.ModelArtifact, error)
}
