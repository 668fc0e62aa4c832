package repositories

import (
	"context"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
)

// UniversityRepository defines the interface for university catalog operations
type UniversityRepository interface {
	// Create creates a new university record
	Create(ctx context.Context, university *entities.University) error

	// GetByName retrieves a university by its unique name
	GetByName(ctx context.Context, name string) (*entities.University, error)

	// ListActive retrieves every active university in the catalog
	ListActive(ctx context.Context) ([]*entities.University, error)

	// Update updates a university record
	Update(ctx context.Context, university *entities.University) error
}
