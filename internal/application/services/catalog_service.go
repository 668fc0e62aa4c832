package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/repositories"
)

// CatalogService holds the in-memory university catalog the engine scores
// against. The catalog is loaded as an immutable snapshot and swapped
// atomically on reload, so readers never see a partially updated list.
type CatalogService struct {
	repo     repositories.UniversityRepository
	snapshot atomic.Pointer[catalogSnapshot]
}

type catalogSnapshot struct {
	universities []*entities.University
	names        []string
}

// NewCatalogService creates a catalog service. The catalog is empty until
// the first Reload.
func NewCatalogService(repo repositories.UniversityRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Reload fetches the active universities and swaps in a fresh snapshot. On
// error the previous snapshot stays in place.
func (s *CatalogService) Reload(ctx context.Context) error {
	universities, err := s.repo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload university catalog: %w", err)
	}

	names := make([]string, len(universities))
	for i, u := range universities {
		names[i] = u.Name
	}

	s.snapshot.Store(&catalogSnapshot{
		universities: universities,
		names:        names,
	})

	log.Info().Int("universities", len(universities)).Msg("University catalog reloaded")
	return nil
}

// Universities returns the current snapshot. Callers must treat the slice as
// read-only.
func (s *CatalogService) Universities() []*entities.University {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.universities
}

// Names returns the university names in the current snapshot.
func (s *CatalogService) Names() []string {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil
	}
	return snap.names
}

// Size returns the number of universities in the current snapshot.
func (s *CatalogService) Size() int {
	snap := s.snapshot.Load()
	if snap == nil {
		return 0
	}
	return len(snap.universities)
}
