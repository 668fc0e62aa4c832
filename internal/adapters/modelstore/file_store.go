package modelstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/unify-edu/unify-backend/internal/domain/entities"
	"github.com/unify-edu/unify-backend/internal/domain/providers"
)

// FileStore loads a trained accommodation model from a JSON artifact on disk.
// The artifact is produced offline by the training pipeline and checked for
// internal consistency before it is served.
type FileStore struct {
	path string
}

// NewFileStore creates a model store backed by a JSON file
func NewFileStore(path string) providers.ModelStore {
	return &FileStore{path: path}
}

// Load reads and validates the model artifact
func (s *FileStore) Load(ctx context.Context) (*entities.ModelArtifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", s.path, err)
	}

	var artifact entities.ModelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", s.path, err)
	}

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", s.path, err)
	}

	log.Info().
		Str("path", s.path).
		Str("version", artifact.Version).
		Int("labels", len(artifact.Labels)).
		Msg("Loaded accommodation model artifact")

	return &artifact, nil
}
