package modelstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validArtifact = `{
	"version": "2024-06-01",
	"labels": ["Extended Test Time", "Note-Taking Services"],
	"mental_health_encoder": {"values": {"adhd": 0, "anxiety": 1, "none": 2}, "unknown": 3},
	"physical_health_encoder": {"values": {"none": 0, "mobility impairment": 1}, "unknown": 2},
	"courses_encoder": {"values": {"computer science": 0}, "unknown": 1},
	"weights": [
		[0.5, -0.2, 0.1, 0.9, 0.3],
		[0.1, 0.4, -0.3, 0.2, 0.7]
	],
	"bias": [-0.1, 0.05]
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileStore_Load(t *testing.T) {
	store := NewFileStore(writeArtifact(t, validArtifact))

	artifact, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", artifact.Version)
	assert.Len(t, artifact.Labels, 2)
	assert.Equal(t, 0, artifact.MentalHealth.Encode("adhd"))
	assert.Equal(t, 3, artifact.MentalHealth.Encode("something new"))
}

func TestFileStore_Load_MissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_Load_MalformedJSON(t *testing.T) {
	store := NewFileStore(writeArtifact(t, "not json"))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStore_Load_InconsistentArtifact(t *testing.T) {
	// Two labels but only one weight row
	inconsistent := `{
		"version": "bad",
		"labels": ["A", "B"],
		"mental_health_encoder": {"values": {"none": 0}, "unknown": 1},
		"physical_health_encoder": {"values": {"none": 0}, "unknown": 1},
		"courses_encoder": {"values": {"none": 0}, "unknown": 1},
		"weights": [[0.1, 0.2, 0.3, 0.4, 0.5]],
		"bias": [0.0, 0.0]
	}`
	store := NewFileStore(writeArtifact(t, inconsistent))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}
