package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_EmptyUntilReload(t *testing.T) {
	catalog := NewCatalogService(&stubRepository{universities: testUniversities()})

	assert.Nil(t, catalog.Universities())
	assert.Equal(t, 0, catalog.Size())
}

func TestCatalogService_Reload(t *testing.T) {
	catalog := NewCatalogService(&stubRepository{universities: testUniversities()})

	require.NoError(t, catalog.Reload(context.Background()))

	assert.Equal(t, 3, catalog.Size())
	assert.Equal(t, []string{
		"University of Toronto",
		"University of British Columbia",
		"McGill University",
	}, catalog.Names())
}

func TestCatalogService_ReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	repo := &stubRepository{universities: testUniversities()}
	catalog := NewCatalogService(repo)
	require.NoError(t, catalog.Reload(context.Background()))

	repo.err = fmt.Errorf("database unavailable")
	err := catalog.Reload(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 3, catalog.Size())
}
