package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackCatalogResolve(t *testing.T) {
	c := NewTrackCatalog("files")

	path, err := c.Resolve("govno")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("files", "govnominus.mp3"), path)

	_, err = c.Resolve("polka")
	assert.ErrorIs(t, err, ErrUnknownTrack)
}

func TestTrackCatalogDefault(t *testing.T) {
	c := NewTrackCatalog("files")

	assert.True(t, c.Has(DefaultTrack))

	path, err := c.Resolve(DefaultTrack)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("files", "krovominus.mp3"), path)
}

func TestTrackCatalogSelectors(t *testing.T) {
	c := NewTrackCatalog("files")

	selectors := c.Selectors()
	assert.Equal(t, []string{"krovo", "govno", "biografia"}, selectors)

	for _, sel := range selectors {
		assert.True(t, c.Has(sel))
		assert.NotEmpty(t, c.Title(sel))
	}
}

func TestTrackCatalogTitleFallback(t *testing.T) {
	c := NewTrackCatalog("files")

	assert.Equal(t, "polka", c.Title("polka"))
}
