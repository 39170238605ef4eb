package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelSpot-App/internal/config"
	"TravelSpot-App/internal/domain/apperror"
)

func TestRegionCatalog(t *testing.T) {
	catalog := NewRegionCatalog([]config.RegionFile{
		{Name: "Tokyo", Path: "data/tokyo.json"},
		{Name: "Osaka", Path: "data/osaka.json"},
	})

	assert.Equal(t, []string{"Tokyo", "Osaka"}, catalog.Names())

	path, err := catalog.PathOf("Osaka")
	require.NoError(t, err)
	assert.Equal(t, "data/osaka.json", path)

	_, err = catalog.PathOf("Kyoto")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	all, err := catalog.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo", "Osaka"}, all)

	one, err := catalog.Resolve("Tokyo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tokyo"}, one)

	_, err = catalog.Resolve("Kyoto")
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
