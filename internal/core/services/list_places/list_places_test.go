package listplaces

import (
	"context"
	"testing"
	"time"
	"wonderchain/internal/core/domain/logging"
	"wonderchain/internal/core/domain/place"

	"github.com/stretchr/testify/require"
)

func TestOnlyPublishedPlacesListed(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()
	repository := place.NewFakeRepository()
	now := time.Date(2025, 5, 10, 8, 30, 0, 0, time.UTC)

	for ix, slug := range []place.Slug{"gyeongbokgung", "bukchon", "namsan-tower"} {
		status := place.StatusPublished
		if slug == "bukchon" {
			status = place.StatusDraft
		}
		_, err := repository.Create(ctx, place.CreateInput{
			Slug:        slug,
			Name:        string(slug),
			Coordinates: place.Coordinates{Latitude: 37.5, Longitude: 126.9},
			Status:      status,
			CreatedAt:   now.Add(time.Duration(ix) * time.Minute),
		})
		assert.NoError(err)
	}

	result, err := New(logging.NewFakeLogger(), repository).Run(ctx, Input{})

	assert.NoError(err)
	assert.Len(result.Places, 2)
	assert.Equal(place.Slug("namsan-tower"), result.Places[0].Slug)
	assert.Equal(place.Slug("gyeongbokgung"), result.Places[1].Slug)
}

func TestStorageError(t *testing.T) {
	repository := place.NewFakeRepository()
	repository.ReturnError = true
	logger := logging.NewFakeLogger()

	_, err := New(logger, repository).Run(context.Background(), Input{})

	require.Error(t, err)
	require.True(t, logger.HasRecord(logging.ERROR, "Could not list published places."))
}
