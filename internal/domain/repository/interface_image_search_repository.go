package repository

import (
	"context"

	"TravelSpot-App/internal/domain/model"
)

type ImageSearchRepository interface {
	SearchImages(ctx context.Context, query string, maxResults int) ([]model.ImageSearchResult, error)
}
