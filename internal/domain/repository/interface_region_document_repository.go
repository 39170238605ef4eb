package repository

import (
	"context"

	"TravelSpot-App/internal/domain/model"
)

// RegionDocumentRepository はリビジョン付きで地域ドキュメントを読み書きする
type RegionDocumentRepository interface {
	// FetchRegion はドキュメントと読み取り時点のリビジョンを返す。存在しなければErrNotFound
	FetchRegion(ctx context.Context, path string) (*model.RegionDocument, string, error)
	// WriteRegion は読み取り時のリビジョンを添えて書き込み、新しいリビジョンを返す。古ければErrConflict
	WriteRegion(ctx context.Context, path string, doc *model.RegionDocument, revision, message string) (string, error)
}
