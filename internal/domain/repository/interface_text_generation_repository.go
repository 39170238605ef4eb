package repository

import (
	"context"

	"TravelSpot-App/internal/domain/model"
)

// TextGenerationRepository はプロンプトからテキストを生成する
type TextGenerationRepository interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SpotInfoGenerationRepository はスポット名とURLからスポット情報の下書きを生成する
type SpotInfoGenerationRepository interface {
	GenerateSpotDraft(ctx context.Context, req *model.GenerateSpotInfoRequest) (*model.GeneratedSpotDraft, error)
}

// ImageRelevanceClassifier は画像がスポットに適切かを判定する。失敗時はfalse
type ImageRelevanceClassifier interface {
	IsAppropriate(ctx context.Context, imageURL, spotName string) bool
}

// ImageUpdateClassifier はスポット画像の更新が必要かを判定する。失敗時はfalse
type ImageUpdateClassifier interface {
	NeedsUpdate(ctx context.Context, spot *model.Spot) bool
}
