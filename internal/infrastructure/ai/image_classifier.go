package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// geminiImageClassifier はテキスト生成によるyes/no判定で画像を分類する
type geminiImageClassifier struct {
	generator repository.TextGenerationRepository
	logger    *zap.Logger
}

// NewImageRelevanceFilter は画像の関連性判定器を作成する
func NewImageRelevanceFilter(generator repository.TextGenerationRepository, logger *zap.Logger) repository.ImageRelevanceClassifier {
	return &geminiImageClassifier{generator: generator, logger: logger}
}

// NewImageUpdateHeuristic は画像更新要否の判定器を作成する
func NewImageUpdateHeuristic(generator repository.TextGenerationRepository, logger *zap.Logger) repository.ImageUpdateClassifier {
	return &geminiImageClassifier{generator: generator, logger: logger}
}

// IsAppropriate は画像がスポットの紹介に適切かを判定する。
// 失敗時は不適切な画像を採用しないようfalseを返す
func (g *geminiImageClassifier) IsAppropriate(ctx context.Context, imageURL, spotName string) bool {
	answer, err := g.generator.GenerateContent(ctx, buildRelevancePrompt(imageURL, spotName))
	if err != nil {
		g.logger.Warn("⚠️ 画像の関連性判定に失敗、不採用として扱います",
			zap.String("spot", spotName), zap.String("image", imageURL), zap.Error(err))
		return false
	}
	return normalizeYesNo(answer) == "yes"
}

// NeedsUpdate はスポット画像の更新が必要かを判定する。
// 画像なしは判定不要でtrue、判定失敗時は不要な更新を避けるためfalse
func (g *geminiImageClassifier) NeedsUpdate(ctx context.Context, spot *model.Spot) bool {
	if !spot.HasImage() {
		return true
	}

	answer, err := g.generator.GenerateContent(ctx, buildUpdatePrompt(spot))
	if err != nil {
		g.logger.Warn("⚠️ 画像更新要否の判定に失敗、更新不要として扱います",
			zap.String("spot", spot.Name), zap.Error(err))
		return false
	}
	return normalizeYesNo(answer) == "yes"
}

func buildRelevancePrompt(imageURL, spotName string) string {
	return fmt.Sprintf(`あなたは旅行ガイドの画像審査担当です。次の画像URLが観光スポット「%s」の紹介画像として適切か判定してください。

画像URL: %s

【不適切とする条件】
- スポットと無関係な場所・人物・商品が写っていると推測される
- 地図、ロゴのみ、テキストのみ、スクリーンショット、イラスト素材
- SNSのアイコンやサムネイル、明らかに低解像度の画像
- 判断に迷う場合

回答は "yes" または "no" の1語のみで出力してください。`, spotName, imageURL)
}

func buildUpdatePrompt(spot *model.Spot) string {
	return fmt.Sprintf(`あなたは旅行ガイドの画像品質チェック担当です。観光スポットの現在の画像を差し替えるべきか判定してください。

スポット名: %s
カテゴリ: %s
現在の画像URL: %s

【差し替えるべき条件】
- URLに placeholder, noimage, no_image, no-image, dummy, sample, default, nowprinting を含む
- via.placeholder.com, placehold.jp, dummyimage.com, picsum.photos, unsplash.com, pixabay.com, pexels.com など汎用・ストック画像のホスト
- w=, width=, size= などで100px以下を指定している、または thumb, thumbnail, icon, favicon, s64 などの縮小画像パス
- スポット名やカテゴリと無関係な画像と推測される

上記に該当する場合のみ "yes"、それ以外は "no" の1語のみで出力してください。`, spot.Name, spot.Category, spot.Image)
}
