package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// geminiSpotInfoRepository はGemini APIを使用してSpotInfoGenerationRepositoryを実装
type geminiSpotInfoRepository struct {
	generator repository.TextGenerationRepository
	logger    *zap.Logger
}

// NewGeminiSpotInfoRepository は新しいgeminiSpotInfoRepositoryインスタンスを作成
func NewGeminiSpotInfoRepository(generator repository.TextGenerationRepository, logger *zap.Logger) repository.SpotInfoGenerationRepository {
	return &geminiSpotInfoRepository{
		generator: generator,
		logger:    logger,
	}
}

// GenerateSpotDraft はスポット名とURLからスポット情報の下書きを生成する
func (g *geminiSpotInfoRepository) GenerateSpotDraft(ctx context.Context, req *model.GenerateSpotInfoRequest) (*model.GeneratedSpotDraft, error) {
	prompt := g.buildSpotInfoPrompt(req)

	g.logger.Info("🤖 Gemini APIでスポット情報を生成中...", zap.String("spot", req.SpotName))

	text, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("Gemini API呼び出しエラー: %w", err)
	}

	var draft model.GeneratedSpotDraft
	if err := DecodeJSONResponse(text, &draft); err != nil {
		g.logger.Warn("⚠️ スポット情報の応答形式が不正です", zap.String("spot", req.SpotName), zap.Error(err))
		return nil, err
	}

	g.logger.Info("✅ スポット情報生成完了", zap.String("spot", draft.Name), zap.String("region", draft.Region), zap.String("area", draft.Area))
	return &draft, nil
}

// buildSpotInfoPrompt はスポット情報生成用プロンプトを構築
func (g *geminiSpotInfoRepository) buildSpotInfoPrompt(req *model.GenerateSpotInfoRequest) string {
	return fmt.Sprintf(`以下の観光スポットについて、旅行ガイドに掲載する情報をJSONで生成してください。

【スポット】
名前: %s
URL: %s

【選択可能なタグ】
%s

【既存の地域とエリア】
%s

【出力フォーマット】
{"name": "スポット名", "region": "地域名", "area": "エリア名", "category": "カテゴリ", "description": "説明文", "tags": ["タグ"]}

【要件】
- region は既存の地域から選ぶ
- area はできるだけ既存のエリアから選び、該当がなければ最寄りの地名を新しいエリアとして使う
- tags は選択可能なタグからのみ選ぶ
- description は80〜150文字の日本語
- JSON以外の文字は出力しない`,
		req.SpotName,
		req.SpotURL,
		strings.Join(req.StandardTags, "、"),
		formatAreaPositions(req.AreaPositions))
}

// formatAreaPositions は地域ごとのエリア一覧をプロンプト用に整形する
func formatAreaPositions(areaPositions map[string]map[string]model.Position) string {
	if len(areaPositions) == 0 {
		return "（なし）"
	}

	regions := make([]string, 0, len(areaPositions))
	for region := range areaPositions {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	lines := make([]string, 0, len(regions))
	for _, region := range regions {
		areas := make([]string, 0, len(areaPositions[region]))
		for area := range areaPositions[region] {
			areas = append(areas, area)
		}
		sort.Strings(areas)
		lines = append(lines, fmt.Sprintf("- %s: %s", region, strings.Join(areas, "、")))
	}
	return strings.Join(lines, "\n")
}
