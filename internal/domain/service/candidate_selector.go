package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// CandidateSelector は画像検索と関連性判定で差し替え候補の画像を選ぶ
type CandidateSelector struct {
	searcher       repository.ImageSearchRepository
	classifier     repository.ImageRelevanceClassifier
	maxConcurrency int
	logger         *zap.Logger
}

func NewCandidateSelector(searcher repository.ImageSearchRepository, classifier repository.ImageRelevanceClassifier, maxConcurrency int, logger *zap.Logger) *CandidateSelector {
	return &CandidateSelector{
		searcher:       searcher,
		classifier:     classifier,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// SelectCandidates は最大3件の候補を返す。判定を通過したものを検索順に優先し、
// 不足分は通過しなかった結果で検索順に補う。先頭が第一候補
func (s *CandidateSelector) SelectCandidates(ctx context.Context, spotName, excludeURL string) ([]model.ImageCandidate, error) {
	query := fmt.Sprintf("%s %s", spotName, model.ImageSearchSuffix)
	results, err := s.searcher.SearchImages(ctx, query, model.ImageSearchResultNum)
	if err != nil {
		return nil, fmt.Errorf("画像検索に失敗 (%s): %w", spotName, err)
	}

	filtered := dedupeResults(results, excludeURL)
	if len(filtered) == 0 {
		return []model.ImageCandidate{}, nil
	}

	verdicts := RunBounded(ctx, s.maxConcurrency, len(filtered), func(ctx context.Context, i int) (bool, error) {
		return s.classifier.IsAppropriate(ctx, filtered[i].URL, spotName), nil
	})

	candidates := make([]model.ImageCandidate, 0, model.MaxImageCandidates)
	for i, r := range filtered {
		if len(candidates) == model.MaxImageCandidates {
			break
		}
		if verdicts[i].Err == nil && verdicts[i].Value {
			candidates = append(candidates, toCandidate(r, true))
		}
	}
	verifiedCount := len(candidates)
	for i, r := range filtered {
		if len(candidates) == model.MaxImageCandidates {
			break
		}
		if verdicts[i].Err != nil || !verdicts[i].Value {
			candidates = append(candidates, toCandidate(r, false))
		}
	}

	s.logger.Debug("🔍 画像候補を選定",
		zap.String("spot", spotName),
		zap.Int("results", len(filtered)),
		zap.Int("verified", verifiedCount),
		zap.Int("candidates", len(candidates)))

	return candidates, nil
}

// dedupeResults は空URL、除外URL、重複（先勝ち）を取り除く
func dedupeResults(results []model.ImageSearchResult, excludeURL string) []model.ImageSearchResult {
	seen := make(map[string]bool, len(results))
	filtered := make([]model.ImageSearchResult, 0, len(results))
	for _, r := range results {
		if r.URL == "" || r.URL == excludeURL || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		filtered = append(filtered, r)
	}
	return filtered
}

func toCandidate(r model.ImageSearchResult, verified bool) model.ImageCandidate {
	return model.ImageCandidate{
		URL:           r.URL,
		PageURL:       r.PageURL,
		DisplayDomain: r.DisplayDomain,
		Verified:      verified,
	}
}
