package ai

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/repository"
)

// LimitedGenerator はテキスト生成の同時実行数をプロセス全体で制限する。
// 地域×スポット、スポット×候補のように並列処理が入れ子になっても、
// 生成APIへの同時リクエストはlimitを超えない
type LimitedGenerator struct {
	inner repository.TextGenerationRepository
	sem   *semaphore.Weighted
}

// NewLimitedGenerator は同時実行数limitの生成器でinnerを包む
func NewLimitedGenerator(inner repository.TextGenerationRepository, limit int64) *LimitedGenerator {
	if limit < 1 {
		limit = 1
	}
	return &LimitedGenerator{inner: inner, sem: semaphore.NewWeighted(limit)}
}

// GenerateContent は枠が空くまで待ってから生成する
func (g *LimitedGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: 生成の実行枠を待つ間に中断されました: %v", apperror.ErrInternal, err)
	}
	defer g.sem.Release(1)

	return g.inner.GenerateContent(ctx, prompt)
}
