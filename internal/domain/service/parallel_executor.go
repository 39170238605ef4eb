package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome は並行処理1件分の結果
type Outcome[T any] struct {
	Value T
	Err   error
}

// RunBounded はn件の処理を同時実行数limitで並行に実行し、入力順の結果を返す。
// 1件の失敗は他の処理を中断しない
func RunBounded[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], n)
	if n == 0 {
		return outcomes
	}
	if limit < 1 {
		limit = 1
	}

	// errgroup.WithContextは使わない（失敗時に兄弟をキャンセルしないため）
	var g errgroup.Group
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].Err = fmt.Errorf("並行処理%dでpanic: %v", i, r)
				}
			}()
			value, err := fn(ctx, i)
			outcomes[i] = Outcome[T]{Value: value, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}
