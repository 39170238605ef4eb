package usecase

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
)

// documentError は地域ドキュメントの読み書きエラーを利用者向けの文言に置き換える。
// 元のエラー（ファイルパス等を含む）はログにだけ残す
func documentError(logger *zap.Logger, action, region string, err error) error {
	logger.Warn("⚠️ 地域ドキュメントの"+action+"に失敗", zap.String("region", region), zap.Error(err))

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fmt.Errorf("%w: 地域 %s のドキュメントが見つかりません", apperror.ErrNotFound, region)
	case errors.Is(err, apperror.ErrConflict):
		return fmt.Errorf("%w: 地域 %s は他の更新と競合しました。再読み込みしてやり直してください", apperror.ErrConflict, region)
	default:
		return fmt.Errorf("地域 %s のドキュメントの%sに失敗: %w", region, action, err)
	}
}
