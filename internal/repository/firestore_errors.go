package repository

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"TravelSpot-App/internal/domain/apperror"
)

// firestoreError はFirestoreのエラーをアプリケーションのエラー分類に変換する
func firestoreError(err error, what string) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", apperror.ErrNotFound, what)
	case codes.AlreadyExists, codes.Aborted, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", apperror.ErrConflict, what)
	default:
		return fmt.Errorf("%w: %s の操作に失敗しました: %v", apperror.ErrInternal, what, err)
	}
}
