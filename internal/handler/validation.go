package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap で入力不正として分類させる
func (e *ValidationError) Unwrap() error {
	return apperror.ErrInvalidArgument
}

// bindJSON はリクエストボディをバインドし、失敗時は400を返してfalseを返す
func bindJSON(c *gin.Context, logger *zap.Logger, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.AbortWithError(c, logger, toValidationError(err))
		return false
	}
	return true
}

// bindOptionalJSON は省略可能なボディをバインドする。Content-Lengthの無いチャンク転送も読み、空ボディはゼロ値のまま通す
func bindOptionalJSON(c *gin.Context, logger *zap.Logger, req interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		middleware.AbortWithError(c, logger, toValidationError(err))
		return false
	}
	return true
}

// toValidationError はbindingタグの検証結果を最初の項目のエラーに変換する
func toValidationError(err error) *ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Field()
		if field != "" {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		return &ValidationError{Field: field, Message: fe.Tag() + "の条件を満たしていません"}
	}
	return &ValidationError{Message: "リクエストの形式が正しくありません"}
}

// requireIdentity は認証済みの呼び出し元を取得する。無ければ401を返してfalse
func requireIdentity(c *gin.Context, logger *zap.Logger) (*model.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		middleware.AbortWithError(c, logger, apperror.ErrUnauthenticated)
		return nil, false
	}
	return identity, true
}
