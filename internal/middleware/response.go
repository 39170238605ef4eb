package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
)

// 内部エラーで呼び出し元に返す固定メッセージ
const (
	messageInternal            = "サーバー内部でエラーが発生しました"
	messageMalformedAIResponse = "AIの応答を解釈できませんでした"
)

// ErrorResponse はエラー時のレスポンスボディ
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HTTPStatus はエラー分類からHTTPステータスを決める
func HTTPStatus(err error) int {
	switch apperror.Kind(err) {
	case apperror.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperror.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperror.CodePermissionDenied:
		return http.StatusForbidden
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeConflict:
		return http.StatusConflict
	case apperror.CodeMalformedAIResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AbortWithError はエラーを分類してレスポンスを返す。内部エラーの詳細はログにのみ出す
func AbortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status := HTTPStatus(err)
	resp := ErrorResponse{Error: apperror.Kind(err), Message: err.Error()}

	if !apperror.IsClientVisible(err) {
		logger.Error("❌ リクエスト処理に失敗",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
		resp.Message = messageInternal
		if status == http.StatusBadGateway {
			resp.Message = messageMalformedAIResponse
		}
	}

	c.AbortWithStatusJSON(status, resp)
}
