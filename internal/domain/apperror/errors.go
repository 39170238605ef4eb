package apperror

import "errors"

// アプリケーション全体で共有するエラー分類
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternal            = errors.New("internal error")
	ErrMalformedAIResponse = errors.New("malformed ai response")
)

// エラーコード
const (
	CodeInvalidArgument     = "invalid_argument"
	CodeUnauthenticated     = "unauthenticated"
	CodePermissionDenied    = "permission_denied"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeMalformedAIResponse = "malformed_ai_response"
	CodeInternal            = "internal"
)

// Kind はエラーを分類コードに変換する。分類できないものはinternal扱い
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrPermissionDenied):
		return CodePermissionDenied
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrMalformedAIResponse):
		return CodeMalformedAIResponse
	default:
		return CodeInternal
	}
}

// IsClientVisible は呼び出し元にエラー本文を返してよい分類かどうか
func IsClientVisible(err error) bool {
	switch Kind(err) {
	case CodeInvalidArgument, CodeUnauthenticated, CodePermissionDenied, CodeNotFound, CodeConflict:
		return true
	default:
		return false
	}
}
