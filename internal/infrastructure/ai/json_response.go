package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"TravelSpot-App/internal/domain/apperror"
)

var responseValidator = validator.New()

// StripCodeFence はMarkdownのコードフェンスと前後の空白を取り除く
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		// ```json のような言語指定行ごと落とす
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeJSONResponse はAIの応答をJSONとして解析し、validateタグで形式を検証する
func DecodeJSONResponse(text string, out any) error {
	cleaned := StripCodeFence(text)
	if cleaned == "" {
		return fmt.Errorf("%w: 応答が空です", apperror.ErrMalformedAIResponse)
	}

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: JSONのパースに失敗: %v", apperror.ErrMalformedAIResponse, err)
	}

	if err := responseValidator.Struct(out); err != nil {
		return fmt.Errorf("%w: 応答の形式が不正です: %v", apperror.ErrMalformedAIResponse, err)
	}

	return nil
}

// normalizeYesNo はyes/no形式の応答を正規化する
func normalizeYesNo(answer string) string {
	s := strings.ToLower(StripCodeFence(answer))
	s = strings.Trim(s, " \t\r\n.。!\"'")
	return s
}
