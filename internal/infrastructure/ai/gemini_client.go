package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/infrastructure/httpclient"
)

// GeminiClient はGemini APIとの通信を担当するクライアント
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiClient は新しいGeminiClientインスタンスを作成
func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: httpclient.New(30 * time.Second),
	}
}

// GeminiRequest はGemini APIへのリクエスト構造体
type GeminiRequest struct {
	Contents []Content `json:"contents"`
}

// Content はリクエストの内容
type Content struct {
	Parts []Part `json:"parts"`
}

// Part はテキスト部分
type Part struct {
	Text string `json:"text"`
}

// GeminiResponse はGemini APIからのレスポンス構造体
type GeminiResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate は生成された候補
type Candidate struct {
	Content Content `json:"content"`
}

// GenerateContent はGemini APIを使ってコンテンツを生成し、最初の候補のテキストを返す
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req := GeminiRequest{
		Contents: []Content{
			{
				Parts: []Part{
					{Text: prompt},
				},
			},
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: リクエストのシリアライズに失敗: %v", apperror.ErrInternal, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", fmt.Errorf("%w: HTTPリクエストの作成に失敗: %v", apperror.ErrInternal, err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	// キーはURLに載せずヘッダーで送る
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: APIリクエストに失敗: %v", apperror.ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: レスポンスの読み取りに失敗: %v", apperror.ErrInternal, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: API呼び出しエラー (status: %d): %s", apperror.ErrInternal, resp.StatusCode, string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("%w: レスポンスのパースに失敗: %v", apperror.ErrInternal, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 ||
		strings.TrimSpace(geminiResp.Candidates[0].Content.Parts[0].Text) == "" {
		return "", fmt.Errorf("%w: 有効なレスポンスが生成されませんでした", apperror.ErrInternal)
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
