package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/infrastructure/httpclient"
)

// ContentsClient はGitHub Contents API上の地域ドキュメントを読み書きする
type ContentsClient struct {
	token      string
	owner      string
	repo       string
	branch     string
	baseURL    string
	httpClient *http.Client
}

// NewContentsClient は新しいContentsClientを作成
func NewContentsClient(token, owner, repo, branch, baseURL string) *ContentsClient {
	return &ContentsClient{
		token:      token,
		owner:      owner,
		repo:       repo,
		branch:     branch,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpclient.New(30 * time.Second),
	}
}

// contentsResponse はGET /contents のレスポンス
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

// updateRequest はPUT /contents のリクエスト
type updateRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha"`
	Branch  string `json:"branch,omitempty"`
}

type updateResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

func (c *ContentsClient) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.baseURL, c.owner, c.repo, strings.TrimLeft(path, "/"))
}

// FetchRegion は地域ドキュメントとリビジョン（blob SHA）を取得する
func (c *ContentsClient) FetchRegion(ctx context.Context, path string) (*model.RegionDocument, string, error) {
	endpoint := c.contentsURL(path)
	if c.branch != "" {
		endpoint += "?ref=" + url.QueryEscape(c.branch)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: HTTPリクエストの作成に失敗: %v", apperror.ErrInternal, err)
	}
	c.setHeaders(httpReq)

	body, status, err := c.do(httpReq)
	if err != nil {
		return nil, "", err
	}
	if err := statusError(status, path, body); err != nil {
		return nil, "", err
	}

	var resp contentsResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("%w: レスポンスのパースに失敗: %v", apperror.ErrInternal, err)
	}
	if resp.Encoding != "" && resp.Encoding != "base64" {
		return nil, "", fmt.Errorf("%w: 未対応のエンコーディング: %s", apperror.ErrInternal, resp.Encoding)
	}

	// GitHubは60文字ごとに改行を入れて返す
	raw, err := base64.StdEncoding.DecodeString(strings.NewReplacer("\n", "", "\r", "").Replace(resp.Content))
	if err != nil {
		return nil, "", fmt.Errorf("%w: base64のデコードに失敗: %v", apperror.ErrInternal, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%w: 地域ドキュメントのパースに失敗 (%s): %v", apperror.ErrInternal, path, err)
	}

	return doc, resp.SHA, nil
}

// WriteRegion は取得時のリビジョンを添えて地域ドキュメントを書き込み、新しいリビジョンを返す
func (c *ContentsClient) WriteRegion(ctx context.Context, path string, doc *model.RegionDocument, revision, message string) (string, error) {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return "", fmt.Errorf("%w: 地域ドキュメントのシリアライズに失敗: %v", apperror.ErrInternal, err)
	}

	reqBody, err := sonic.Marshal(updateRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(encoded),
		SHA:     revision,
		Branch:  c.branch,
	})
	if err != nil {
		return "", fmt.Errorf("%w: リクエストのシリアライズに失敗: %v", apperror.ErrInternal, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("%w: HTTPリクエストの作成に失敗: %v", apperror.ErrInternal, err)
	}
	c.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(httpReq)
	if err != nil {
		return "", err
	}
	if err := statusError(status, path, body); err != nil {
		return "", err
	}

	var resp updateResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: レスポンスのパースに失敗: %v", apperror.ErrInternal, err)
	}
	return resp.Content.SHA, nil
}

func (c *ContentsClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *ContentsClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GitHub APIリクエストに失敗: %v", apperror.ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: レスポンスの読み込みに失敗: %v", apperror.ErrInternal, err)
	}
	return body, resp.StatusCode, nil
}

// statusError はステータスコードをエラー分類に変換する。再試行はしない
func statusError(status int, path string, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", apperror.ErrNotFound, path)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s のリビジョンが古くなっています", apperror.ErrConflict, path)
	default:
		return fmt.Errorf("%w: GitHub APIエラー (status: %d): %s", apperror.ErrInternal, status, string(body))
	}
}
