package search

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/infrastructure/httpclient"
)

// CustomSearchClient はGoogle Custom Search JSON APIで画像を検索する
type CustomSearchClient struct {
	service  *customsearch.Service
	engineID string
}

// NewCustomSearchClient は画像検索クライアントを作成する。
// 認証情報が無い場合も作成は成功し、検索時にエラーを返す
func NewCustomSearchClient(ctx context.Context, apiKey, engineID, endpoint string) (*CustomSearchClient, error) {
	if apiKey == "" || engineID == "" {
		return &CustomSearchClient{}, nil
	}

	// WithHTTPClientを渡すとWithAPIKeyは無視されるため、キーはトランスポートで付与する
	httpClient := httpclient.New(15 * time.Second)
	httpClient.Transport = &transport.APIKey{Key: apiKey, Transport: httpClient.Transport}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("画像検索クライアントの初期化に失敗: %w", err)
	}

	return &CustomSearchClient{service: svc, engineID: engineID}, nil
}

// SearchImages はクエリで画像を検索し、上流の順序のまま返す。0件は空スライス
func (c *CustomSearchClient) SearchImages(ctx context.Context, query string, maxResults int) ([]model.ImageSearchResult, error) {
	if c.service == nil {
		return nil, fmt.Errorf("%w: 画像検索の認証情報が設定されていません", apperror.ErrInternal)
	}

	// APIの上限は1リクエスト10件
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 10 {
		maxResults = 10
	}

	resp, err := c.service.Cse.List().
		Cx(c.engineID).
		Q(query).
		SearchType("image").
		Num(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: 画像検索APIリクエストに失敗: %v", apperror.ErrInternal, err)
	}

	results := make([]model.ImageSearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil {
			continue
		}
		result := model.ImageSearchResult{
			URL:           item.Link,
			DisplayDomain: item.DisplayLink,
		}
		if item.Image != nil {
			result.PageURL = item.Image.ContextLink
		}
		results = append(results, result)
	}

	return results, nil
}
