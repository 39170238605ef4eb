package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient はFirestoreクライアントを作成する。
// 認証情報ファイルが指定され存在すればそれを使い、無ければデフォルト認証を使う
func NewFirestoreClient(ctx context.Context, projectID, credentialsFile string, logger *zap.Logger) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FIRESTORE_PROJECT_IDが設定されていません")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			logger.Warn("⚠️ 認証情報ファイルが見つからないためデフォルト認証を使用", zap.String("file", credentialsFile))
		} else {
			logger.Info("📄 認証情報ファイルを使用", zap.String("file", credentialsFile))
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	logger.Info("✅ Firestore client initialized", zap.String("project", projectID))

	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
