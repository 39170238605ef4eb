package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgreSQLClient PostgreSQL直接接続クライアント
type PostgreSQLClient struct {
	DB *sql.DB
}

// NewPostgreSQLClient DATABASE_URLの接続文字列からクライアントを作成し、変更履歴テーブルを用意する
func NewPostgreSQLClient(ctx context.Context, databaseURL string) (*PostgreSQLClient, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URLが設定されていません")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL接続の初期化に失敗: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	client := &PostgreSQLClient{DB: db}
	if err := client.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("PostgreSQLへの接続に失敗: %w", err)
	}
	if err := client.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return client, nil
}

const changeLogSchema = `
CREATE TABLE IF NOT EXISTS spot_change_log (
	id                BIGSERIAL PRIMARY KEY,
	path              TEXT        NOT NULL,
	previous_revision TEXT        NOT NULL,
	new_revision      TEXT        NOT NULL,
	message           TEXT        NOT NULL,
	committed_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_spot_change_log_path ON spot_change_log (path, committed_at DESC);
`

func (pc *PostgreSQLClient) initSchema(ctx context.Context) error {
	if _, err := pc.DB.ExecContext(ctx, changeLogSchema); err != nil {
		return fmt.Errorf("変更履歴テーブルの作成に失敗: %w", err)
	}
	return nil
}

// Close データベース接続を閉じる
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck データベース接続のヘルスチェック
func (pc *PostgreSQLClient) HealthCheck(ctx context.Context) error {
	if pc.DB == nil {
		return fmt.Errorf("PostgreSQLクライアントが初期化されていません")
	}
	return pc.DB.PingContext(ctx)
}
