package repository

import (
	"context"
	"fmt"
	"time"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/infrastructure/database"
)

type PostgresChangeLogRepository struct {
	client *database.PostgreSQLClient
}

func NewPostgresChangeLogRepository(client *database.PostgreSQLClient) repository.ChangeLogRepository {
	return &PostgresChangeLogRepository{
		client: client,
	}
}

// Record は地域ドキュメントのコミットを1行追記する
func (r *PostgresChangeLogRepository) Record(ctx context.Context, entry *model.ChangeLogEntry) error {
	if entry.CommittedAt.IsZero() {
		entry.CommittedAt = time.Now().UTC()
	}

	query := `INSERT INTO spot_change_log (path, previous_revision, new_revision, message, committed_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.client.DB.ExecContext(ctx, query,
		entry.Path, entry.PreviousRevision, entry.NewRevision, entry.Message, entry.CommittedAt,
	); err != nil {
		return fmt.Errorf("%w: 変更履歴の記録に失敗: %v", apperror.ErrInternal, err)
	}
	return nil
}

// ListByPath は指定パスの履歴を新しい順に返す
func (r *PostgresChangeLogRepository) ListByPath(ctx context.Context, path string, limit int) ([]model.ChangeLogEntry, error) {
	query := `SELECT path, previous_revision, new_revision, message, committed_at
		FROM spot_change_log WHERE path = $1 ORDER BY committed_at DESC, id DESC LIMIT $2`

	rows, err := r.client.DB.QueryContext(ctx, query, path, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: 変更履歴の取得に失敗: %v", apperror.ErrInternal, err)
	}
	defer rows.Close()

	entries := []model.ChangeLogEntry{}
	for rows.Next() {
		var e model.ChangeLogEntry
		if err := rows.Scan(&e.Path, &e.PreviousRevision, &e.NewRevision, &e.Message, &e.CommittedAt); err != nil {
			return nil, fmt.Errorf("%w: 変更履歴の読み取りに失敗: %v", apperror.ErrInternal, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: 変更履歴の読み取りに失敗: %v", apperror.ErrInternal, err)
	}
	return entries, nil
}
