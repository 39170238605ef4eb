package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/infrastructure/database"
)

// AnnouncementsTable はお知らせを保存するSupabaseのテーブル
const AnnouncementsTable = "announcements"

type SupabaseAnnouncementRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseAnnouncementRepository(client *database.SupabaseClient) repository.AnnouncementRepository {
	return &SupabaseAnnouncementRepository{
		client: client,
	}
}

// Create はお知らせを追記する
func (r *SupabaseAnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("%w: お知らせのJSONマーシャル失敗: %v", apperror.ErrInternal, err)
	}

	_, _, err = r.client.GetClient().From(AnnouncementsTable).Insert(string(data), false, "", "", "").Execute()
	if err != nil {
		return fmt.Errorf("%w: お知らせの作成失敗: %v", apperror.ErrInternal, err)
	}
	return nil
}

// ListRecent は新しい順に最大limit件を返す
func (r *SupabaseAnnouncementRepository) ListRecent(ctx context.Context, limit int) ([]model.Announcement, error) {
	data, _, err := r.client.GetClient().From(AnnouncementsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: お知らせの取得失敗: %v", apperror.ErrInternal, err)
	}

	announcements := []model.Announcement{}
	if err := json.Unmarshal(data, &announcements); err != nil {
		return nil, fmt.Errorf("%w: お知らせのJSONアンマーシャル失敗: %v", apperror.ErrInternal, err)
	}
	return announcements, nil
}
