package usecase

import (
	"context"
	"fmt"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// 通知一覧の件数
const notificationListLimit = 50

// NotificationUseCase 通知とお知らせの参照を提供する
type NotificationUseCase interface {
	// ListNotifications 呼び出し元の通知を新しい順に取得
	ListNotifications(ctx context.Context, identity *model.Identity) ([]model.Notification, error)

	// MarkRead 呼び出し元の通知を既読にする
	MarkRead(ctx context.Context, identity *model.Identity, id string) error

	// ListAnnouncements 公開のお知らせを新しい順に取得
	ListAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error)
}

type notificationUseCaseImpl struct {
	notifications repository.NotificationRepository
	announcements repository.AnnouncementRepository
}

// NewNotificationUseCase NotificationUseCaseの新しいインスタンスを作成
func NewNotificationUseCase(notifications repository.NotificationRepository, announcements repository.AnnouncementRepository) NotificationUseCase {
	return &notificationUseCaseImpl{
		notifications: notifications,
		announcements: announcements,
	}
}

func (u *notificationUseCaseImpl) ListNotifications(ctx context.Context, identity *model.Identity) ([]model.Notification, error) {
	return u.notifications.ListByUser(ctx, identity.UserID, notificationListLimit)
}

func (u *notificationUseCaseImpl) MarkRead(ctx context.Context, identity *model.Identity, id string) error {
	if id == "" {
		return fmt.Errorf("%w: 通知IDが空です", apperror.ErrInvalidArgument)
	}
	return u.notifications.MarkRead(ctx, identity.UserID, id)
}

func (u *notificationUseCaseImpl) ListAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error) {
	if limit < 0 || limit > model.MaxAnnouncementLimit {
		return nil, fmt.Errorf("%w: limitは1〜%dです", apperror.ErrInvalidArgument, model.MaxAnnouncementLimit)
	}
	if limit == 0 {
		limit = model.DefaultAnnouncementLimit
	}
	return u.announcements.ListRecent(ctx, limit)
}
