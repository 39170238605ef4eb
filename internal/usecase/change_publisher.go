package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// changePublisher はドキュメント確定後の通知とお知らせを書き込む。失敗はログのみ
type changePublisher struct {
	notifications repository.NotificationRepository
	announcements repository.AnnouncementRepository
	logger        *zap.Logger
}

func newChangePublisher(notifications repository.NotificationRepository, announcements repository.AnnouncementRepository, logger *zap.Logger) *changePublisher {
	return &changePublisher{
		notifications: notifications,
		announcements: announcements,
		logger:        logger,
	}
}

func (p *changePublisher) notify(ctx context.Context, userID, title, body string) {
	if userID == "" || p.notifications == nil {
		return
	}
	n := &model.Notification{Title: title, Body: body, CreatedAt: time.Now().UTC()}
	if err := p.notifications.Create(ctx, userID, n); err != nil {
		p.logger.Warn("⚠️ 通知の作成に失敗", zap.String("user", userID), zap.String("title", title), zap.Error(err))
	}
}

func (p *changePublisher) announce(ctx context.Context, title, body, region, spotName string) {
	if p.announcements == nil {
		return
	}
	a := &model.Announcement{
		Title:     title,
		Body:      body,
		Region:    region,
		SpotName:  spotName,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.announcements.Create(ctx, a); err != nil {
		p.logger.Warn("⚠️ お知らせの作成に失敗", zap.String("title", title), zap.Error(err))
	}
}
