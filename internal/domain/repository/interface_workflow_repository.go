package repository

import (
	"context"

	"TravelSpot-App/internal/domain/model"
)

type EditRequestRepository interface {
	Create(ctx context.Context, req *model.EditRequest) error
	GetByID(ctx context.Context, id string) (*model.EditRequest, error)
	ListByStatus(ctx context.Context, status string) ([]model.EditRequest, error)
	// Transition はpendingのリクエストのみ遷移させる。既に処理済みならErrConflict
	Transition(ctx context.Context, id, status, reviewerID, note string) (*model.EditRequest, error)
}

type ImageReportRepository interface {
	Create(ctx context.Context, report *model.ImageReport) error
	GetByID(ctx context.Context, id string) (*model.ImageReport, error)
	List(ctx context.Context) ([]model.ImageReport, error)
	Delete(ctx context.Context, id string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, userID string, n *model.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListRecent(ctx context.Context, limit int) ([]model.Announcement, error)
}

type ChangeLogRepository interface {
	Record(ctx context.Context, entry *model.ChangeLogEntry) error
}

// IdentityVerifier はアクセストークンから呼び出し元を特定する。無効なトークンはErrUnauthenticated
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*model.Identity, error)
}
