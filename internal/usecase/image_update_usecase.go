package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/domain/service"
)

type ImageUpdateUseCase interface {
	CountCandidates(ctx context.Context, region string) (*model.ImageUpdateCountResult, error)
	ProposeUpdates(ctx context.Context, region string) (*model.ImageUpdateProposalResult, error)
	ConfirmUpdates(ctx context.Context, identity *model.Identity, proposals []model.ImageUpdateProposal) (*model.ImageUpdateConfirmResult, error)
}

type imageUpdateUseCaseImpl struct {
	reconciler *service.ImageReconciliationService
	publisher  *changePublisher
	logger     *zap.Logger
}

func NewImageUpdateUseCase(reconciler *service.ImageReconciliationService, announcements repository.AnnouncementRepository, logger *zap.Logger) ImageUpdateUseCase {
	return &imageUpdateUseCaseImpl{
		reconciler: reconciler,
		publisher:  newChangePublisher(nil, announcements, logger),
		logger:     logger,
	}
}

func (u *imageUpdateUseCaseImpl) CountCandidates(ctx context.Context, region string) (*model.ImageUpdateCountResult, error) {
	return u.reconciler.CountCandidates(ctx, region)
}

func (u *imageUpdateUseCaseImpl) ProposeUpdates(ctx context.Context, region string) (*model.ImageUpdateProposalResult, error) {
	return u.reconciler.ProposeUpdates(ctx, region)
}

func (u *imageUpdateUseCaseImpl) ConfirmUpdates(ctx context.Context, identity *model.Identity, proposals []model.ImageUpdateProposal) (*model.ImageUpdateConfirmResult, error) {
	result, err := u.reconciler.ConfirmUpdates(ctx, proposals)
	if err != nil {
		return nil, err
	}

	if result.UpdatedDocuments > 0 {
		u.logger.Info("✅ 画像を一括更新",
			zap.Int("documents", result.UpdatedDocuments),
			zap.Int("spots", result.UpdatedSpots),
			zap.String("approver", identity.UserID))
		u.publisher.announce(ctx, "スポット画像を一括更新しました",
			fmt.Sprintf("%sの%d件のスポット画像を更新しました", strings.Join(result.UpdatedRegions, "、"), result.UpdatedSpots),
			"", "")
	}
	return result, nil
}
