package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/domain/service"
)

// 対象スポットが消えていた場合の却下理由
const reviewNoteSpotMissing = "対象のスポットが存在しないため自動的に却下されました"

type EditRequestUseCase interface {
	Submit(ctx context.Context, identity *model.Identity, req *model.SubmitEditRequest) (*model.EditRequest, error)
	ListPending(ctx context.Context) ([]model.EditRequest, error)
	// Approve は地域ドキュメントに変更を反映してから承認済みにする
	Approve(ctx context.Context, identity *model.Identity, id string) (*model.EditRequest, error)
	Reject(ctx context.Context, identity *model.Identity, id, reason string) (*model.EditRequest, error)
}

type editRequestUseCaseImpl struct {
	requests  repository.EditRequestRepository
	store     repository.RegionDocumentRepository
	catalog   *service.RegionCatalog
	publisher *changePublisher
	logger    *zap.Logger
}

func NewEditRequestUseCase(
	requests repository.EditRequestRepository,
	store repository.RegionDocumentRepository,
	catalog *service.RegionCatalog,
	notifications repository.NotificationRepository,
	announcements repository.AnnouncementRepository,
	logger *zap.Logger,
) EditRequestUseCase {
	return &editRequestUseCaseImpl{
		requests:  requests,
		store:     store,
		catalog:   catalog,
		publisher: newChangePublisher(notifications, announcements, logger),
		logger:    logger,
	}
}

func (u *editRequestUseCaseImpl) Submit(ctx context.Context, identity *model.Identity, req *model.SubmitEditRequest) (*model.EditRequest, error) {
	if !model.IsValidEditRequestType(req.Type) {
		return nil, fmt.Errorf("%w: typeはeditまたはdeleteです: %s", apperror.ErrInvalidArgument, req.Type)
	}
	if req.Type == model.EditRequestTypeEdit && req.Changes.IsEmpty() {
		return nil, fmt.Errorf("%w: 編集リクエストには変更内容が必要です", apperror.ErrInvalidArgument)
	}

	path, err := u.catalog.PathOf(req.Region)
	if err != nil {
		return nil, err
	}
	doc, _, err := u.store.FetchRegion(ctx, path)
	if err != nil {
		return nil, documentError(u.logger, "取得", req.Region, err)
	}
	if doc.FindSpot(req.SpotName) < 0 {
		return nil, fmt.Errorf("%w: スポット %s", apperror.ErrNotFound, req.SpotName)
	}
	if req.Changes != nil && req.Changes.Area != nil && !doc.HasArea(*req.Changes.Area) {
		return nil, fmt.Errorf("%w: エリア %s は登録されていません", apperror.ErrInvalidArgument, *req.Changes.Area)
	}

	editRequest := &model.EditRequest{
		Type:        req.Type,
		Region:      req.Region,
		SpotName:    req.SpotName,
		Reason:      strings.TrimSpace(req.Reason),
		Status:      model.RequestStatusPending,
		RequesterID: identity.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	if req.Type == model.EditRequestTypeEdit {
		editRequest.Changes = req.Changes
	}

	if err := u.requests.Create(ctx, editRequest); err != nil {
		return nil, fmt.Errorf("編集リクエストの保存に失敗: %w", err)
	}

	u.logger.Info("📝 編集リクエストを受け付け",
		zap.String("id", editRequest.ID),
		zap.String("type", editRequest.Type),
		zap.String("region", editRequest.Region),
		zap.String("spot", editRequest.SpotName))
	return editRequest, nil
}

func (u *editRequestUseCaseImpl) ListPending(ctx context.Context) ([]model.EditRequest, error) {
	return u.requests.ListByStatus(ctx, model.RequestStatusPending)
}

func (u *editRequestUseCaseImpl) Approve(ctx context.Context, identity *model.Identity, id string) (*model.EditRequest, error) {
	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("%w: 編集リクエスト %s は処理済みです", apperror.ErrConflict, id)
	}

	path, err := u.catalog.PathOf(req.Region)
	if err != nil {
		return nil, err
	}
	doc, revision, err := u.store.FetchRegion(ctx, path)
	if err != nil {
		return nil, documentError(u.logger, "取得", req.Region, err)
	}

	var applyErr error
	var message string
	switch req.Type {
	case model.EditRequestTypeEdit:
		applyErr = service.ApplySpotChanges(doc, req.SpotName, req.Changes)
		message = fmt.Sprintf("Update spot %s in %s", req.SpotName, req.Region)
	case model.EditRequestTypeDelete:
		applyErr = service.RemoveSpot(doc, req.SpotName)
		message = fmt.Sprintf("Delete spot %s from %s", req.SpotName, req.Region)
	default:
		applyErr = fmt.Errorf("%w: 未知のリクエスト種別です: %s", apperror.ErrInvalidArgument, req.Type)
	}

	if errors.Is(applyErr, apperror.ErrNotFound) {
		u.logger.Warn("⚠️ 対象スポットが存在しないため編集リクエストを却下",
			zap.String("id", id), zap.String("region", req.Region), zap.String("spot", req.SpotName))
		if _, err := u.requests.Transition(ctx, id, model.RequestStatusRejected, identity.UserID, reviewNoteSpotMissing); err != nil {
			return nil, err
		}
		u.publisher.notify(ctx, req.RequesterID,
			fmt.Sprintf("%sリクエストが却下されました", model.GetRequestTypeJapaneseName(req.Type)),
			fmt.Sprintf("「%s」は既に存在しないため、リクエストは却下されました", req.SpotName))
		return nil, applyErr
	}
	if applyErr != nil {
		return nil, applyErr
	}

	if _, err := u.store.WriteRegion(ctx, path, doc, revision, message); err != nil {
		return nil, documentError(u.logger, "書き込み", req.Region, err)
	}

	approved, err := u.requests.Transition(ctx, id, model.RequestStatusApproved, identity.UserID, "")
	if err != nil {
		return nil, err
	}

	u.logger.Info("✅ 編集リクエストを承認",
		zap.String("id", id), zap.String("type", req.Type), zap.String("spot", req.SpotName))

	typeName := model.GetRequestTypeJapaneseName(req.Type)
	u.publisher.notify(ctx, req.RequesterID,
		fmt.Sprintf("%sリクエストが承認されました", typeName),
		fmt.Sprintf("「%s」への%sリクエストが反映されました", req.SpotName, typeName))

	if req.Type == model.EditRequestTypeDelete {
		u.publisher.announce(ctx, "スポットを削除しました",
			fmt.Sprintf("%sの「%s」を削除しました", req.Region, req.SpotName), req.Region, req.SpotName)
	} else {
		u.publisher.announce(ctx, "スポット情報を更新しました",
			fmt.Sprintf("%sの「%s」の情報を更新しました", req.Region, req.SpotName), req.Region, req.SpotName)
	}

	return approved, nil
}

func (u *editRequestUseCaseImpl) Reject(ctx context.Context, identity *model.Identity, id, reason string) (*model.EditRequest, error) {
	rejected, err := u.requests.Transition(ctx, id, model.RequestStatusRejected, identity.UserID, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}

	u.logger.Info("🚫 編集リクエストを却下", zap.String("id", id))

	body := fmt.Sprintf("「%s」への%sリクエストは却下されました", rejected.SpotName, model.GetRequestTypeJapaneseName(rejected.Type))
	if rejected.ReviewNote != "" {
		body += "（理由: " + rejected.ReviewNote + "）"
	}
	u.publisher.notify(ctx, rejected.RequesterID,
		fmt.Sprintf("%sリクエストが却下されました", model.GetRequestTypeJapaneseName(rejected.Type)), body)
	return rejected, nil
}
