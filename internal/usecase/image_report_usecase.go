package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/domain/service"
)

type ImageReportUseCase interface {
	// FindCandidates は報告された画像を除いた差し替え候補を最大3件返す
	FindCandidates(ctx context.Context, req *model.FindImageCandidatesRequest) ([]model.ImageCandidate, error)
	Submit(ctx context.Context, identity *model.Identity, req *model.SubmitImageReportRequest) (*model.ImageReport, error)
	List(ctx context.Context) ([]model.ImageReport, error)
	// Resolve は報告を処理して削除する。承認時は画像を差し替える
	Resolve(ctx context.Context, identity *model.Identity, id string, req *model.ResolveImageReportRequest) error
}

type imageReportUseCaseImpl struct {
	reports   repository.ImageReportRepository
	store     repository.RegionDocumentRepository
	catalog   *service.RegionCatalog
	selector  *service.CandidateSelector
	publisher *changePublisher
	logger    *zap.Logger
}

func NewImageReportUseCase(
	reports repository.ImageReportRepository,
	store repository.RegionDocumentRepository,
	catalog *service.RegionCatalog,
	selector *service.CandidateSelector,
	notifications repository.NotificationRepository,
	announcements repository.AnnouncementRepository,
	logger *zap.Logger,
) ImageReportUseCase {
	return &imageReportUseCaseImpl{
		reports:   reports,
		store:     store,
		catalog:   catalog,
		selector:  selector,
		publisher: newChangePublisher(notifications, announcements, logger),
		logger:    logger,
	}
}

func (u *imageReportUseCaseImpl) FindCandidates(ctx context.Context, req *model.FindImageCandidatesRequest) ([]model.ImageCandidate, error) {
	name := strings.TrimSpace(req.SpotName)
	if name == "" {
		return nil, fmt.Errorf("%w: spotNameは必須です", apperror.ErrInvalidArgument)
	}
	return u.selector.SelectCandidates(ctx, name, req.ReportedImage)
}

func (u *imageReportUseCaseImpl) Submit(ctx context.Context, identity *model.Identity, req *model.SubmitImageReportRequest) (*model.ImageReport, error) {
	if _, err := u.catalog.PathOf(req.Region); err != nil {
		return nil, err
	}
	if req.CandidateImage != "" && req.CandidateImage == req.ReportedImage {
		return nil, fmt.Errorf("%w: 候補画像が報告された画像と同じです", apperror.ErrInvalidArgument)
	}

	report := &model.ImageReport{
		Region:             req.Region,
		SpotName:           req.SpotName,
		ReportedImage:      req.ReportedImage,
		CandidateImage:     req.CandidateImage,
		CandidateSource:    req.CandidateSource,
		CandidateSourceURL: req.CandidateSourceURL,
		Reason:             strings.TrimSpace(req.Reason),
		ReporterID:         identity.UserID,
		CreatedAt:          time.Now().UTC(),
	}
	if err := u.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("画像報告の保存に失敗: %w", err)
	}

	u.logger.Info("📷 画像報告を受け付け",
		zap.String("id", report.ID), zap.String("region", report.Region), zap.String("spot", report.SpotName))
	return report, nil
}

func (u *imageReportUseCaseImpl) List(ctx context.Context) ([]model.ImageReport, error) {
	return u.reports.List(ctx)
}

func (u *imageReportUseCaseImpl) Resolve(ctx context.Context, identity *model.Identity, id string, req *model.ResolveImageReportRequest) error {
	report, err := u.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !req.Approve {
		if err := u.reports.Delete(ctx, id); err != nil {
			return err
		}
		u.logger.Info("🚫 画像報告を却下", zap.String("id", id))
		u.publisher.notify(ctx, report.ReporterID, "画像の報告を確認しました",
			fmt.Sprintf("「%s」の画像は変更されませんでした", report.SpotName))
		return nil
	}

	image, source, sourceURL := report.CandidateImage, report.CandidateSource, report.CandidateSourceURL
	if req.ImageURL != "" && req.ImageURL != report.CandidateImage {
		image, source, sourceURL = req.ImageURL, hostOf(req.ImageURL), ""
	}
	if image == "" {
		return fmt.Errorf("%w: 差し替える画像がありません", apperror.ErrInvalidArgument)
	}

	path, err := u.catalog.PathOf(report.Region)
	if err != nil {
		return err
	}
	doc, revision, err := u.store.FetchRegion(ctx, path)
	if err != nil {
		return documentError(u.logger, "取得", report.Region, err)
	}

	if err := service.SetSpotImage(doc, report.SpotName, image, source, sourceURL); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			u.logger.Warn("⚠️ 対象スポットが存在しないため画像報告を破棄", zap.String("id", id), zap.String("spot", report.SpotName))
			if delErr := u.reports.Delete(ctx, id); delErr != nil {
				u.logger.Warn("⚠️ 画像報告の削除に失敗", zap.String("id", id), zap.Error(delErr))
			}
		}
		return err
	}

	message := fmt.Sprintf("Replace image of %s in %s", report.SpotName, report.Region)
	if _, err := u.store.WriteRegion(ctx, path, doc, revision, message); err != nil {
		return documentError(u.logger, "書き込み", report.Region, err)
	}

	if err := u.reports.Delete(ctx, id); err != nil {
		u.logger.Warn("⚠️ 画像報告の削除に失敗", zap.String("id", id), zap.Error(err))
	}

	u.logger.Info("✅ 画像報告を反映", zap.String("id", id), zap.String("spot", report.SpotName), zap.String("approver", identity.UserID))

	u.publisher.notify(ctx, report.ReporterID, "画像の報告が反映されました",
		fmt.Sprintf("「%s」の画像を差し替えました", report.SpotName))
	u.publisher.announce(ctx, "スポット画像を更新しました",
		fmt.Sprintf("%sの「%s」の画像を差し替えました", report.Region, report.SpotName), report.Region, report.SpotName)
	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
