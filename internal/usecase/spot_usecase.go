package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/domain/service"
)

type SpotUseCase interface {
	// GenerateSpotInfo はスポット名とURLからAIでスポット情報を生成する
	GenerateSpotInfo(ctx context.Context, req *model.GenerateSpotInfoRequest) (*model.GeneratedSpotInfo, error)

	// ApproveSpot は新規スポット（必要なら新エリアも）を地域ドキュメントに1回の書き込みで追加する
	ApproveSpot(ctx context.Context, identity *model.Identity, req *model.ApproveSpotRequest) (*model.ApproveSpotResponse, error)
}

type spotUseCaseImpl struct {
	generator repository.SpotInfoGenerationRepository
	store     repository.RegionDocumentRepository
	catalog   *service.RegionCatalog
	publisher *changePublisher
	logger    *zap.Logger
}

func NewSpotUseCase(
	generator repository.SpotInfoGenerationRepository,
	store repository.RegionDocumentRepository,
	catalog *service.RegionCatalog,
	announcements repository.AnnouncementRepository,
	logger *zap.Logger,
) SpotUseCase {
	return &spotUseCaseImpl{
		generator: generator,
		store:     store,
		catalog:   catalog,
		publisher: newChangePublisher(nil, announcements, logger),
		logger:    logger,
	}
}

func (u *spotUseCaseImpl) GenerateSpotInfo(ctx context.Context, req *model.GenerateSpotInfoRequest) (*model.GeneratedSpotInfo, error) {
	req.SpotName = strings.TrimSpace(req.SpotName)
	req.SpotURL = strings.TrimSpace(req.SpotURL)
	if req.SpotName == "" || req.SpotURL == "" {
		return nil, fmt.Errorf("%w: spotNameとspotUrlは必須です", apperror.ErrInvalidArgument)
	}

	u.logger.Info("🤖 スポット情報の生成開始", zap.String("spot", req.SpotName))

	draft, err := u.generator.GenerateSpotDraft(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("スポット情報の生成に失敗: %w", err)
	}

	_, known := req.AreaPositions[draft.Region][draft.Area]
	info := &model.GeneratedSpotInfo{
		Spot: model.Spot{
			Name:        req.SpotName,
			Region:      draft.Region,
			Area:        draft.Area,
			Category:    draft.Category,
			Description: draft.Description,
			Tags:        restrictTags(draft.Tags, req.StandardTags),
			URL:         req.SpotURL,
			Gmaps:       mapsSearchURL(req.SpotName),
		},
		IsNewArea: !known,
	}

	u.logger.Info("✅ スポット情報の生成完了",
		zap.String("spot", info.Name),
		zap.String("region", info.Region),
		zap.String("area", info.Area),
		zap.Bool("newArea", info.IsNewArea))
	return info, nil
}

// restrictTags は標準タグに含まれるタグのみを重複なしで残す
func restrictTags(tags, standard []string) []string {
	allowed := make(map[string]bool, len(standard))
	for _, t := range standard {
		allowed[t] = true
	}
	seen := map[string]bool{}
	result := []string{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if allowed[t] && !seen[t] {
			seen[t] = true
			result = append(result, t)
		}
	}
	return result
}

func mapsSearchURL(spotName string) string {
	return model.GoogleMapsSearchURL + url.QueryEscape(spotName)
}

func (u *spotUseCaseImpl) ApproveSpot(ctx context.Context, identity *model.Identity, req *model.ApproveSpotRequest) (*model.ApproveSpotResponse, error) {
	spot := req.Spot
	spot.Name = strings.TrimSpace(spot.Name)
	if spot.Name == "" || spot.Region == "" || spot.Area == "" {
		return nil, fmt.Errorf("%w: spot.name, spot.region, spot.areaは必須です", apperror.ErrInvalidArgument)
	}

	path, err := u.catalog.PathOf(spot.Region)
	if err != nil {
		return nil, err
	}

	doc, revision, err := u.store.FetchRegion(ctx, path)
	if err != nil {
		return nil, documentError(u.logger, "取得", spot.Region, err)
	}

	newArea := false
	if req.IsNewArea {
		newArea, err = service.AddArea(doc, spot.Area, req.NewAreaPosition, req.NewTransitData)
		if err != nil {
			return nil, err
		}
	}

	if spot.Gmaps == "" {
		spot.Gmaps = mapsSearchURL(spot.Name)
	}
	if err := service.AddSpot(doc, spot); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Add spot %s to %s", spot.Name, spot.Region)
	if newArea {
		message = fmt.Sprintf("Add spot %s and area %s to %s", spot.Name, spot.Area, spot.Region)
	}
	newRevision, err := u.store.WriteRegion(ctx, path, doc, revision, message)
	if err != nil {
		return nil, documentError(u.logger, "書き込み", spot.Region, err)
	}

	u.logger.Info("✅ スポットを追加",
		zap.String("region", spot.Region),
		zap.String("spot", spot.Name),
		zap.Bool("newArea", newArea),
		zap.String("approver", identity.UserID))

	u.publisher.announce(ctx,
		"新しいスポットを追加しました",
		fmt.Sprintf("%sの%sに「%s」を追加しました", spot.Region, spot.Area, spot.Name),
		spot.Region, spot.Name)

	return &model.ApproveSpotResponse{
		Region:   spot.Region,
		SpotName: spot.Name,
		AreaName: spot.Area,
		NewArea:  newArea,
		Revision: newRevision,
	}, nil
}
