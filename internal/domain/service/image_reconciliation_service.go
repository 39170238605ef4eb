package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// スキップ理由
const (
	skipReasonFetchFailed  = "地域ドキュメントの取得に失敗"
	skipReasonWriteFailed  = "地域ドキュメントの書き込みに失敗"
	skipReasonSearchFailed = "画像候補の検索に失敗"
	skipReasonNoCandidate  = "画像候補なし"
	skipReasonSpotMissing  = "スポットが見つからない"
	skipReasonStaleImage   = "画像が提案時から変更されている"
)

// ImageReconciliationService は地域横断で画像の更新要否を判定し、差し替えを提案・反映する
type ImageReconciliationService struct {
	catalog        *RegionCatalog
	store          repository.RegionDocumentRepository
	heuristic      repository.ImageUpdateClassifier
	selector       *CandidateSelector
	maxConcurrency int
	logger         *zap.Logger
}

func NewImageReconciliationService(
	catalog *RegionCatalog,
	store repository.RegionDocumentRepository,
	heuristic repository.ImageUpdateClassifier,
	selector *CandidateSelector,
	maxConcurrency int,
	logger *zap.Logger,
) *ImageReconciliationService {
	return &ImageReconciliationService{
		catalog:        catalog,
		store:          store,
		heuristic:      heuristic,
		selector:       selector,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

type regionScan struct {
	flagged []model.Spot
	skipped []model.SkippedUnit
}

// scanRegion は地域ドキュメントを取得し、画像更新が必要なスポットを地域内の順序で返す
func (s *ImageReconciliationService) scanRegion(ctx context.Context, region string) ([]model.Spot, error) {
	path, err := s.catalog.PathOf(region)
	if err != nil {
		return nil, err
	}
	doc, _, err := s.store.FetchRegion(ctx, path)
	if err != nil {
		return nil, err
	}

	verdicts := RunBounded(ctx, s.maxConcurrency, len(doc.Spots), func(ctx context.Context, i int) (bool, error) {
		return s.heuristic.NeedsUpdate(ctx, &doc.Spots[i]), nil
	})

	var flagged []model.Spot
	for i, v := range verdicts {
		if v.Err == nil && v.Value {
			flagged = append(flagged, doc.Spots[i])
		}
	}
	return flagged, nil
}

func (s *ImageReconciliationService) scanRegions(ctx context.Context, regions []string) []regionScan {
	outcomes := RunBounded(ctx, s.maxConcurrency, len(regions), func(ctx context.Context, i int) ([]model.Spot, error) {
		return s.scanRegion(ctx, regions[i])
	})

	scans := make([]regionScan, len(regions))
	for i, o := range outcomes {
		if o.Err != nil {
			s.logger.Warn("⚠️ 地域ドキュメントの取得に失敗したためスキップ",
				zap.String("region", regions[i]), zap.Error(o.Err))
			scans[i].skipped = []model.SkippedUnit{{Region: regions[i], Reason: skipReasonFetchFailed}}
			continue
		}
		scans[i].flagged = o.Value
	}
	return scans
}

// CountCandidates は地域ごとに画像更新が必要なスポット数を数える。regionが空なら全地域
func (s *ImageReconciliationService) CountCandidates(ctx context.Context, region string) (*model.ImageUpdateCountResult, error) {
	regions, err := s.catalog.Resolve(region)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.logger.Info("🚀 画像更新対象の集計開始", zap.Strings("regions", regions))

	result := &model.ImageUpdateCountResult{
		Counts:  map[string]int{},
		Skipped: []model.SkippedUnit{},
	}
	for i, scan := range s.scanRegions(ctx, regions) {
		if len(scan.skipped) > 0 {
			result.Skipped = append(result.Skipped, scan.skipped...)
			continue
		}
		result.Counts[regions[i]] = len(scan.flagged)
		result.Total += len(scan.flagged)
	}

	s.logger.Info("✅ 画像更新対象の集計完了",
		zap.Int("total", result.Total),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// ProposeUpdates は画像更新が必要なスポットごとに差し替え画像を提案する。regionが空なら全地域
func (s *ImageReconciliationService) ProposeUpdates(ctx context.Context, region string) (*model.ImageUpdateProposalResult, error) {
	regions, err := s.catalog.Resolve(region)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	s.logger.Info("🚀 画像差し替え提案の作成開始", zap.Strings("regions", regions))

	result := &model.ImageUpdateProposalResult{
		Proposals: []model.ImageUpdateProposal{},
		Skipped:   []model.SkippedUnit{},
	}

	var targets []model.ImageUpdateProposal
	for i, scan := range s.scanRegions(ctx, regions) {
		result.Skipped = append(result.Skipped, scan.skipped...)
		for _, spot := range scan.flagged {
			targets = append(targets, model.ImageUpdateProposal{
				Region:   regions[i],
				SpotName: spot.Name,
				OldImage: spot.Image,
			})
		}
	}

	outcomes := RunBounded(ctx, s.maxConcurrency, len(targets), func(ctx context.Context, i int) ([]model.ImageCandidate, error) {
		return s.selector.SelectCandidates(ctx, targets[i].SpotName, targets[i].OldImage)
	})

	for i, o := range outcomes {
		target := targets[i]
		if o.Err != nil {
			s.logger.Warn("⚠️ 画像候補の検索に失敗したためスキップ",
				zap.String("region", target.Region), zap.String("spot", target.SpotName), zap.Error(o.Err))
			result.Skipped = append(result.Skipped, model.SkippedUnit{Region: target.Region, SpotName: target.SpotName, Reason: skipReasonSearchFailed})
			continue
		}
		if len(o.Value) == 0 {
			s.logger.Warn("⚠️ 画像候補が見つからないためスキップ",
				zap.String("region", target.Region), zap.String("spot", target.SpotName))
			result.Skipped = append(result.Skipped, model.SkippedUnit{Region: target.Region, SpotName: target.SpotName, Reason: skipReasonNoCandidate})
			continue
		}

		primary := o.Value[0]
		target.NewImage = primary.URL
		target.NewSource = primary.DisplayDomain
		target.NewSourceURL = primary.PageURL
		target.Candidates = o.Value
		result.Proposals = append(result.Proposals, target)
	}

	s.logger.Info("✅ 画像差し替え提案の作成完了",
		zap.Int("proposals", len(result.Proposals)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

type documentUpdate struct {
	region  string
	updates []model.ImageUpdateProposal
}

type documentOutcome struct {
	applied int
	skipped []model.SkippedUnit
}

// ConfirmUpdates は承認済みの提案を地域ドキュメントごとにまとめて1回で書き込む。
// ドキュメント単位の失敗は他のドキュメントに影響しない
func (s *ImageReconciliationService) ConfirmUpdates(ctx context.Context, proposals []model.ImageUpdateProposal) (*model.ImageUpdateConfirmResult, error) {
	if len(proposals) == 0 {
		return nil, fmt.Errorf("%w: 反映する提案がありません", apperror.ErrInvalidArgument)
	}

	var groups []*documentUpdate
	index := map[string]*documentUpdate{}
	for _, p := range proposals {
		if _, err := s.catalog.PathOf(p.Region); err != nil {
			return nil, err
		}
		if p.SpotName == "" || p.NewImage == "" {
			return nil, fmt.Errorf("%w: spotNameとnewImageは必須です", apperror.ErrInvalidArgument)
		}
		g, ok := index[p.Region]
		if !ok {
			g = &documentUpdate{region: p.Region}
			index[p.Region] = g
			groups = append(groups, g)
		}
		g.updates = append(g.updates, p)
	}

	start := time.Now()
	s.logger.Info("🚀 画像差し替えの反映開始", zap.Int("documents", len(groups)), zap.Int("proposals", len(proposals)))

	outcomes := RunBounded(ctx, s.maxConcurrency, len(groups), func(ctx context.Context, i int) (documentOutcome, error) {
		return s.confirmDocument(ctx, groups[i])
	})

	result := &model.ImageUpdateConfirmResult{
		UpdatedRegions: []string{},
		Skipped:        []model.SkippedUnit{},
	}
	for i, o := range outcomes {
		g := groups[i]
		if o.Err != nil {
			reason := skipReasonWriteFailed
			if o.Value.applied < 0 {
				reason = skipReasonFetchFailed
			}
			s.logger.Warn("⚠️ 地域ドキュメントの更新に失敗したためスキップ",
				zap.String("region", g.region), zap.Error(o.Err))
			for _, u := range g.updates {
				result.Skipped = append(result.Skipped, model.SkippedUnit{Region: g.region, SpotName: u.SpotName, Reason: reason})
			}
			continue
		}
		result.Skipped = append(result.Skipped, o.Value.skipped...)
		if o.Value.applied > 0 {
			result.UpdatedDocuments++
			result.UpdatedSpots += o.Value.applied
			result.UpdatedRegions = append(result.UpdatedRegions, g.region)
		}
	}

	s.logger.Info("✅ 画像差し替えの反映完了",
		zap.Int("updatedDocuments", result.UpdatedDocuments),
		zap.Int("updatedSpots", result.UpdatedSpots),
		zap.Int("skipped", len(result.Skipped)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// confirmDocument は1ドキュメント分を反映する。取得失敗時はapplied=-1
func (s *ImageReconciliationService) confirmDocument(ctx context.Context, g *documentUpdate) (documentOutcome, error) {
	path, err := s.catalog.PathOf(g.region)
	if err != nil {
		return documentOutcome{applied: -1}, err
	}
	doc, revision, err := s.store.FetchRegion(ctx, path)
	if err != nil {
		return documentOutcome{applied: -1}, err
	}

	var out documentOutcome
	for _, u := range g.updates {
		idx := doc.FindSpot(u.SpotName)
		if idx < 0 {
			out.skipped = append(out.skipped, model.SkippedUnit{Region: g.region, SpotName: u.SpotName, Reason: skipReasonSpotMissing})
			continue
		}
		if doc.Spots[idx].Image != u.OldImage {
			out.skipped = append(out.skipped, model.SkippedUnit{Region: g.region, SpotName: u.SpotName, Reason: skipReasonStaleImage})
			continue
		}
		if err := SetSpotImage(doc, u.SpotName, u.NewImage, u.NewSource, u.NewSourceURL); err != nil {
			return documentOutcome{}, err
		}
		out.applied++
	}

	if out.applied == 0 {
		return out, nil
	}

	message := fmt.Sprintf("Update spot images in %s (%d spots)", g.region, out.applied)
	if _, err := s.store.WriteRegion(ctx, path, doc, revision, message); err != nil {
		return documentOutcome{}, err
	}
	return out, nil
}
