package service

import (
	"fmt"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
)

// AddArea はエリアが未登録なら追加する。所要時間は双方向に登録する。
// 追加した場合はtrueを返す
func AddArea(doc *model.RegionDocument, name string, position *model.Position, transit map[string]string) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: エリア名が空です", apperror.ErrInvalidArgument)
	}
	if doc.HasArea(name) {
		return false, nil
	}

	pos := DefaultAreaPosition(doc.Areas)
	if position != nil {
		pos = clampPosition(*position)
	}

	for other := range transit {
		if other == name {
			return false, fmt.Errorf("%w: 自身への所要時間は登録できません: %s", apperror.ErrInvalidArgument, name)
		}
		if !doc.HasArea(other) {
			return false, fmt.Errorf("%w: 所要時間の相手エリアが存在しません: %s", apperror.ErrInvalidArgument, other)
		}
	}

	doc.Areas = append(doc.Areas, model.AreaPosition{Name: name, X: pos.X, Y: pos.Y})

	if len(transit) > 0 && doc.TransitTimes == nil {
		doc.TransitTimes = map[string]map[string]string{}
	}
	for other, duration := range transit {
		setTransit(doc, name, other, duration)
		setTransit(doc, other, name, duration)
	}
	return true, nil
}

func setTransit(doc *model.RegionDocument, from, to, duration string) {
	if doc.TransitTimes[from] == nil {
		doc.TransitTimes[from] = map[string]string{}
	}
	doc.TransitTimes[from][to] = duration
}

// AddSpot はスポットを追加する。同名スポットはErrConflict、未登録エリアはErrInvalidArgument
func AddSpot(doc *model.RegionDocument, spot model.Spot) error {
	if spot.Name == "" {
		return fmt.Errorf("%w: スポット名が空です", apperror.ErrInvalidArgument)
	}
	if doc.FindSpot(spot.Name) >= 0 {
		return fmt.Errorf("%w: スポット %s は既に登録されています", apperror.ErrConflict, spot.Name)
	}
	if !doc.HasArea(spot.Area) {
		return fmt.Errorf("%w: エリア %s は登録されていません", apperror.ErrInvalidArgument, spot.Area)
	}
	doc.Spots = append(doc.Spots, spot)
	return nil
}

// ApplySpotChanges は編集内容をスポットに反映する
func ApplySpotChanges(doc *model.RegionDocument, name string, changes *model.SpotChanges) error {
	idx := doc.FindSpot(name)
	if idx < 0 {
		return fmt.Errorf("%w: スポット %s", apperror.ErrNotFound, name)
	}
	if changes.IsEmpty() {
		return fmt.Errorf("%w: 変更内容が空です", apperror.ErrInvalidArgument)
	}
	if changes.Area != nil && !doc.HasArea(*changes.Area) {
		return fmt.Errorf("%w: エリア %s は登録されていません", apperror.ErrInvalidArgument, *changes.Area)
	}

	spot := &doc.Spots[idx]
	if changes.Description != nil {
		spot.Description = *changes.Description
	}
	if changes.Category != nil {
		spot.Category = *changes.Category
	}
	if changes.Tags != nil {
		spot.Tags = append([]string(nil), (*changes.Tags)...)
	}
	if changes.URL != nil {
		spot.URL = *changes.URL
	}
	if changes.Image != nil {
		spot.Image = *changes.Image
	}
	if changes.Area != nil {
		spot.Area = *changes.Area
	}
	return nil
}

// RemoveSpot はスポットを削除する
func RemoveSpot(doc *model.RegionDocument, name string) error {
	idx := doc.FindSpot(name)
	if idx < 0 {
		return fmt.Errorf("%w: スポット %s", apperror.ErrNotFound, name)
	}
	doc.Spots = append(doc.Spots[:idx], doc.Spots[idx+1:]...)
	return nil
}

// SetSpotImage はスポット画像と出典を差し替える
func SetSpotImage(doc *model.RegionDocument, name, image, source, sourceURL string) error {
	idx := doc.FindSpot(name)
	if idx < 0 {
		return fmt.Errorf("%w: スポット %s", apperror.ErrNotFound, name)
	}
	spot := &doc.Spots[idx]
	spot.Image = image
	spot.ImageSource = source
	spot.ImageSourceURL = sourceURL
	return nil
}
