package service

import (
	"math"

	"github.com/paulmach/orb"

	"TravelSpot-App/internal/domain/model"
)

// areaBound は既存エリアの表示位置を囲む境界ボックス。エリアが無ければfalse
func areaBound(areas []model.AreaPosition) (orb.Bound, bool) {
	if len(areas) == 0 {
		return orb.Bound{}, false
	}
	points := make(orb.MultiPoint, len(areas))
	for i, a := range areas {
		points[i] = orb.Point{a.X, a.Y}
	}
	return points.Bound(), true
}

// DefaultAreaPosition は新エリアの既定表示位置。既存位置の境界ボックスの中心、無ければ地図中央
func DefaultAreaPosition(areas []model.AreaPosition) model.Position {
	bound, ok := areaBound(areas)
	if !ok {
		return model.Position{X: model.DefaultAreaCoordinate, Y: model.DefaultAreaCoordinate}
	}
	center := bound.Center()
	return model.Position{X: roundCoordinate(center.X()), Y: roundCoordinate(center.Y())}
}

// clampPosition は表示位置を0〜100に収める
func clampPosition(p model.Position) model.Position {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 100}}
	pt := orb.Point{p.X, p.Y}
	if bound.Contains(pt) {
		return p
	}
	return model.Position{
		X: math.Min(math.Max(p.X, bound.Min.X()), bound.Max.X()),
		Y: math.Min(math.Max(p.Y, bound.Min.Y()), bound.Max.Y()),
	}
}

func roundCoordinate(v float64) float64 {
	return math.Round(v*10) / 10
}
