package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
	"TravelSpot-App/internal/usecase"
)

// SpotHandler はスポット追加APIのハンドラー
type SpotHandler struct {
	spotUseCase usecase.SpotUseCase
	logger      *zap.Logger
}

// NewSpotHandler は新しいSpotHandlerインスタンスを作成
func NewSpotHandler(spotUseCase usecase.SpotUseCase, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{spotUseCase: spotUseCase, logger: logger}
}

// PostGenerateSpotInfo はスポット名とURLからスポット情報を生成する
// POST /spots/generate
func (h *SpotHandler) PostGenerateSpotInfo(c *gin.Context) {
	var req model.GenerateSpotInfoRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if req.SpotName == "" {
		middleware.AbortWithError(c, h.logger, &ValidationError{Field: "spotName", Message: "スポット名は必須です"})
		return
	}

	info, err := h.spotUseCase.GenerateSpotInfo(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// PostApproveSpot は生成済みスポットを地域ドキュメントに追加する
// POST /admin/spots/approve
func (h *SpotHandler) PostApproveSpot(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	var req model.ApproveSpotRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if req.Spot.Name == "" {
		middleware.AbortWithError(c, h.logger, &ValidationError{Field: "spot.name", Message: "スポット名は必須です"})
		return
	}
	if req.Spot.Region == "" {
		middleware.AbortWithError(c, h.logger, &ValidationError{Field: "spot.region", Message: "地域は必須です"})
		return
	}

	resp, err := h.spotUseCase.ApproveSpot(c.Request.Context(), identity, &req)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	h.logger.Info("✅ スポットを追加しました",
		zap.String("region", resp.Region),
		zap.String("spot", resp.SpotName),
		zap.Bool("new_area", resp.NewArea))
	c.JSON(http.StatusOK, resp)
}
