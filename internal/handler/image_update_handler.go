package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
	"TravelSpot-App/internal/usecase"
)

// ImageUpdateHandler は管理者向け画像一括更新APIのハンドラー
type ImageUpdateHandler struct {
	imageUpdateUseCase usecase.ImageUpdateUseCase
	logger             *zap.Logger
}

// NewImageUpdateHandler は新しいImageUpdateHandlerインスタンスを作成
func NewImageUpdateHandler(imageUpdateUseCase usecase.ImageUpdateUseCase, logger *zap.Logger) *ImageUpdateHandler {
	return &ImageUpdateHandler{imageUpdateUseCase: imageUpdateUseCase, logger: logger}
}

// bindScope は対象地域を読み取る。ボディ省略時は全地域
func (h *ImageUpdateHandler) bindScope(c *gin.Context) (*model.ImageUpdateScopeRequest, bool) {
	var req model.ImageUpdateScopeRequest
	if !bindOptionalJSON(c, h.logger, &req) {
		return nil, false
	}
	return &req, true
}

// PostCountCandidates は画像更新が必要なスポット数を地域ごとに数える
// POST /admin/images/count
func (h *ImageUpdateHandler) PostCountCandidates(c *gin.Context) {
	req, ok := h.bindScope(c)
	if !ok {
		return
	}

	result, err := h.imageUpdateUseCase.CountCandidates(c.Request.Context(), req.Region)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PostProposeUpdates は画像の差し替え提案を作成する
// POST /admin/images/propose
func (h *ImageUpdateHandler) PostProposeUpdates(c *gin.Context) {
	req, ok := h.bindScope(c)
	if !ok {
		return
	}

	result, err := h.imageUpdateUseCase.ProposeUpdates(c.Request.Context(), req.Region)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PostConfirmUpdates は承認された差し替えを地域ごとに反映する
// POST /admin/images/confirm
func (h *ImageUpdateHandler) PostConfirmUpdates(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	var req model.ConfirmImageUpdatesRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	result, err := h.imageUpdateUseCase.ConfirmUpdates(c.Request.Context(), identity, req.Updates)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
