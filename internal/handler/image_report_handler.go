package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
	"TravelSpot-App/internal/usecase"
)

// ImageReportHandler は画像誤り報告APIのハンドラー
type ImageReportHandler struct {
	imageReportUseCase usecase.ImageReportUseCase
	logger             *zap.Logger
}

// NewImageReportHandler は新しいImageReportHandlerインスタンスを作成
func NewImageReportHandler(imageReportUseCase usecase.ImageReportUseCase, logger *zap.Logger) *ImageReportHandler {
	return &ImageReportHandler{imageReportUseCase: imageReportUseCase, logger: logger}
}

// PostFindCandidates は報告画像を除いた差し替え候補を返す
// POST /image-reports/candidates
func (h *ImageReportHandler) PostFindCandidates(c *gin.Context) {
	var req model.FindImageCandidatesRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	candidates, err := h.imageReportUseCase.FindCandidates(c.Request.Context(), &req)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// PostImageReport は画像の誤りを報告する
// POST /image-reports
func (h *ImageReportHandler) PostImageReport(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	var req model.SubmitImageReportRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	report, err := h.imageReportUseCase.Submit(c.Request.Context(), identity, &req)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// GetImageReports は未処理の報告一覧を返す
// GET /admin/image-reports
func (h *ImageReportHandler) GetImageReports(c *gin.Context) {
	reports, err := h.imageReportUseCase.List(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": reports,
		"count":   len(reports),
	})
}

// PostResolveImageReport は報告を処理する
// POST /admin/image-reports/:id/resolve
func (h *ImageReportHandler) PostResolveImageReport(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	var req model.ResolveImageReportRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	if err := h.imageReportUseCase.Resolve(c.Request.Context(), identity, c.Param("id"), &req); err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolved": true, "approved": req.Approve})
}
