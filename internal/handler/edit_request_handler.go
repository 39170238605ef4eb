package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
	"TravelSpot-App/internal/usecase"
)

// EditRequestHandler は編集・削除リクエストAPIのハンドラー
type EditRequestHandler struct {
	editRequestUseCase usecase.EditRequestUseCase
	logger             *zap.Logger
}

// NewEditRequestHandler は新しいEditRequestHandlerインスタンスを作成
func NewEditRequestHandler(editRequestUseCase usecase.EditRequestUseCase, logger *zap.Logger) *EditRequestHandler {
	return &EditRequestHandler{editRequestUseCase: editRequestUseCase, logger: logger}
}

// PostEditRequest はスポットの編集・削除リクエストを送信する
// POST /edit-requests
func (h *EditRequestHandler) PostEditRequest(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	var req model.SubmitEditRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	created, err := h.editRequestUseCase.Submit(c.Request.Context(), identity, &req)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetPendingEditRequests は未処理のリクエスト一覧を返す
// GET /admin/edit-requests
func (h *EditRequestHandler) GetPendingEditRequests(c *gin.Context) {
	requests, err := h.editRequestUseCase.ListPending(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// PostApproveEditRequest はリクエストを承認して地域ドキュメントに反映する
// POST /admin/edit-requests/:id/approve
func (h *EditRequestHandler) PostApproveEditRequest(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		middleware.AbortWithError(c, h.logger, &ValidationError{Field: "id", Message: "リクエストIDは必須です"})
		return
	}

	approved, err := h.editRequestUseCase.Approve(c.Request.Context(), identity, id)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, approved)
}

// PostRejectEditRequest はリクエストを却下する
// POST /admin/edit-requests/:id/reject
func (h *EditRequestHandler) PostRejectEditRequest(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		middleware.AbortWithError(c, h.logger, &ValidationError{Field: "id", Message: "リクエストIDは必須です"})
		return
	}

	// 理由は任意なので空ボディも許容する
	var req model.RejectRequest
	if !bindOptionalJSON(c, h.logger, &req) {
		return
	}

	rejected, err := h.editRequestUseCase.Reject(c.Request.Context(), identity, id, req.Reason)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, rejected)
}
