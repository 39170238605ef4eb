package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/middleware"
	"TravelSpot-App/internal/usecase"
)

// NotificationHandler は通知とお知らせAPIのハンドラー
type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *zap.Logger
}

// NewNotificationHandler は新しいNotificationHandlerインスタンスを作成
func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notificationUseCase: notificationUseCase, logger: logger}
}

// GetNotifications は呼び出し元の通知一覧を返す
// GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	notifications, err := h.notificationUseCase.ListNotifications(c.Request.Context(), identity)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// PostMarkRead は通知を既読にする
// POST /notifications/:id/read
func (h *NotificationHandler) PostMarkRead(c *gin.Context) {
	identity, ok := requireIdentity(c, h.logger)
	if !ok {
		return
	}

	if err := h.notificationUseCase.MarkRead(c.Request.Context(), identity, c.Param("id")); err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAnnouncements は公開のお知らせを新しい順に返す
// GET /announcements?limit=20
func (h *NotificationHandler) GetAnnouncements(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.AbortWithError(c, h.logger, &ValidationError{Field: "limit", Message: "整数で指定してください"})
			return
		}
		limit = parsed
	}

	announcements, err := h.notificationUseCase.ListAnnouncements(c.Request.Context(), limit)
	if err != nil {
		middleware.AbortWithError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}
