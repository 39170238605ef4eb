package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler は死活監視のハンドラー
type HealthHandler struct {
	service string
}

// NewHealthHandler は新しいHealthHandlerを作成
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service}
}

// GetHealth はサーバーの稼働状況を返す
// GET /health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   h.service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
