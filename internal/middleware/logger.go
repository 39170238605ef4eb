package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger はリクエストごとにメソッド、パス、ステータス、所要時間を記録する
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if identity, ok := CurrentIdentity(c); ok {
			fields = append(fields, zap.String("user", identity.UserID))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.Error("❌ リクエスト完了", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("⚠️ リクエスト完了", fields...)
		default:
			logger.Info("✅ リクエスト完了", fields...)
		}
	}
}
