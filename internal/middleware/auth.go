package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

const identityKey = "identity"

// Authenticate はBearerトークンを検証し、呼び出し元をコンテキストに設定する
func Authenticate(verifier repository.IdentityVerifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			AbortWithError(c, logger, fmt.Errorf("%w: Authorizationヘッダーがありません", apperror.ErrUnauthenticated))
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			AbortWithError(c, logger, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin は管理者以外を拒否する。Authenticateの後に置く
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			AbortWithError(c, logger, fmt.Errorf("%w: 認証されていません", apperror.ErrUnauthenticated))
			return
		}
		if !identity.IsAdmin {
			logger.Warn("⚠️ 管理者以外からの管理操作を拒否", zap.String("user", identity.UserID), zap.String("path", c.FullPath()))
			AbortWithError(c, logger, fmt.Errorf("%w: 管理者権限が必要です", apperror.ErrPermissionDenied))
			return
		}
		c.Next()
	}
}

// CurrentIdentity は認証済みの呼び出し元を返す
func CurrentIdentity(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok && identity != nil
}

// SetIdentity は呼び出し元を設定する
func SetIdentity(c *gin.Context, identity *model.Identity) {
	c.Set(identityKey, identity)
}
