package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
)

// SupabaseVerifier はSupabase Authでアクセストークンを検証する
type SupabaseVerifier struct {
	auth   gotrue.Client
	admins map[string]bool
}

// NewSupabaseVerifier は検証器を作成する。adminsに含まれるユーザーは常に管理者
func NewSupabaseVerifier(auth gotrue.Client, admins map[string]bool) *SupabaseVerifier {
	if admins == nil {
		admins = map[string]bool{}
	}
	return &SupabaseVerifier{auth: auth, admins: admins}
}

// Verify はトークンに対応するユーザーを取得する
func (v *SupabaseVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: アクセストークンがありません", apperror.ErrUnauthenticated)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInternal, err)
	}

	user, err := v.auth.WithToken(token).GetUser()
	if err != nil {
		return nil, fmt.Errorf("%w: トークンの検証に失敗: %v", apperror.ErrUnauthenticated, err)
	}

	id := user.ID.String()
	return &model.Identity{
		UserID:  id,
		Email:   user.Email,
		IsAdmin: v.admins[id] || isAdminMetadata(user.AppMetadata),
	}, nil
}

// isAdminMetadata はapp_metadataの管理者フラグを判定する（role=admin または admin=true）
func isAdminMetadata(meta map[string]interface{}) bool {
	if meta == nil {
		return false
	}
	if role, ok := meta["role"].(string); ok && role == "admin" {
		return true
	}
	if admin, ok := meta["admin"].(bool); ok && admin {
		return true
	}
	return false
}
