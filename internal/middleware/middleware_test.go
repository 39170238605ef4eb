package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
)

type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*model.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Identity), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticateAndRequireAdmin(t *testing.T) {
	logger := zaptest.NewLogger(t)
	verifier := new(MockIdentityVerifier)
	verifier.On("Verify", mock.Anything, "user-token").Return(&model.Identity{UserID: "user-1"}, nil)
	verifier.On("Verify", mock.Anything, "admin-token").Return(&model.Identity{UserID: "admin-1", IsAdmin: true}, nil)
	verifier.On("Verify", mock.Anything, "bad-token").Return(nil, fmt.Errorf("%w: invalid JWT", apperror.ErrUnauthenticated))

	router := gin.New()
	router.GET("/me", Authenticate(verifier, logger), func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, identity)
	})
	router.GET("/admin", Authenticate(verifier, logger), RequireAdmin(logger), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
		code   string
	}{
		{"一般ユーザー", "/me", "Bearer user-token", http.StatusOK, ""},
		{"ヘッダーなし", "/me", "", http.StatusUnauthorized, apperror.CodeUnauthenticated},
		{"Bearer以外", "/me", "Basic abc", http.StatusUnauthorized, apperror.CodeUnauthenticated},
		{"無効なトークン", "/me", "Bearer bad-token", http.StatusUnauthorized, apperror.CodeUnauthenticated},
		{"管理者", "/admin", "Bearer admin-token", http.StatusNoContent, ""},
		{"管理者以外", "/admin", "Bearer user-token", http.StatusForbidden, apperror.CodePermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decodeError(t, w).Error)
			}
		})
	}
}

func TestAbortWithError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"入力不正は本文を返す", fmt.Errorf("%w: spotNameは必須です", apperror.ErrInvalidArgument), http.StatusBadRequest, apperror.CodeInvalidArgument, "invalid argument: spotNameは必須です"},
		{"NotFound", fmt.Errorf("%w: スポット", apperror.ErrNotFound), http.StatusNotFound, apperror.CodeNotFound, "not found: スポット"},
		{"Conflict", apperror.ErrConflict, http.StatusConflict, apperror.CodeConflict, "conflict"},
		{"AI応答不正は固定文言", fmt.Errorf("%w: secret detail", apperror.ErrMalformedAIResponse), http.StatusBadGateway, apperror.CodeMalformedAIResponse, messageMalformedAIResponse},
		{"分類なしは内部エラー", errors.New("db password leaked"), http.StatusInternalServerError, apperror.CodeInternal, messageInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/x", func(c *gin.Context) { AbortWithError(c, zaptest.NewLogger(t), tt.err) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.code, resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestTimeout(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger(zaptest.NewLogger(t)))
	router.GET("/x", Timeout(50*time.Millisecond), func(c *gin.Context) {
		deadline, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(50*time.Millisecond), deadline, 50*time.Millisecond)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
