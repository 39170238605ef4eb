package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	testAdmin = &model.Identity{UserID: "admin-1", IsAdmin: true}
	testUser  = &model.Identity{UserID: "user-1"}
)

// withIdentity は認証済みの呼び出し元を設定するテスト用ミドルウェア
func withIdentity(identity *model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity != nil {
			middleware.SetIdentity(c, identity)
		}
		c.Next()
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if buf.Len() > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doChunked はContent-Lengthを付けずにボディを送る
func doChunked(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, io.MultiReader(strings.NewReader(body)))
	require.Equal(t, int64(-1), req.ContentLength)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// MockSpotUseCase はSpotUseCaseのモック
type MockSpotUseCase struct {
	mock.Mock
}

func (m *MockSpotUseCase) GenerateSpotInfo(ctx context.Context, req *model.GenerateSpotInfoRequest) (*model.GeneratedSpotInfo, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GeneratedSpotInfo), args.Error(1)
}

func (m *MockSpotUseCase) ApproveSpot(ctx context.Context, identity *model.Identity, req *model.ApproveSpotRequest) (*model.ApproveSpotResponse, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ApproveSpotResponse), args.Error(1)
}

// MockEditRequestUseCase はEditRequestUseCaseのモック
type MockEditRequestUseCase struct {
	mock.Mock
}

func (m *MockEditRequestUseCase) Submit(ctx context.Context, identity *model.Identity, req *model.SubmitEditRequest) (*model.EditRequest, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EditRequest), args.Error(1)
}

func (m *MockEditRequestUseCase) ListPending(ctx context.Context) ([]model.EditRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EditRequest), args.Error(1)
}

func (m *MockEditRequestUseCase) Approve(ctx context.Context, identity *model.Identity, id string) (*model.EditRequest, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EditRequest), args.Error(1)
}

func (m *MockEditRequestUseCase) Reject(ctx context.Context, identity *model.Identity, id, reason string) (*model.EditRequest, error) {
	args := m.Called(ctx, identity, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EditRequest), args.Error(1)
}

// MockImageReportUseCase はImageReportUseCaseのモック
type MockImageReportUseCase struct {
	mock.Mock
}

func (m *MockImageReportUseCase) FindCandidates(ctx context.Context, req *model.FindImageCandidatesRequest) ([]model.ImageCandidate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImageCandidate), args.Error(1)
}

func (m *MockImageReportUseCase) Submit(ctx context.Context, identity *model.Identity, req *model.SubmitImageReportRequest) (*model.ImageReport, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageReport), args.Error(1)
}

func (m *MockImageReportUseCase) List(ctx context.Context) ([]model.ImageReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImageReport), args.Error(1)
}

func (m *MockImageReportUseCase) Resolve(ctx context.Context, identity *model.Identity, id string, req *model.ResolveImageReportRequest) error {
	args := m.Called(ctx, identity, id, req)
	return args.Error(0)
}

// MockImageUpdateUseCase はImageUpdateUseCaseのモック
type MockImageUpdateUseCase struct {
	mock.Mock
}

func (m *MockImageUpdateUseCase) CountCandidates(ctx context.Context, region string) (*model.ImageUpdateCountResult, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageUpdateCountResult), args.Error(1)
}

func (m *MockImageUpdateUseCase) ProposeUpdates(ctx context.Context, region string) (*model.ImageUpdateProposalResult, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageUpdateProposalResult), args.Error(1)
}

func (m *MockImageUpdateUseCase) ConfirmUpdates(ctx context.Context, identity *model.Identity, proposals []model.ImageUpdateProposal) (*model.ImageUpdateConfirmResult, error) {
	args := m.Called(ctx, identity, proposals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageUpdateConfirmResult), args.Error(1)
}

// MockNotificationUseCase はNotificationUseCaseのモック
type MockNotificationUseCase struct {
	mock.Mock
}

func (m *MockNotificationUseCase) ListNotifications(ctx context.Context, identity *model.Identity) ([]model.Notification, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationUseCase) MarkRead(ctx context.Context, identity *model.Identity, id string) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *MockNotificationUseCase) ListAnnouncements(ctx context.Context, limit int) ([]model.Announcement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Announcement), args.Error(1)
}
