package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/testutil"
)

type editRequestFixture struct {
	store         *testutil.MemoryDocumentStore
	requests      *testutil.MemoryEditRequestRepository
	notifications *testutil.MemoryNotificationRepository
	announcements *testutil.MemoryAnnouncementRepository
	uc            EditRequestUseCase
}

func newEditRequestFixture(t *testing.T) *editRequestFixture {
	f := &editRequestFixture{
		store:         newTokyoStore(),
		requests:      testutil.NewMemoryEditRequestRepository(),
		notifications: testutil.NewMemoryNotificationRepository(),
		announcements: &testutil.MemoryAnnouncementRepository{},
	}
	f.uc = NewEditRequestUseCase(f.requests, f.store, newCatalog(), f.notifications, f.announcements, zaptest.NewLogger(t))
	return f
}

func TestEditRequestUseCase_Submit(t *testing.T) {
	ctx := context.Background()
	desc := "新しい説明"

	t.Run("pendingで保存する", func(t *testing.T) {
		f := newEditRequestFixture(t)
		req, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{
			Type: model.EditRequestTypeEdit, Region: "Tokyo", SpotName: "Shibuya Sky",
			Changes: &model.SpotChanges{Description: &desc}, Reason: " 古い説明 ",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, req.ID)
		assert.Equal(t, model.RequestStatusPending, req.Status)
		assert.Equal(t, "user-1", req.RequesterID)
		assert.Equal(t, "古い説明", req.Reason)

		pending, err := f.uc.ListPending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, req.ID, pending[0].ID)
	})

	area := "Shinjuku"
	tests := []struct {
		name string
		req  *model.SubmitEditRequest
		want error
	}{
		{"未知の種別", &model.SubmitEditRequest{Type: "rename", Region: "Tokyo", SpotName: "Shibuya Sky"}, apperror.ErrInvalidArgument},
		{"変更内容なしの編集", &model.SubmitEditRequest{Type: model.EditRequestTypeEdit, Region: "Tokyo", SpotName: "Shibuya Sky"}, apperror.ErrInvalidArgument},
		{"未知の地域", &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Nagoya", SpotName: "Shibuya Sky"}, apperror.ErrInvalidArgument},
		{"存在しないスポット", &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Tokyo", SpotName: "Tokyo Tower"}, apperror.ErrNotFound},
		{"未登録エリアへの変更", &model.SubmitEditRequest{Type: model.EditRequestTypeEdit, Region: "Tokyo", SpotName: "Shibuya Sky", Changes: &model.SpotChanges{Area: &area}}, apperror.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEditRequestFixture(t)
			_, err := f.uc.Submit(ctx, user, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEditRequestUseCase_Approve(t *testing.T) {
	ctx := context.Background()
	desc := "渋谷の展望台"

	t.Run("編集を反映し通知とお知らせを作成する", func(t *testing.T) {
		f := newEditRequestFixture(t)
		req, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{
			Type: model.EditRequestTypeEdit, Region: "Tokyo", SpotName: "Shibuya Sky",
			Changes: &model.SpotChanges{Description: &desc},
		})
		require.NoError(t, err)

		approved, err := f.uc.Approve(ctx, admin, req.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusApproved, approved.Status)
		assert.Equal(t, "admin-1", approved.ReviewerID)

		assert.Equal(t, "渋谷の展望台", f.store.Get("data/tokyo.json").Spots[0].Description)

		inbox, err := f.notifications.ListByUser(ctx, "user-1", 10)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Contains(t, inbox[0].Title, "承認")

		recent, err := f.announcements.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, recent, 1)

		_, err = f.uc.Approve(ctx, admin, req.ID)
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Equal(t, 1, f.store.WriteCount("data/tokyo.json"))
	})

	t.Run("削除を反映する", func(t *testing.T) {
		f := newEditRequestFixture(t)
		req, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Tokyo", SpotName: "Shibuya Sky"})
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx, admin, req.ID)
		require.NoError(t, err)
		assert.Empty(t, f.store.Get("data/tokyo.json").Spots)
	})

	t.Run("対象スポットが消えていたら自動却下してNotFound", func(t *testing.T) {
		f := newEditRequestFixture(t)
		first, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Tokyo", SpotName: "Shibuya Sky"})
		require.NoError(t, err)
		second, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{
			Type: model.EditRequestTypeEdit, Region: "Tokyo", SpotName: "Shibuya Sky",
			Changes: &model.SpotChanges{Description: &desc},
		})
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx, admin, first.ID)
		require.NoError(t, err)

		_, err = f.uc.Approve(ctx, admin, second.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		got, err := f.requests.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusRejected, got.Status)
		assert.Equal(t, reviewNoteSpotMissing, got.ReviewNote)
		assert.Equal(t, 1, f.store.WriteCount("data/tokyo.json"))
	})

	t.Run("書き込み競合なら承認しない", func(t *testing.T) {
		f := newEditRequestFixture(t)
		req, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Tokyo", SpotName: "Shibuya Sky"})
		require.NoError(t, err)
		f.store.WriteErrs["data/tokyo.json"] = apperror.ErrConflict

		_, err = f.uc.Approve(ctx, admin, req.ID)
		assert.ErrorIs(t, err, apperror.ErrConflict)

		got, err := f.requests.GetByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RequestStatusPending, got.Status)
	})

	t.Run("存在しないリクエスト", func(t *testing.T) {
		f := newEditRequestFixture(t)
		_, err := f.uc.Approve(ctx, admin, "missing")
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestEditRequestUseCase_Reject(t *testing.T) {
	ctx := context.Background()
	f := newEditRequestFixture(t)

	req, err := f.uc.Submit(ctx, user, &model.SubmitEditRequest{Type: model.EditRequestTypeDelete, Region: "Tokyo", SpotName: "Shibuya Sky"})
	require.NoError(t, err)

	rejected, err := f.uc.Reject(ctx, admin, req.ID, "人気スポットのため")
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusRejected, rejected.Status)
	assert.Equal(t, "人気スポットのため", rejected.ReviewNote)
	assert.Len(t, f.store.Get("data/tokyo.json").Spots, 1)

	inbox, err := f.notifications.ListByUser(ctx, "user-1", 10)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Contains(t, inbox[0].Body, "人気スポットのため")

	_, err = f.uc.Reject(ctx, admin, req.ID, "")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}
