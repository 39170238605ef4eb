package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/testutil"
)

func TestNotificationUseCase(t *testing.T) {
	ctx := context.Background()
	notifications := testutil.NewMemoryNotificationRepository()
	announcements := &testutil.MemoryAnnouncementRepository{}
	uc := NewNotificationUseCase(notifications, announcements)

	n := &model.Notification{Title: "承認", CreatedAt: time.Now()}
	require.NoError(t, notifications.Create(ctx, "user-1", n))
	require.NoError(t, notifications.Create(ctx, "user-2", &model.Notification{Title: "他人宛"}))

	items, err := uc.ListNotifications(ctx, user)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "承認", items[0].Title)

	require.NoError(t, uc.MarkRead(ctx, user, n.ID))
	items, err = uc.ListNotifications(ctx, user)
	require.NoError(t, err)
	assert.True(t, items[0].Read)

	assert.ErrorIs(t, uc.MarkRead(ctx, &model.Identity{UserID: "user-2"}, n.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, uc.MarkRead(ctx, user, ""), apperror.ErrInvalidArgument)

	for i := 0; i < 25; i++ {
		require.NoError(t, announcements.Create(ctx, &model.Announcement{Title: "お知らせ", CreatedAt: time.Now().Add(time.Duration(i) * time.Second)}))
	}
	recent, err := uc.ListAnnouncements(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, model.DefaultAnnouncementLimit)

	recent, err = uc.ListAnnouncements(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	_, err = uc.ListAnnouncements(ctx, 101)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
}
