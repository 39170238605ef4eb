package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// FirestoreNotificationRepository users/{uid}/notifications に通知を保存する
type FirestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &FirestoreNotificationRepository{client: client}
}

func (r *FirestoreNotificationRepository) inbox(userID string) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID).Collection("notifications")
}

func (r *FirestoreNotificationRepository) Create(ctx context.Context, userID string, n *model.Notification) error {
	if userID == "" {
		return fmt.Errorf("%w: 通知先ユーザーが空です", apperror.ErrInvalidArgument)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if _, err := r.inbox(userID).Doc(n.ID).Set(ctx, n); err != nil {
		return firestoreError(err, "通知 "+n.ID)
	}
	return nil
}

// ListByUser は新しい順に最大limit件を返す
func (r *FirestoreNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	query := r.inbox(userID).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	notifications := []model.Notification{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, firestoreError(err, "通知一覧")
		}
		var n model.Notification
		if err := doc.DataTo(&n); err != nil {
			return nil, fmt.Errorf("%w: データの変換に失敗しました: %v", apperror.ErrInternal, err)
		}
		n.ID = doc.Ref.ID
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkRead は既読にする。存在しなければErrNotFound
func (r *FirestoreNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	_, err := r.inbox(userID).Doc(id).Update(ctx, []firestore.Update{{Path: "read", Value: true}})
	if err != nil {
		return firestoreError(err, "通知 "+id)
	}
	return nil
}
