package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

const editRequestsCollection = "editRequests"

// FirestoreEditRequestRepository Firestoreを使用した編集リクエストリポジトリ
type FirestoreEditRequestRepository struct {
	client *firestore.Client
}

// NewFirestoreEditRequestRepository 新しいFirestoreEditRequestRepositoryインスタンスを作成
func NewFirestoreEditRequestRepository(client *firestore.Client) repository.EditRequestRepository {
	return &FirestoreEditRequestRepository{
		client: client,
	}
}

// Create は編集リクエストを保存する。IDが空なら採番する
func (r *FirestoreEditRequestRepository) Create(ctx context.Context, req *model.EditRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if _, err := r.client.Collection(editRequestsCollection).Doc(req.ID).Create(ctx, req); err != nil {
		return firestoreError(err, "編集リクエスト "+req.ID)
	}
	return nil
}

func (r *FirestoreEditRequestRepository) GetByID(ctx context.Context, id string) (*model.EditRequest, error) {
	doc, err := r.client.Collection(editRequestsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError(err, "編集リクエスト "+id)
	}
	return decodeEditRequest(doc)
}

// ListByStatus は指定状態のリクエストを作成日時の昇順で返す
func (r *FirestoreEditRequestRepository) ListByStatus(ctx context.Context, status string) ([]model.EditRequest, error) {
	iter := r.client.Collection(editRequestsCollection).Where("status", "==", status).Documents(ctx)
	defer iter.Stop()

	requests := []model.EditRequest{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, firestoreError(err, "編集リクエスト一覧")
		}
		req, err := decodeEditRequest(doc)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}

	// 複合インデックスを避けるため並び替えはメモリ上で行う
	sort.SliceStable(requests, func(i, j int) bool { return requests[i].CreatedAt.Before(requests[j].CreatedAt) })
	return requests, nil
}

// Transition はpendingのリクエストをトランザクション内で遷移させる
func (r *FirestoreEditRequestRepository) Transition(ctx context.Context, id, status, reviewerID, note string) (*model.EditRequest, error) {
	ref := r.client.Collection(editRequestsCollection).Doc(id)

	var updated *model.EditRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return firestoreError(err, "編集リクエスト "+id)
		}
		req, err := decodeEditRequest(doc)
		if err != nil {
			return err
		}
		if req.Status != model.RequestStatusPending {
			return fmt.Errorf("%w: 編集リクエスト %s は処理済みです (%s)", apperror.ErrConflict, id, req.Status)
		}

		now := time.Now().UTC()
		req.Status = status
		req.ReviewerID = reviewerID
		req.ReviewNote = note
		req.ReviewedAt = &now

		updated = req
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: status},
			{Path: "reviewerId", Value: reviewerID},
			{Path: "reviewNote", Value: note},
			{Path: "reviewedAt", Value: now},
		})
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) || errors.Is(err, apperror.ErrNotFound) || errors.Is(err, apperror.ErrInternal) {
			return nil, err
		}
		return nil, firestoreError(err, "編集リクエスト "+id)
	}
	return updated, nil
}

func decodeEditRequest(doc *firestore.DocumentSnapshot) (*model.EditRequest, error) {
	var req model.EditRequest
	if err := doc.DataTo(&req); err != nil {
		return nil, fmt.Errorf("%w: データの変換に失敗しました: %v", apperror.ErrInternal, err)
	}
	req.ID = doc.Ref.ID
	return &req, nil
}
