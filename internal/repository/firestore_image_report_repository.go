package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

const imageReportsCollection = "imageReports"

// FirestoreImageReportRepository Firestoreを使用した画像誤り報告リポジトリ
type FirestoreImageReportRepository struct {
	client *firestore.Client
}

func NewFirestoreImageReportRepository(client *firestore.Client) repository.ImageReportRepository {
	return &FirestoreImageReportRepository{client: client}
}

func (r *FirestoreImageReportRepository) Create(ctx context.Context, report *model.ImageReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if _, err := r.client.Collection(imageReportsCollection).Doc(report.ID).Create(ctx, report); err != nil {
		return firestoreError(err, "画像報告 "+report.ID)
	}
	return nil
}

func (r *FirestoreImageReportRepository) GetByID(ctx context.Context, id string) (*model.ImageReport, error) {
	doc, err := r.client.Collection(imageReportsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError(err, "画像報告 "+id)
	}
	return decodeImageReport(doc)
}

// List は未解決の報告を作成日時の昇順で返す
func (r *FirestoreImageReportRepository) List(ctx context.Context) ([]model.ImageReport, error) {
	iter := r.client.Collection(imageReportsCollection).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	reports := []model.ImageReport{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, firestoreError(err, "画像報告一覧")
		}
		report, err := decodeImageReport(doc)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].CreatedAt.Before(reports[j].CreatedAt) })
	return reports, nil
}

// Delete は報告を削除する。存在しなければErrNotFound
func (r *FirestoreImageReportRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(imageReportsCollection).Doc(id)
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		return firestoreError(err, "画像報告 "+id)
	}
	return nil
}

func decodeImageReport(doc *firestore.DocumentSnapshot) (*model.ImageReport, error) {
	var report model.ImageReport
	if err := doc.DataTo(&report); err != nil {
		return nil, fmt.Errorf("%w: データの変換に失敗しました: %v", apperror.ErrInternal, err)
	}
	report.ID = doc.Ref.ID
	return &report, nil
}
