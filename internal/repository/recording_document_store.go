package repository

import (
	"context"

	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/repository"
)

// RecordingDocumentStore は書き込み成功時に変更履歴を記録する地域ドキュメントストア
type RecordingDocumentStore struct {
	inner  repository.RegionDocumentRepository
	log    repository.ChangeLogRepository
	logger *zap.Logger
}

// NewRecordingDocumentStore はストアを変更履歴付きでラップする。changeLogがnilならそのまま返す
func NewRecordingDocumentStore(inner repository.RegionDocumentRepository, changeLog repository.ChangeLogRepository, logger *zap.Logger) repository.RegionDocumentRepository {
	if changeLog == nil {
		return inner
	}
	return &RecordingDocumentStore{inner: inner, log: changeLog, logger: logger}
}

func (s *RecordingDocumentStore) FetchRegion(ctx context.Context, path string) (*model.RegionDocument, string, error) {
	return s.inner.FetchRegion(ctx, path)
}

// WriteRegion は書き込み後に履歴を記録する。履歴の失敗は書き込み結果に影響しない
func (s *RecordingDocumentStore) WriteRegion(ctx context.Context, path string, doc *model.RegionDocument, revision, message string) (string, error) {
	newRevision, err := s.inner.WriteRegion(ctx, path, doc, revision, message)
	if err != nil {
		return "", err
	}

	entry := &model.ChangeLogEntry{
		Path:             path,
		PreviousRevision: revision,
		NewRevision:      newRevision,
		Message:          message,
	}
	if err := s.log.Record(ctx, entry); err != nil {
		s.logger.Warn("⚠️ 変更履歴の記録に失敗", zap.String("path", path), zap.Error(err))
	}
	return newRevision, nil
}
