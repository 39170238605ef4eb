// Package testutil はテスト用のインメモリ実装を提供する
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
)

// StubTextGenerator は関数で応答を差し替えられるテキスト生成のスタブ
type StubTextGenerator struct {
	Fn func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (s *StubTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.Fn == nil {
		return "", fmt.Errorf("%w: stub not configured", apperror.ErrInternal)
	}
	return s.Fn(ctx, prompt)
}

// Prompts は受け取ったプロンプトのコピーを返す
func (s *StubTextGenerator) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// StubImageSearcher はクエリごとの検索結果を返すスタブ
type StubImageSearcher struct {
	Results map[string][]model.ImageSearchResult
	Errors  map[string]error

	mu      sync.Mutex
	queries []string
}

func (s *StubImageSearcher) SearchImages(ctx context.Context, query string, maxResults int) ([]model.ImageSearchResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.mu.Unlock()
	if err, ok := s.Errors[query]; ok {
		return nil, err
	}
	results := s.Results[query]
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return append([]model.ImageSearchResult(nil), results...), nil
}

// Queries は受け取ったクエリのコピーを返す
func (s *StubImageSearcher) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// RelevanceFunc は関数をImageRelevanceClassifierとして使う
type RelevanceFunc func(imageURL, spotName string) bool

func (f RelevanceFunc) IsAppropriate(ctx context.Context, imageURL, spotName string) bool {
	return f(imageURL, spotName)
}

// UpdateFunc は関数をImageUpdateClassifierとして使う
type UpdateFunc func(spot *model.Spot) bool

func (f UpdateFunc) NeedsUpdate(ctx context.Context, spot *model.Spot) bool {
	return f(spot)
}

type storedDocument struct {
	data     []byte
	revision int
}

// MemoryDocumentStore はリビジョン検査を行うインメモリの地域ドキュメントストア
type MemoryDocumentStore struct {
	mu         sync.Mutex
	docs       map[string]*storedDocument
	FetchErrs  map[string]error
	WriteErrs  map[string]error
	writeCount map[string]int
	messages   []string
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		docs:       map[string]*storedDocument{},
		FetchErrs:  map[string]error{},
		WriteErrs:  map[string]error{},
		writeCount: map[string]int{},
	}
}

// Put はドキュメントを初期配置する
func (m *MemoryDocumentStore) Put(path string, doc *model.RegionDocument) {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[path] = &storedDocument{data: data, revision: 1}
}

// Get はドキュメントの現在の内容を返す
func (m *MemoryDocumentStore) Get(path string) *model.RegionDocument {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.docs[path]
	if !ok {
		return nil
	}
	var doc model.RegionDocument
	if err := json.Unmarshal(stored.data, &doc); err != nil {
		panic(err)
	}
	return &doc
}

// WriteCount はパスごとの書き込み成功回数
func (m *MemoryDocumentStore) WriteCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writeCount[path]
}

// Messages はコミットメッセージの一覧
func (m *MemoryDocumentStore) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.messages...)
}

func (m *MemoryDocumentStore) FetchRegion(ctx context.Context, path string) (*model.RegionDocument, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.FetchErrs[path]; ok {
		return nil, "", err
	}
	stored, ok := m.docs[path]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", apperror.ErrNotFound, path)
	}
	var doc model.RegionDocument
	if err := json.Unmarshal(stored.data, &doc); err != nil {
		return nil, "", err
	}
	return &doc, revisionToken(stored.revision), nil
}

func (m *MemoryDocumentStore) WriteRegion(ctx context.Context, path string, doc *model.RegionDocument, revision, message string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.WriteErrs[path]; ok {
		return "", err
	}
	stored, ok := m.docs[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperror.ErrNotFound, path)
	}
	if revisionToken(stored.revision) != revision {
		return "", fmt.Errorf("%w: %s のリビジョンが古い", apperror.ErrConflict, path)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	stored.data = data
	stored.revision++
	m.writeCount[path]++
	m.messages = append(m.messages, message)
	return revisionToken(stored.revision), nil
}

func revisionToken(n int) string {
	return "rev-" + strconv.Itoa(n)
}

// MemoryEditRequestRepository はインメモリの編集リクエストリポジトリ
type MemoryEditRequestRepository struct {
	mu       sync.Mutex
	requests map[string]model.EditRequest
}

func NewMemoryEditRequestRepository() *MemoryEditRequestRepository {
	return &MemoryEditRequestRepository{requests: map[string]model.EditRequest{}}
}

func (r *MemoryEditRequestRepository) Create(ctx context.Context, req *model.EditRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	r.requests[req.ID] = *req
	return nil
}

func (r *MemoryEditRequestRepository) GetByID(ctx context.Context, id string) (*model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: 編集リクエスト %s", apperror.ErrNotFound, id)
	}
	return &req, nil
}

func (r *MemoryEditRequestRepository) ListByStatus(ctx context.Context, status string) ([]model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.EditRequest
	for _, req := range r.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *MemoryEditRequestRepository) Transition(ctx context.Context, id, status, reviewerID, note string) (*model.EditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, fmt.Errorf("%w: 編集リクエスト %s", apperror.ErrNotFound, id)
	}
	if req.Status != model.RequestStatusPending {
		return nil, fmt.Errorf("%w: 編集リクエスト %s は処理済みです", apperror.ErrConflict, id)
	}
	now := time.Now()
	req.Status = status
	req.ReviewerID = reviewerID
	req.ReviewNote = note
	req.ReviewedAt = &now
	r.requests[id] = req
	return &req, nil
}

// MemoryImageReportRepository はインメモリの画像報告リポジトリ
type MemoryImageReportRepository struct {
	mu      sync.Mutex
	reports map[string]model.ImageReport
}

func NewMemoryImageReportRepository() *MemoryImageReportRepository {
	return &MemoryImageReportRepository{reports: map[string]model.ImageReport{}}
}

func (r *MemoryImageReportRepository) Create(ctx context.Context, report *model.ImageReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	r.reports[report.ID] = *report
	return nil
}

func (r *MemoryImageReportRepository) GetByID(ctx context.Context, id string) (*model.ImageReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: 画像報告 %s", apperror.ErrNotFound, id)
	}
	return &report, nil
}

func (r *MemoryImageReportRepository) List(ctx context.Context) ([]model.ImageReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]model.ImageReport, 0, len(r.reports))
	for _, report := range r.reports {
		result = append(result, report)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *MemoryImageReportRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[id]; !ok {
		return fmt.Errorf("%w: 画像報告 %s", apperror.ErrNotFound, id)
	}
	delete(r.reports, id)
	return nil
}

// MemoryNotificationRepository はインメモリの通知リポジトリ
type MemoryNotificationRepository struct {
	mu    sync.Mutex
	inbox map[string][]model.Notification
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{inbox: map[string][]model.Notification{}}
}

func (r *MemoryNotificationRepository) Create(ctx context.Context, userID string, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	r.inbox[userID] = append(r.inbox[userID], *n)
	return nil
}

func (r *MemoryNotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]model.Notification(nil), r.inbox[userID]...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *MemoryNotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.inbox[userID] {
		if r.inbox[userID][i].ID == id {
			r.inbox[userID][i].Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: 通知 %s", apperror.ErrNotFound, id)
}

// MemoryAnnouncementRepository はインメモリのお知らせリポジトリ
type MemoryAnnouncementRepository struct {
	mu    sync.Mutex
	items []model.Announcement
	Err   error
}

func (r *MemoryAnnouncementRepository) Create(ctx context.Context, a *model.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.items = append(r.items, *a)
	return nil
}

func (r *MemoryAnnouncementRepository) ListRecent(ctx context.Context, limit int) ([]model.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := append([]model.Announcement(nil), r.items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// MemoryChangeLogRepository はインメモリの変更履歴リポジトリ
type MemoryChangeLogRepository struct {
	mu      sync.Mutex
	Entries []model.ChangeLogEntry
	Err     error
}

func (r *MemoryChangeLogRepository) Record(ctx context.Context, entry *model.ChangeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Entries = append(r.Entries, *entry)
	return nil
}
