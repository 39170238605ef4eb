package model

import "time"

// EditRequest はユーザーから送信されたスポットの編集・削除リクエスト
type EditRequest struct {
	ID          string       `json:"id" firestore:"-"`
	Type        string       `json:"type" firestore:"type"` // "edit" or "delete"
	Region      string       `json:"region" firestore:"region"`
	SpotName    string       `json:"spotName" firestore:"spotName"`
	Changes     *SpotChanges `json:"changes,omitempty" firestore:"changes,omitempty"`
	Reason      string       `json:"reason" firestore:"reason"`
	Status      string       `json:"status" firestore:"status"`
	RequesterID string       `json:"requesterId" firestore:"requesterId"`
	ReviewerID  string       `json:"reviewerId,omitempty" firestore:"reviewerId,omitempty"`
	ReviewNote  string       `json:"reviewNote,omitempty" firestore:"reviewNote,omitempty"`
	CreatedAt   time.Time    `json:"createdAt" firestore:"createdAt"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty" firestore:"reviewedAt,omitempty"`
}

// ImageReport はスポット画像の誤り報告。解決時に削除される
type ImageReport struct {
	ID                 string    `json:"id" firestore:"-"`
	Region             string    `json:"region" firestore:"region"`
	SpotName           string    `json:"spotName" firestore:"spotName"`
	ReportedImage      string    `json:"reportedImage" firestore:"reportedImage"`
	CandidateImage     string    `json:"candidateImage,omitempty" firestore:"candidateImage,omitempty"`
	CandidateSource    string    `json:"candidateSource,omitempty" firestore:"candidateSource,omitempty"`
	CandidateSourceURL string    `json:"candidateSourceUrl,omitempty" firestore:"candidateSourceUrl,omitempty"`
	Reason             string    `json:"reason" firestore:"reason"`
	ReporterID         string    `json:"reporterId" firestore:"reporterId"`
	CreatedAt          time.Time `json:"createdAt" firestore:"createdAt"`
}

// Notification はユーザーごとの通知
type Notification struct {
	ID        string    `json:"id" firestore:"-"`
	Title     string    `json:"title" firestore:"title"`
	Body      string    `json:"body" firestore:"body"`
	Read      bool      `json:"read" firestore:"read"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

// Announcement は公開の変更履歴。追記のみ
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Region    string    `json:"region,omitempty"`
	SpotName  string    `json:"spot_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangeLogEntry は地域ドキュメントのコミット履歴
type ChangeLogEntry struct {
	Path             string    `json:"path" db:"path"`
	PreviousRevision string    `json:"previous_revision" db:"previous_revision"`
	NewRevision      string    `json:"new_revision" db:"new_revision"`
	Message          string    `json:"message" db:"message"`
	CommittedAt      time.Time `json:"committed_at" db:"committed_at"`
}

// Identity は認証済みの呼び出し元
type Identity struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}
