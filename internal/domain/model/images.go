package model

// ImageSearchResult は画像検索APIの1件分
type ImageSearchResult struct {
	URL           string `json:"url"`
	PageURL       string `json:"pageUrl"`
	DisplayDomain string `json:"displayDomain"`
}

// ImageCandidate は差し替え候補の画像。Verifiedは関連性判定を通過したもの
type ImageCandidate struct {
	URL           string `json:"url"`
	PageURL       string `json:"pageUrl"`
	DisplayDomain string `json:"displayDomain"`
	Verified      bool   `json:"verified"`
}

// ImageUpdateProposal はスポット1件分の画像差し替え提案
type ImageUpdateProposal struct {
	Region       string           `json:"region" binding:"required"`
	SpotName     string           `json:"spotName" binding:"required"`
	OldImage     string           `json:"oldImage"`
	NewImage     string           `json:"newImage" binding:"required"`
	NewSource    string           `json:"newSource"`
	NewSourceURL string           `json:"newSourceUrl"`
	Candidates   []ImageCandidate `json:"candidates,omitempty"`
}

// SkippedUnit はバッチ処理で処理できなかった単位
type SkippedUnit struct {
	Region   string `json:"region"`
	SpotName string `json:"spotName,omitempty"`
	Reason   string `json:"reason"`
}

// ImageUpdateCountResult は更新が必要なスポット数の集計結果
type ImageUpdateCountResult struct {
	Counts  map[string]int `json:"counts"`
	Total   int            `json:"total"`
	Skipped []SkippedUnit  `json:"skipped"`
}

// ImageUpdateProposalResult は画像差し替え提案の一覧
type ImageUpdateProposalResult struct {
	Proposals []ImageUpdateProposal `json:"proposals"`
	Skipped   []SkippedUnit         `json:"skipped"`
}

// ImageUpdateConfirmResult は差し替え反映結果
type ImageUpdateConfirmResult struct {
	UpdatedDocuments int           `json:"updatedDocuments"`
	UpdatedSpots     int           `json:"updatedSpots"`
	UpdatedRegions   []string      `json:"updatedRegions"`
	Skipped          []SkippedUnit `json:"skipped"`
}
