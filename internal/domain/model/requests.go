package model

// GenerateSpotInfoRequest はスポット情報のAI生成リクエスト
type GenerateSpotInfoRequest struct {
	SpotName      string                         `json:"spotName"`
	SpotURL       string                         `json:"spotUrl"`
	StandardTags  []string                       `json:"standardTags"`
	AreaPositions map[string]map[string]Position `json:"areaPositions"` // 地域 -> エリア -> 表示位置
}

// GeneratedSpotDraft はAIが返すスポット情報の下書き。validateタグで応答形式を検証する
type GeneratedSpotDraft struct {
	Name        string   `json:"name" validate:"required"`
	Region      string   `json:"region" validate:"required"`
	Area        string   `json:"area" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"dive,required"`
}

// GeneratedSpotInfo はクライアントへ返すスポット情報
type GeneratedSpotInfo struct {
	Spot
	IsNewArea bool `json:"isNewArea"`
}

// ApproveSpotRequest は新規スポット承認リクエスト
type ApproveSpotRequest struct {
	Spot            Spot              `json:"spot"`
	IsNewArea       bool              `json:"isNewArea"`
	NewAreaPosition *Position         `json:"newAreaPosition"`
	NewTransitData  map[string]string `json:"newTransitData"` // 既存エリア -> 所要時間
}

// ApproveSpotResponse は新規スポット承認結果
type ApproveSpotResponse struct {
	Region   string `json:"region"`
	SpotName string `json:"spotName"`
	AreaName string `json:"areaName"`
	NewArea  bool   `json:"newArea"`
	Revision string `json:"revision"`
}

// SubmitEditRequest は編集・削除リクエストの送信内容
type SubmitEditRequest struct {
	Type     string       `json:"type" binding:"required"`
	Region   string       `json:"region" binding:"required"`
	SpotName string       `json:"spotName" binding:"required"`
	Changes  *SpotChanges `json:"changes"`
	Reason   string       `json:"reason"`
}

// RejectRequest は却下理由
type RejectRequest struct {
	Reason string `json:"reason"`
}

// FindImageCandidatesRequest は報告用の候補画像検索リクエスト
type FindImageCandidatesRequest struct {
	SpotName      string `json:"spotName" binding:"required"`
	ReportedImage string `json:"reportedImage"`
}

// SubmitImageReportRequest は画像誤り報告の送信内容
type SubmitImageReportRequest struct {
	Region             string `json:"region" binding:"required"`
	SpotName           string `json:"spotName" binding:"required"`
	ReportedImage      string `json:"reportedImage" binding:"required"`
	CandidateImage     string `json:"candidateImage"`
	CandidateSource    string `json:"candidateSource"`
	CandidateSourceURL string `json:"candidateSourceUrl"`
	Reason             string `json:"reason"`
}

// ResolveImageReportRequest は画像誤り報告の解決内容
type ResolveImageReportRequest struct {
	Approve  bool   `json:"approve"`
	ImageURL string `json:"imageUrl"`
}

// ImageUpdateScopeRequest は画像更新バッチの対象地域。空なら全地域
type ImageUpdateScopeRequest struct {
	Region string `json:"region"`
}

// ConfirmImageUpdatesRequest は承認済みの差し替え提案
type ConfirmImageUpdatesRequest struct {
	Updates []ImageUpdateProposal `json:"updates" binding:"required,dive"`
}
