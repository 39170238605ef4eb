package model

// EditRequestType は編集リクエストの種類
const (
	EditRequestTypeEdit   = "edit"
	EditRequestTypeDelete = "delete"
)

// RequestStatus は編集リクエストの状態。pendingからのみ遷移し、その後は変更しない
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// 画像候補選定のパラメータ
const (
	MaxImageCandidates   = 3
	ImageSearchResultNum = 10
	ImageSearchSuffix    = "official"
)

// DefaultAreaCoordinate は既存位置が無い場合の新エリア表示位置（地図の中央）
const DefaultAreaCoordinate = 50.0

// GoogleMapsSearchURL はスポット名検索用のGoogle Maps URL
const GoogleMapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// AnnouncementLimit はお知らせ一覧の件数
const (
	DefaultAnnouncementLimit = 20
	MaxAnnouncementLimit     = 100
)

// RequestTypeNameMap はリクエスト種別から日本語名へのマッピング
var RequestTypeNameMap = map[string]string{
	EditRequestTypeEdit:   "編集",
	EditRequestTypeDelete: "削除",
}

// GetRequestTypeJapaneseName はリクエスト種別の日本語名を取得する
func GetRequestTypeJapaneseName(requestType string) string {
	if name, ok := RequestTypeNameMap[requestType]; ok {
		return name
	}
	return requestType
}

// IsValidEditRequestType は編集リクエスト種別として有効か判定する
func IsValidEditRequestType(requestType string) bool {
	_, ok := RequestTypeNameMap[requestType]
	return ok
}
