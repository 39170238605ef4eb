package model

import "encoding/json"

// Spot は地域ドキュメント内の観光スポット。地域内ではNameで識別する
type Spot struct {
	Name           string   `json:"name"`                     // スポット名
	Region         string   `json:"region,omitempty"`         // 地域名
	Area           string   `json:"area"`                     // エリア名（地域ドキュメントのareasに存在すること）
	Category       string   `json:"category"`                 // カテゴリ
	Description    string   `json:"description"`              // 説明文
	Tags           []string `json:"tags,omitempty"`           // タグ
	URL            string   `json:"url,omitempty"`            // 公式サイト等のURL
	Gmaps          string   `json:"gmaps,omitempty"`          // Google MapsのURL
	Image          string   `json:"image"`                    // 画像URL（空文字は画像なし）
	ImageSource    string   `json:"imageSource,omitempty"`    // 画像の出典名
	ImageSourceURL string   `json:"imageSourceUrl,omitempty"` // 画像の出典ページURL

	// Extra は上記以外のキー。書き戻す際にそのまま残す
	Extra map[string]json.RawMessage `json:"-" firestore:"-"`
}

// HasImage は画像が設定されているか判定する
func (s *Spot) HasImage() bool {
	return s.Image != ""
}

// AreaPosition はエリアの地図上の表示位置（地図に対する百分率）
type AreaPosition struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Position は表示位置のみ
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RegionDocument は地域ごとのJSONドキュメント
type RegionDocument struct {
	RegionName   string                       `json:"regionName"`
	Spots        []Spot                       `json:"spots"`
	Areas        []AreaPosition               `json:"areas"`
	TransitTimes map[string]map[string]string `json:"transitTimes"` // from -> to -> 所要時間

	Extra map[string]json.RawMessage `json:"-"`
}

// FindSpot はスポット名からインデックスを返す。見つからなければ-1
func (d *RegionDocument) FindSpot(name string) int {
	for i := range d.Spots {
		if d.Spots[i].Name == name {
			return i
		}
	}
	return -1
}

// HasArea はエリアが登録済みか判定する
func (d *RegionDocument) HasArea(name string) bool {
	for _, a := range d.Areas {
		if a.Name == name {
			return true
		}
	}
	return false
}

// AreaNames はエリア名を登録順に返す
func (d *RegionDocument) AreaNames() []string {
	names := make([]string, len(d.Areas))
	for i, a := range d.Areas {
		names[i] = a.Name
	}
	return names
}

// SpotChanges は編集リクエストで変更するフィールド。nilは変更なし
type SpotChanges struct {
	Description *string   `json:"description,omitempty" firestore:"description,omitempty"`
	Category    *string   `json:"category,omitempty" firestore:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty" firestore:"tags,omitempty"`
	URL         *string   `json:"url,omitempty" firestore:"url,omitempty"`
	Image       *string   `json:"image,omitempty" firestore:"image,omitempty"`
	Area        *string   `json:"area,omitempty" firestore:"area,omitempty"`
}

// IsEmpty は変更内容が空か判定する
func (c *SpotChanges) IsEmpty() bool {
	return c == nil || (c.Description == nil && c.Category == nil && c.Tags == nil &&
		c.URL == nil && c.Image == nil && c.Area == nil)
}
