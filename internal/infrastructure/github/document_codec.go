package github

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"TravelSpot-App/internal/domain/model"
)

// documentCodec は地域JSONの読み書き用。マップのキーは整列して出力する
var documentCodec = sonic.Config{SortMapKeys: true, EscapeHTML: false}.Froze()

// documentFormat はjson.MarshalIndentと同じ2スペース字下げ。短い配列も1行にまとめない
var documentFormat = &pretty.Options{Indent: "  "}

var (
	documentKeys = knownKeys(reflect.TypeOf(model.RegionDocument{}))
	spotKeys     = knownKeys(reflect.TypeOf(model.Spot{}))
)

// knownKeys は構造体のjsonタグからキー名を集める。照合は大文字小文字を区別しない
func knownKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		keys[strings.ToLower(name)] = struct{}{}
	}
	return keys
}

// decodeDocument は地域JSONを読み込み、モデルに無いキーをExtraに退避する
func decodeDocument(raw []byte) (*model.RegionDocument, error) {
	var doc model.RegionDocument
	if err := documentCodec.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(raw)
	doc.Extra = unknownFields(root, documentKeys)
	spots := root.Get("spots").Array()
	for i := range doc.Spots {
		if i < len(spots) {
			doc.Spots[i].Extra = unknownFields(spots[i], spotKeys)
		}
	}
	return &doc, nil
}

func unknownFields(obj gjson.Result, known map[string]struct{}) map[string]json.RawMessage {
	if !obj.IsObject() {
		return nil
	}
	var extra map[string]json.RawMessage
	obj.ForEach(func(key, value gjson.Result) bool {
		if _, ok := known[strings.ToLower(key.String())]; ok {
			return true
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return extra
}

// encodeDocument はモデルを書き出し、退避していたキーを元の位置（ドキュメント直下・各スポット）に戻す
func encodeDocument(doc *model.RegionDocument) ([]byte, error) {
	encoded, err := documentCodec.Marshal(doc)
	if err != nil {
		return nil, err
	}

	encoded, err = restoreFields(encoded, "", doc.Extra)
	if err != nil {
		return nil, err
	}
	for i := range doc.Spots {
		encoded, err = restoreFields(encoded, fmt.Sprintf("spots.%d.", i), doc.Spots[i].Extra)
		if err != nil {
			return nil, err
		}
	}

	// 末尾の改行はpretty側で付く
	return pretty.PrettyOptions(encoded, documentFormat), nil
}

func restoreFields(encoded []byte, prefix string, extra map[string]json.RawMessage) ([]byte, error) {
	var err error
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		encoded, err = sjson.SetRawBytes(encoded, prefix+escapeKey(key), extra[key])
		if err != nil {
			return nil, fmt.Errorf("キー %q の書き戻しに失敗: %w", key, err)
		}
	}
	return encoded, nil
}

// escapeKey はパス記法で特別な意味を持つ文字をエスケープする
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@', '!', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
