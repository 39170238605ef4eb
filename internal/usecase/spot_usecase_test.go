package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"TravelSpot-App/internal/config"
	"TravelSpot-App/internal/domain/apperror"
	"TravelSpot-App/internal/domain/model"
	"TravelSpot-App/internal/domain/service"
	"TravelSpot-App/internal/infrastructure/ai"
	"TravelSpot-App/internal/testutil"
)

var (
	admin = &model.Identity{UserID: "admin-1", IsAdmin: true}
	user  = &model.Identity{UserID: "user-1"}
)

func newCatalog() *service.RegionCatalog {
	return service.NewRegionCatalog([]config.RegionFile{
		{Name: "Tokyo", Path: "data/tokyo.json"},
		{Name: "Osaka", Path: "data/osaka.json"},
	})
}

func newTokyoStore() *testutil.MemoryDocumentStore {
	store := testutil.NewMemoryDocumentStore()
	store.Put("data/tokyo.json", &model.RegionDocument{
		RegionName: "Tokyo",
		Spots: []model.Spot{
			{Name: "Shibuya Sky", Region: "Tokyo", Area: "Shibuya", Category: "展望台", Image: "https://example.com/sky.jpg"},
		},
		Areas:        []model.AreaPosition{{Name: "Shibuya", X: 40, Y: 60}},
		TransitTimes: map[string]map[string]string{},
	})
	return store
}

func TestSpotUseCase_GenerateSpotInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("タグは標準タグに限定しGoogle MapsのURLを付与する", func(t *testing.T) {
		gen := &testutil.StubTextGenerator{Fn: func(ctx context.Context, prompt string) (string, error) {
			return "```json\n{\"name\":\"Example Cafe\",\"region\":\"Tokyo\",\"area\":\"Shibuya\",\"category\":\"カフェ\",\"description\":\"渋谷の静かなカフェ\",\"tags\":[\"dessert\",\"night-view\",\"dessert\"]}\n```", nil
		}}
		logger := zaptest.NewLogger(t)
		uc := NewSpotUseCase(ai.NewGeminiSpotInfoRepository(gen, logger), newTokyoStore(), newCatalog(), &testutil.MemoryAnnouncementRepository{}, logger)

		standardTags := []string{"dessert", "coffee"}
		info, err := uc.GenerateSpotInfo(ctx, &model.GenerateSpotInfoRequest{
			SpotName:      "Example Cafe",
			SpotURL:       "https://example.com",
			StandardTags:  standardTags,
			AreaPositions: map[string]map[string]model.Position{"Tokyo": {"Shibuya": {X: 40, Y: 60}}},
		})
		require.NoError(t, err)

		assert.Equal(t, "Example Cafe", info.Name)
		assert.Equal(t, "Tokyo", info.Region)
		assert.Equal(t, "Shibuya", info.Area)
		assert.Subset(t, standardTags, info.Tags)
		assert.Equal(t, []string{"dessert"}, info.Tags)
		assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Example+Cafe", info.Gmaps)
		assert.Equal(t, "https://example.com", info.URL)
		assert.False(t, info.IsNewArea)
	})

	t.Run("未登録エリアはisNewArea", func(t *testing.T) {
		gen := &testutil.StubTextGenerator{Fn: func(ctx context.Context, prompt string) (string, error) {
			return `{"name":"Tocho","region":"Tokyo","area":"Shinjuku","category":"展望台","description":"都庁","tags":[]}`, nil
		}}
		logger := zaptest.NewLogger(t)
		uc := NewSpotUseCase(ai.NewGeminiSpotInfoRepository(gen, logger), newTokyoStore(), newCatalog(), nil, logger)

		info, err := uc.GenerateSpotInfo(ctx, &model.GenerateSpotInfoRequest{
			SpotName:      "Tocho",
			SpotURL:       "https://www.metro.tokyo.lg.jp",
			AreaPositions: map[string]map[string]model.Position{"Tokyo": {"Shibuya": {X: 40, Y: 60}}},
		})
		require.NoError(t, err)
		assert.True(t, info.IsNewArea)
		assert.Empty(t, info.Tags)
	})

	t.Run("AI応答の形式不正", func(t *testing.T) {
		gen := &testutil.StubTextGenerator{Fn: func(ctx context.Context, prompt string) (string, error) {
			return "生成できませんでした", nil
		}}
		logger := zaptest.NewLogger(t)
		uc := NewSpotUseCase(ai.NewGeminiSpotInfoRepository(gen, logger), newTokyoStore(), newCatalog(), nil, logger)

		_, err := uc.GenerateSpotInfo(ctx, &model.GenerateSpotInfoRequest{SpotName: "Example Cafe", SpotURL: "https://example.com"})
		assert.ErrorIs(t, err, apperror.ErrMalformedAIResponse)
	})

	t.Run("必須項目の欠落", func(t *testing.T) {
		uc := NewSpotUseCase(nil, newTokyoStore(), newCatalog(), nil, zaptest.NewLogger(t))
		_, err := uc.GenerateSpotInfo(ctx, &model.GenerateSpotInfoRequest{SpotName: " ", SpotURL: "https://example.com"})
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})
}

func TestSpotUseCase_ApproveSpot(t *testing.T) {
	ctx := context.Background()

	t.Run("新エリアと所要時間を双方向に追加する", func(t *testing.T) {
		store := newTokyoStore()
		announcements := &testutil.MemoryAnnouncementRepository{}
		uc := NewSpotUseCase(nil, store, newCatalog(), announcements, zaptest.NewLogger(t))

		resp, err := uc.ApproveSpot(ctx, admin, &model.ApproveSpotRequest{
			Spot:           model.Spot{Name: "Tocho", Region: "Tokyo", Area: "Shinjuku", Category: "展望台"},
			IsNewArea:      true,
			NewTransitData: map[string]string{"Shibuya": "20min"},
		})
		require.NoError(t, err)
		assert.True(t, resp.NewArea)
		assert.Equal(t, "rev-2", resp.Revision)

		doc := store.Get("data/tokyo.json")
		assert.Equal(t, []string{"Shibuya", "Shinjuku"}, doc.AreaNames())
		assert.Equal(t, "20min", doc.TransitTimes["Shibuya"]["Shinjuku"])
		assert.Equal(t, "20min", doc.TransitTimes["Shinjuku"]["Shibuya"])
		require.Len(t, doc.Spots, 2)
		assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Tocho", doc.Spots[1].Gmaps)
		assert.Equal(t, 1, store.WriteCount("data/tokyo.json"))

		recent, err := announcements.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, "Tocho", recent[0].SpotName)
	})

	t.Run("既存エリアへの追加", func(t *testing.T) {
		store := newTokyoStore()
		uc := NewSpotUseCase(nil, store, newCatalog(), nil, zaptest.NewLogger(t))

		resp, err := uc.ApproveSpot(ctx, admin, &model.ApproveSpotRequest{
			Spot: model.Spot{Name: "Hachiko", Region: "Tokyo", Area: "Shibuya"},
		})
		require.NoError(t, err)
		assert.False(t, resp.NewArea)
		assert.Len(t, store.Get("data/tokyo.json").Areas, 1)
	})

	tests := []struct {
		name string
		req  *model.ApproveSpotRequest
		want error
	}{
		{"同名スポットはConflict", &model.ApproveSpotRequest{Spot: model.Spot{Name: "Shibuya Sky", Region: "Tokyo", Area: "Shibuya"}}, apperror.ErrConflict},
		{"未登録エリアはInvalidArgument", &model.ApproveSpotRequest{Spot: model.Spot{Name: "Tocho", Region: "Tokyo", Area: "Shinjuku"}}, apperror.ErrInvalidArgument},
		{"未知の地域はInvalidArgument", &model.ApproveSpotRequest{Spot: model.Spot{Name: "Tocho", Region: "Nagoya", Area: "Sakae"}}, apperror.ErrInvalidArgument},
		{"地域ドキュメントが無ければNotFound", &model.ApproveSpotRequest{Spot: model.Spot{Name: "Castle", Region: "Osaka", Area: "Chuo"}}, apperror.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTokyoStore()
			uc := NewSpotUseCase(nil, store, newCatalog(), nil, zaptest.NewLogger(t))
			_, err := uc.ApproveSpot(ctx, admin, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, store.WriteCount("data/tokyo.json"))
		})
	}

	t.Run("書き込み競合はConflictのまま返す", func(t *testing.T) {
		store := newTokyoStore()
		store.WriteErrs["data/tokyo.json"] = apperror.ErrConflict
		uc := NewSpotUseCase(nil, store, newCatalog(), nil, zaptest.NewLogger(t))
		_, err := uc.ApproveSpot(ctx, admin, &model.ApproveSpotRequest{Spot: model.Spot{Name: "Hachiko", Region: "Tokyo", Area: "Shibuya"}})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("お知らせの失敗は結果に影響しない", func(t *testing.T) {
		store := newTokyoStore()
		announcements := &testutil.MemoryAnnouncementRepository{Err: apperror.ErrInternal}
		uc := NewSpotUseCase(nil, store, newCatalog(), announcements, zaptest.NewLogger(t))
		_, err := uc.ApproveSpot(ctx, admin, &model.ApproveSpotRequest{Spot: model.Spot{Name: "Hachiko", Region: "Tokyo", Area: "Shibuya"}})
		require.NoError(t, err)
	})
}

func TestRestrictTags(t *testing.T) {
	assert.Equal(t, []string{"coffee", "dessert"}, restrictTags([]string{"coffee", " dessert", "ramen", "coffee"}, []string{"dessert", "coffee"}))
	assert.Equal(t, []string{}, restrictTags([]string{"ramen"}, nil))
}
