package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/config"
	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/domain/service"
	"TravelSpot-App/internal/handler"
	"TravelSpot-App/internal/infrastructure/ai"
	"TravelSpot-App/internal/infrastructure/auth"
	"TravelSpot-App/internal/infrastructure/database"
	"TravelSpot-App/internal/infrastructure/firestore"
	"TravelSpot-App/internal/infrastructure/github"
	"TravelSpot-App/internal/infrastructure/search"
	infraRepo "TravelSpot-App/internal/repository"
	"TravelSpot-App/internal/router"
	"TravelSpot-App/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("⚠️  環境変数が設定されていません:")
		fmt.Println("\n.envファイルを作成するか、環境変数を設定してください")
		log.Fatal(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// 外部クライアント
	logger.Info("🔧 外部クライアントを初期化しています...")
	// 生成APIへの同時リクエストは全処理で共有の上限に収める
	gemini := ai.NewLimitedGenerator(
		ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel),
		int64(cfg.MaxConcurrency),
	)

	searchClient, err := search.NewCustomSearchClient(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, cfg.SearchEndpoint)
	if err != nil {
		logger.Fatal("❌ 画像検索クライアントの初期化に失敗", zap.Error(err))
	}
	if cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		logger.Warn("⚠️ 画像検索の認証情報が未設定のため、画像候補の検索は失敗します")
	}

	contents := github.NewContentsClient(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch, cfg.GitHubAPIBaseURL)

	fsClient, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentialsFile, logger)
	if err != nil {
		logger.Fatal("❌ Firestoreクライアントの初期化に失敗", zap.Error(err))
	}
	defer fsClient.Close()

	supabaseClient, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if err != nil {
		logger.Fatal("❌ Supabaseクライアントの初期化に失敗", zap.Error(err))
	}
	if err := supabaseClient.HealthCheck(infraRepo.AnnouncementsTable); err != nil {
		logger.Fatal("❌ Supabaseヘルスチェック失敗", zap.Error(err))
	}
	logger.Info("✅ Supabase接続OK")

	// 変更履歴はDATABASE_URLがある場合のみ記録する
	var changeLog repository.ChangeLogRepository
	if cfg.DatabaseURL != "" {
		pgClient, err := database.NewPostgreSQLClient(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("❌ PostgreSQLクライアントの初期化に失敗", zap.Error(err))
		}
		defer pgClient.Close()
		changeLog = infraRepo.NewPostgresChangeLogRepository(pgClient)
		logger.Info("✅ PostgreSQL接続OK（変更履歴を記録します）")
	}

	// リポジトリ
	store := infraRepo.NewRecordingDocumentStore(contents, changeLog, logger)
	editRequests := infraRepo.NewFirestoreEditRequestRepository(fsClient.GetClient())
	imageReports := infraRepo.NewFirestoreImageReportRepository(fsClient.GetClient())
	notifications := infraRepo.NewFirestoreNotificationRepository(fsClient.GetClient())
	announcements := infraRepo.NewSupabaseAnnouncementRepository(supabaseClient)

	// ドメインサービス
	catalog := service.NewRegionCatalog(cfg.RegionFiles)
	spotGenerator := ai.NewGeminiSpotInfoRepository(gemini, logger)
	relevance := ai.NewImageRelevanceFilter(gemini, logger)
	heuristic := ai.NewImageUpdateHeuristic(gemini, logger)
	selector := service.NewCandidateSelector(searchClient, relevance, cfg.MaxConcurrency, logger)
	reconciler := service.NewImageReconciliationService(catalog, store, heuristic, selector, cfg.MaxConcurrency, logger)

	// ユースケース
	spotUseCase := usecase.NewSpotUseCase(spotGenerator, store, catalog, announcements, logger)
	editRequestUseCase := usecase.NewEditRequestUseCase(editRequests, store, catalog, notifications, announcements, logger)
	imageReportUseCase := usecase.NewImageReportUseCase(imageReports, store, catalog, selector, notifications, announcements, logger)
	imageUpdateUseCase := usecase.NewImageUpdateUseCase(reconciler, announcements, logger)
	notificationUseCase := usecase.NewNotificationUseCase(notifications, announcements)

	// ルーター
	r := router.NewRouter(router.RouterDeps{
		ServiceName:         "TravelSpot-App",
		Log:                 logger,
		Verifier:            auth.NewSupabaseVerifier(supabaseClient.GetClient().Auth, cfg.AdminUserIDs),
		RequestTimeout:      cfg.RequestTimeout,
		BatchTimeout:        cfg.BatchTimeout,
		HealthHandler:       handler.NewHealthHandler("TravelSpot-App"),
		SpotHandler:         handler.NewSpotHandler(spotUseCase, logger),
		EditRequestHandler:  handler.NewEditRequestHandler(editRequestUseCase, logger),
		ImageReportHandler:  handler.NewImageReportHandler(imageReportUseCase, logger),
		ImageUpdateHandler:  handler.NewImageUpdateHandler(imageUpdateUseCase, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationUseCase, logger),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("🚀 TravelSpot-App server starting",
			zap.String("port", cfg.Port),
			zap.Strings("regions", catalog.Names()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ サーバーの起動に失敗", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("🛑 シャットダウンしています...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ シャットダウンに失敗", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
		return zap.NewDevelopment()
	}
	gin.SetMode(gin.ReleaseMode)
	return zap.NewProduction()
}
