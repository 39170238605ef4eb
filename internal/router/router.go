package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"TravelSpot-App/internal/domain/repository"
	"TravelSpot-App/internal/handler"
	"TravelSpot-App/internal/middleware"
)

// RouterDeps はルーティングに必要な依存
type RouterDeps struct {
	ServiceName    string
	Log            *zap.Logger
	Verifier       repository.IdentityVerifier
	RequestTimeout time.Duration
	BatchTimeout   time.Duration

	HealthHandler       *handler.HealthHandler
	SpotHandler         *handler.SpotHandler
	EditRequestHandler  *handler.EditRequestHandler
	ImageReportHandler  *handler.ImageReportHandler
	ImageUpdateHandler  *handler.ImageUpdateHandler
	NotificationHandler *handler.NotificationHandler
}

// NewRouter は /api 配下のルートを登録したエンジンを返す
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(d.ServiceName))
	r.Use(middleware.RequestLogger(d.Log))

	auth := middleware.Authenticate(d.Verifier, d.Log)
	admin := middleware.RequireAdmin(d.Log)

	api := r.Group("/api")

	// 公開
	public := api.Group("", middleware.Timeout(d.RequestTimeout))
	{
		public.GET("/health", d.HealthHandler.GetHealth)
		public.GET("/announcements", d.NotificationHandler.GetAnnouncements)
	}

	// ログインユーザー
	user := api.Group("", middleware.Timeout(d.RequestTimeout), auth)
	{
		user.POST("/spots/generate", d.SpotHandler.PostGenerateSpotInfo)
		user.POST("/edit-requests", d.EditRequestHandler.PostEditRequest)
		user.POST("/image-reports/candidates", d.ImageReportHandler.PostFindCandidates)
		user.POST("/image-reports", d.ImageReportHandler.PostImageReport)
		user.GET("/notifications", d.NotificationHandler.GetNotifications)
		user.POST("/notifications/:id/read", d.NotificationHandler.PostMarkRead)
	}

	// 管理者
	adminGroup := api.Group("/admin", middleware.Timeout(d.RequestTimeout), auth, admin)
	{
		adminGroup.POST("/spots/approve", d.SpotHandler.PostApproveSpot)

		adminGroup.GET("/edit-requests", d.EditRequestHandler.GetPendingEditRequests)
		adminGroup.POST("/edit-requests/:id/approve", d.EditRequestHandler.PostApproveEditRequest)
		adminGroup.POST("/edit-requests/:id/reject", d.EditRequestHandler.PostRejectEditRequest)

		adminGroup.GET("/image-reports", d.ImageReportHandler.GetImageReports)
		adminGroup.POST("/image-reports/:id/resolve", d.ImageReportHandler.PostResolveImageReport)
	}

	// 画像一括更新はバッチ用の期限
	batch := api.Group("/admin/images", middleware.Timeout(d.BatchTimeout), auth, admin)
	{
		batch.POST("/count", d.ImageUpdateHandler.PostCountCandidates)
		batch.POST("/propose", d.ImageUpdateHandler.PostProposeUpdates)
		batch.POST("/confirm", d.ImageUpdateHandler.PostConfirmUpdates)
	}

	return r
}
