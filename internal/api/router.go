package api

import (
	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/api/handler"
	"github.com/lqx9/bible_go_server/internal/api/middleware"
	"github.com/lqx9/bible_go_server/internal/service"
)

type Router struct {
	authHandler         *handler.AuthHandler
	bibleHandler        *handler.BibleHandler
	progressHandler     *handler.ProgressHandler
	subscriptionHandler *handler.SubscriptionHandler
	aiHandler           *handler.AIHandler
	subscriptionService *service.SubscriptionService
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bibleHandler *handler.BibleHandler,
	progressHandler *handler.ProgressHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	aiHandler *handler.AIHandler,
	subscriptionService *service.SubscriptionService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		bibleHandler:        bibleHandler,
		progressHandler:     progressHandler,
		subscriptionHandler: subscriptionHandler,
		aiHandler:           aiHandler,
		subscriptionService: subscriptionService,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authHandler.Logout)
			auth.GET("/github", r.authHandler.GithubAuth)
			auth.GET("/github/callback", r.authHandler.GithubCallback)
		}

		// 公开接口 - 圣经内容（登录与否都可阅读）
		bible := api.Group("/bible")
		{
			bible.GET("/books", r.bibleHandler.ListBooks)
			bible.GET("/books/:abbrev", r.bibleHandler.GetBookDetails)
			bible.GET("/search", r.bibleHandler.Search)
			bible.GET("/:abbrev/:chapter", r.bibleHandler.GetChapter)
		}

		// 当前用户（可选认证：未登录返回 null）
		api.GET("/auth/me", middleware.OptionalAuth(r.cfg.JWT.Secret), r.authHandler.Me)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 阅读进度
			progress := authenticated.Group("/reading-progress")
			{
				progress.POST("", r.progressHandler.Save)
				progress.GET("", r.progressHandler.History)
				progress.GET("/recent", r.progressHandler.Recent)
				progress.GET("/stats", r.progressHandler.Stats)
				progress.GET("/check/:verseId", r.progressHandler.CheckVerse)
				progress.DELETE("/:id", r.progressHandler.Delete)
			}

			// 订阅
			subscription := authenticated.Group("/subscription")
			{
				subscription.GET("", r.subscriptionHandler.Get)
				subscription.POST("/upgrade", r.subscriptionHandler.Upgrade)
			}
		}

		// AI 功能（认证 + AI_PREMIUM 套餐）
		ai := api.Group("/bible-ai")
		ai.Use(middleware.Auth(r.cfg.JWT.Secret))
		ai.Use(middleware.RequirePremium(r.subscriptionService))
		{
			ai.POST("/chapter-summary", r.aiHandler.ChapterSummary)
			ai.POST("/verse-explanation", r.aiHandler.VerseExplanation)
			ai.POST("/verses-analysis", r.aiHandler.VersesAnalysis)
		}
	}

	return engine
}
