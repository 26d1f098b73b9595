package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/api"
	"github.com/lqx9/bible_go_server/internal/api/handler"
	"github.com/lqx9/bible_go_server/internal/cache"
	"github.com/lqx9/bible_go_server/internal/database"
	"github.com/lqx9/bible_go_server/internal/pkg/bibleapi"
	"github.com/lqx9/bible_go_server/internal/pkg/cron"
	"github.com/lqx9/bible_go_server/internal/pkg/email"
	"github.com/lqx9/bible_go_server/internal/pkg/oauth"
	"github.com/lqx9/bible_go_server/internal/repository"
	"github.com/lqx9/bible_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 上游内容服务客户端
	bibleClient := bibleapi.NewClient(
		cfg.BibleAPI.BaseURL,
		cfg.BibleAPI.Token,
		time.Duration(cfg.BibleAPI.TimeoutSeconds)*time.Second,
	)

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// 初始化 Service
	emailService := email.NewService(&cfg.Email)
	authService := service.NewAuthService(userRepo, emailService, cfg)
	bibleService := service.NewBibleService(bibleClient, cache.NewRedisCache(rdb), cfg)
	progressService := service.NewProgressService(progressRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, emailService)
	aiService := service.NewAIService(bibleClient)

	// 订阅到期清扫定时任务
	cronService := cron.NewService(subscriptionRepo)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Handler
	stateStore := oauth.NewStateStore(rdb)
	authHandler := handler.NewAuthHandler(authService, stateStore, cfg)
	bibleHandler := handler.NewBibleHandler(bibleService)
	progressHandler := handler.NewProgressHandler(progressService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	aiHandler := handler.NewAIHandler(aiService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		bibleHandler,
		progressHandler,
		subscriptionHandler,
		aiHandler,
		subscriptionService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
