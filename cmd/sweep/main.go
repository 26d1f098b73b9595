package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/database"
	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/repository"
)

var (
	dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually deactivate subscriptions")
)

// 手动执行订阅到期清扫（常驻服务里由 cron 定时执行，这里用于运维补偿）
func main() {
	flag.Parse()

	log.Println("Starting subscription expiry sweep...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	now := time.Now()

	if *dryRun {
		var expired []model.Subscription
		err := db.Where("plan = ? AND active = ? AND end_date IS NOT NULL AND end_date < ?",
			model.PlanAIPremium, true, now).Find(&expired).Error
		if err != nil {
			log.Fatalf("Failed to query expired subscriptions: %v", err)
		}

		log.Printf("Would deactivate %d subscription(s):", len(expired))
		for _, sub := range expired {
			log.Printf("  user=%d plan=%s end_date=%s", sub.UserID, sub.Plan, sub.EndDate.Format(time.RFC3339))
		}
		log.Println("DRY RUN MODE - no subscriptions were deactivated")
		log.Println("Run with -dry-run=false to apply")
		return
	}

	subscriptionRepo := repository.NewSubscriptionRepository(db)
	affected, err := subscriptionRepo.DeactivateExpired(now)
	if err != nil {
		log.Fatalf("Failed to deactivate expired subscriptions: %v", err)
	}

	log.Printf("Sweep completed, deactivated=%d", affected)
}
