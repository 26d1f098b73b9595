package cron

import (
	"log"
	"time"

	"github.com/lqx9/bible_go_server/internal/repository"
)

type Service struct {
	subscriptionRepo *repository.SubscriptionRepository
	stopChan         chan struct{}
}

func NewService(subscriptionRepo *repository.SubscriptionRepository) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		stopChan:         make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyExpirySweep()
	log.Println("Cron service started (subscription expiry sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runDailyExpirySweep 每日订阅到期清扫任务
func (s *Service) runDailyExpirySweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweepExpired()
			timer.Reset(24 * time.Hour)
		}
	}
}

// sweepExpired 将 end_date 已过的付费订阅置为停用
func (s *Service) sweepExpired() {
	log.Println("Starting subscription expiry sweep...")
	affected, err := s.subscriptionRepo.DeactivateExpired(time.Now())
	if err != nil {
		log.Printf("Failed to sweep expired subscriptions: %v", err)
		return
	}
	log.Printf("Subscription expiry sweep completed, deactivated=%d", affected)
}

// RunNow 立即执行到期清扫（用于测试或手动触发）
func (s *Service) RunNow() (int64, error) {
	log.Println("Manual expiry sweep triggered...")
	return s.subscriptionRepo.DeactivateExpired(time.Now())
}
