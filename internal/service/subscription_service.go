package service

import (
	"errors"
	"log"
	"time"

	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/email"
	"github.com/lqx9/bible_go_server/internal/repository"
)

var (
	ErrInvalidPlan = errors.New("不支持的订阅套餐")
)

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	userRepo         *repository.UserRepository
	emailService     *email.Service
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository, emailService *email.Service) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		emailService:     emailService,
	}
}

// GetSubscription 获取用户当前订阅。首次查询自动开通 FREE 套餐。
func (s *SubscriptionService) GetSubscription(userID int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.subscriptionRepo.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return buildSubscriptionInfo(sub), nil
}

// IsPremium 判断用户是否处于激活的 AI_PREMIUM 套餐
func (s *SubscriptionService) IsPremium(userID int64) (bool, error) {
	sub, err := s.subscriptionRepo.GetOrCreate(userID)
	if err != nil {
		return false, err
	}
	return sub.IsPremium(), nil
}

// Upgrade 升级套餐。同一行上的状态变更，不产生新订阅记录。
func (s *SubscriptionService) Upgrade(userID int64, plan string) (*dto.SubscriptionInfo, error) {
	if plan != model.PlanAIPremium {
		return nil, ErrInvalidPlan
	}

	sub, err := s.subscriptionRepo.UpgradePlan(userID, plan)
	if err != nil {
		return nil, err
	}

	// 升级回执邮件失败不影响升级
	if s.emailService != nil {
		if user, uerr := s.userRepo.GetByID(userID); uerr == nil && user.Email != nil {
			if merr := s.emailService.SendUpgradeReceipt(*user.Email, user.Name, plan); merr != nil {
				log.Printf("Failed to send upgrade receipt to %s: %v", *user.Email, merr)
			}
		}
	}

	return buildSubscriptionInfo(sub), nil
}

func buildSubscriptionInfo(sub *model.Subscription) *dto.SubscriptionInfo {
	info := &dto.SubscriptionInfo{
		ID:        sub.ID,
		Plan:      sub.Plan,
		Active:    sub.Active,
		StartDate: sub.StartDate.Format(time.RFC3339),
	}
	if sub.EndDate != nil {
		info.EndDate = sub.EndDate.Format(time.RFC3339)
	}
	return info
}
