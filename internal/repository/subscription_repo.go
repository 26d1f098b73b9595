package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/lqx9/bible_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetOrCreate 获取用户订阅，不存在时原子地创建 FREE/active 默认行。
// 显式的 get-or-create，而非藏在读取里的副作用；
// 若历史上出现多行，以 created_at 最新的一行为准。
func (r *SubscriptionRepository) GetOrCreate(userID int64) (*model.Subscription, error) {
	var sub model.Subscription

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where(model.Subscription{UserID: userID}).
			Order("created_at DESC").
			Attrs(model.Subscription{
				Plan:      model.PlanFree,
				Active:    true,
				StartDate: time.Now(),
			}).
			FirstOrCreate(&sub).Error
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// UpgradePlan 就地变更现有行的套餐，不新建第二行，返回更新后的记录
func (r *SubscriptionRepository) UpgradePlan(userID int64, plan string) (*model.Subscription, error) {
	sub, err := r.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	sub.Plan = plan
	sub.Active = true
	sub.StartDate = time.Now()
	if err := r.db.Save(sub).Error; err != nil {
		return nil, err
	}

	return sub, nil
}

// DeactivateExpired 停用所有已过期的付费订阅，返回受影响行数
func (r *SubscriptionRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("plan = ? AND active = ? AND end_date IS NOT NULL AND end_date < ?",
			model.PlanAIPremium, true, now).
		Update("active", false)
	return result.RowsAffected, result.Error
}

// CountByUser 用户订阅行数（测试用：校验 get-or-create 不产生重复行）
func (r *SubscriptionRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
