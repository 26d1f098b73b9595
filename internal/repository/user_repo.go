package repository

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lqx9/bible_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByOpenID(openID string) (*model.User, error) {
	var user model.User
	err := r.db.Where("open_id = ?", openID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpsertByOpenID OAuth 登录时按 open_id 插入或更新用户。
// 已存在时仅刷新资料字段与最后登录时间，不回退角色；
// 上游未返回邮箱时保留已存储的邮箱。
func (r *UserRepository) UpsertByOpenID(user *model.User) error {
	now := time.Now()
	user.LastSignedIn = &now

	columns := []string{"name", "login_method", "last_signed_in", "updated_at"}
	if user.Email != nil {
		columns = append(columns, "email")
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(user).Error
}

func (r *UserRepository) TouchLastSignedIn(id int64) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("last_signed_in", time.Now()).Error
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
