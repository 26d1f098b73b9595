package repository

import (
	"gorm.io/gorm"

	"github.com/lqx9/bible_go_server/internal/model"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create 追加一条阅读记录。
// 不做唯一性约束：同一 (user_id, verse_id) 重复插入产生多行，
// 调用方通过 Exists 预检避免冗余写入。
func (r *ProgressRepository) Create(entry *model.ReadingProgress) error {
	return r.db.Create(entry).Error
}

// ListByUser 按阅读时间倒序分页返回用户的阅读记录。
// page 从 1 开始，越界页返回空列表而非错误。
func (r *ProgressRepository) ListByUser(userID int64, page, pageSize int) ([]*model.ReadingProgress, int64, error) {
	var entries []*model.ReadingProgress
	var total int64

	query := r.db.Model(&model.ReadingProgress{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("read_at DESC").Offset(offset).Limit(pageSize).Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// ListRecent 返回用户最近的阅读记录
func (r *ProgressRepository) ListRecent(userID int64, limit int) ([]*model.ReadingProgress, error) {
	var entries []*model.ReadingProgress
	err := r.db.Where("user_id = ?", userID).
		Order("read_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// CountByUser 用户阅读记录总行数（不按 verse 去重）
func (r *ProgressRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.ReadingProgress{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Exists 检查某节经文是否已有阅读记录
func (r *ProgressRepository) Exists(userID, verseID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReadingProgress{}).
		Where("user_id = ? AND verse_id = ?", userID, verseID).
		Count(&count).Error
	return count > 0, err
}

// DeleteOwned 删除用户自己的一条记录，返回删除行数。
// 归属条件在 WHERE 中强制：他人的记录删除行数为 0。
func (r *ProgressRepository) DeleteOwned(userID, entryID int64) (int64, error) {
	result := r.db.Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&model.ReadingProgress{})
	return result.RowsAffected, result.Error
}
