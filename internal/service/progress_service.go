package service

import (
	"errors"
	"time"

	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/repository"
)

var (
	ErrProgressNotFound = errors.New("阅读记录不存在")
)

type ProgressService struct {
	progressRepo *repository.ProgressRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

// SaveProgress 记录一次经文阅读。重复阅读产生多条记录，去重由前端经 CheckRead 完成。
func (s *ProgressService) SaveProgress(userID int64, req *dto.SaveProgressRequest) (*dto.ProgressItem, error) {
	entry := &model.ReadingProgress{
		UserID:           userID,
		VerseID:          req.VerseID,
		BookName:         req.BookName,
		BookAbbreviation: req.BookAbbreviation,
		ChapterNumber:    req.ChapterNumber,
		VerseNumber:      req.VerseNumber,
		ReadAt:           time.Now(),
	}

	if err := s.progressRepo.Create(entry); err != nil {
		return nil, err
	}

	return buildProgressItem(entry), nil
}

// GetHistory 分页获取阅读历史，按阅读时间倒序
func (s *ProgressService) GetHistory(userID int64, page, pageSize int) ([]dto.ProgressItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	entries, total, err := s.progressRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.ProgressItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, *buildProgressItem(entry))
	}

	return items, total, nil
}

// GetRecent 最近阅读的若干条记录
func (s *ProgressService) GetRecent(userID int64, limit int) ([]dto.ProgressItem, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}

	entries, err := s.progressRepo.ListRecent(userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProgressItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, *buildProgressItem(entry))
	}

	return items, nil
}

// GetStats 阅读统计。统计的是阅读事件数，不按经文去重。
func (s *ProgressService) GetStats(userID int64) (*dto.ProgressStats, error) {
	count, err := s.progressRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProgressStats{TotalVersesRead: count}, nil
}

// CheckRead 查询某节经文是否读过
func (s *ProgressService) CheckRead(userID, verseID int64) (*dto.VerseReadStatus, error) {
	exists, err := s.progressRepo.Exists(userID, verseID)
	if err != nil {
		return nil, err
	}
	return &dto.VerseReadStatus{IsRead: exists}, nil
}

// DeleteEntry 删除本人的一条阅读记录。
// 条目不存在或属于他人统一返回 ErrProgressNotFound，不区分两种情况。
func (s *ProgressService) DeleteEntry(userID, entryID int64) error {
	affected, err := s.progressRepo.DeleteOwned(userID, entryID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProgressNotFound
	}
	return nil
}

func buildProgressItem(entry *model.ReadingProgress) *dto.ProgressItem {
	return &dto.ProgressItem{
		ID:               entry.ID,
		VerseID:          entry.VerseID,
		BookName:         entry.BookName,
		BookAbbreviation: entry.BookAbbreviation,
		ChapterNumber:    entry.ChapterNumber,
		VerseNumber:      entry.VerseNumber,
		ReadAt:           entry.ReadAt.Format(time.RFC3339),
	}
}
