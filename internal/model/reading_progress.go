package model

import (
	"time"
)

// ReadingProgress 一条记录表示"该用户读过该节经文"。
// 存储层允许同一 (user_id, verse_id) 重复插入，去重由调用方通过 Exists 预检。
type ReadingProgress struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	UserID           int64     `gorm:"not null;index" json:"user_id"`
	VerseID          int64     `gorm:"column:verse_id;not null;index" json:"verse_id"`
	BookName         string    `gorm:"size:100;not null" json:"book_name"`
	BookAbbreviation string    `gorm:"size:10;not null" json:"book_abbreviation"`
	ChapterNumber    int       `gorm:"not null" json:"chapter_number"`
	VerseNumber      int       `gorm:"not null" json:"verse_number"`
	ReadAt           time.Time `gorm:"index" json:"read_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
