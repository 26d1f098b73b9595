package dto

// SaveProgressRequest 保存阅读进度请求
type SaveProgressRequest struct {
	VerseID          int64  `json:"verse_id" binding:"required"`
	BookName         string `json:"book_name" binding:"required"`
	BookAbbreviation string `json:"book_abbreviation" binding:"required"`
	ChapterNumber    int    `json:"chapter_number" binding:"required,min=1"`
	VerseNumber      int    `json:"verse_number" binding:"required,min=1"`
}

// ProgressItem 阅读进度条目
type ProgressItem struct {
	ID               int64  `json:"id"`
	VerseID          int64  `json:"verse_id"`
	BookName         string `json:"book_name"`
	BookAbbreviation string `json:"book_abbreviation"`
	ChapterNumber    int    `json:"chapter_number"`
	VerseNumber      int    `json:"verse_number"`
	ReadAt           string `json:"read_at"`
}

// ProgressStats 阅读统计
type ProgressStats struct {
	TotalVersesRead int64 `json:"total_verses_read"`
}

// VerseReadStatus 经文已读状态
type VerseReadStatus struct {
	IsRead bool `json:"is_read"`
}
