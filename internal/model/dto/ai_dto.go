package dto

// ChapterSummaryRequest 章节总结请求
type ChapterSummaryRequest struct {
	BookAbbreviation string `json:"book_abbreviation" binding:"required"`
	Chapter          int    `json:"chapter" binding:"required,min=1"`
}

// VerseExplanationRequest 单节经文讲解请求
type VerseExplanationRequest struct {
	BookAbbreviation string `json:"book_abbreviation" binding:"required"`
	Chapter          int    `json:"chapter" binding:"required,min=1"`
	Verse            int    `json:"verse" binding:"required,min=1"`
}

// VersesAnalysisRequest 多节经文分析请求
type VersesAnalysisRequest struct {
	BookAbbreviation string `json:"book_abbreviation" binding:"required"`
	Chapter          int    `json:"chapter" binding:"required,min=1"`
	Verses           []int  `json:"verses" binding:"required,min=1,dive,min=1"`
}

// ExplanationResult AI 讲解结果
type ExplanationResult struct {
	Explanation string   `json:"explanation"`
	References  []string `json:"references,omitempty"`
}
