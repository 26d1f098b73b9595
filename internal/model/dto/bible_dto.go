package dto

// BookItem 书卷
type BookItem struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// BookDetails 书卷详情
type BookDetails struct {
	BookName         string `json:"book_name"`
	BookAbbreviation string `json:"book_abbreviation"`
	Chapters         []int  `json:"chapters"`
}

// VerseItem 经文
type VerseItem struct {
	ID          int64  `json:"id"`
	VerseNumber int    `json:"verse_number"`
	Text        string `json:"text"`
}

// ChapterPage 章节分页内容
type ChapterPage struct {
	BookName         string      `json:"book_name"`
	BookAbbreviation string      `json:"book_abbreviation"`
	ChapterNumber    int         `json:"chapter_number"`
	CurrentPage      int         `json:"current_page"`
	TotalPages       int         `json:"total_pages"`
	Verses           []VerseItem `json:"verses"`
}

// SearchVerseItem 搜索命中的经文（带出处）
type SearchVerseItem struct {
	ID               int64  `json:"id"`
	BookName         string `json:"book_name"`
	BookAbbreviation string `json:"book_abbreviation"`
	ChapterNumber    int    `json:"chapter_number"`
	VerseNumber      int    `json:"verse_number"`
	Text             string `json:"text"`
	Testament        string `json:"testament"`
}

// SearchResult 搜索结果
type SearchResult struct {
	Keyword      string            `json:"keyword"`
	TotalResults int64             `json:"total_results"`
	TotalPages   int               `json:"total_pages"`
	CurrentPage  int               `json:"current_page"`
	Verses       []SearchVerseItem `json:"verses"`
}
