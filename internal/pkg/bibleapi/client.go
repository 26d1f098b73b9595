package bibleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUpstreamDown 上游内容服务网络不可达
	ErrUpstreamDown = errors.New("内容服务不可达")
	// ErrUpstreamRejected 上游内容服务返回业务错误
	ErrUpstreamRejected = errors.New("内容服务拒绝请求")
	// ErrBookNotFound 书卷缩写未知
	ErrBookNotFound = errors.New("书卷不存在")
)

// Book 书卷
type Book struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// BookDetails 书卷详情（章节号 1..N 连续无空洞）
type BookDetails struct {
	BookName         string `json:"bookName"`
	BookAbbreviation string `json:"bookAbbreviation"`
	Chapters         []int  `json:"chapters"`
}

// Verse 经文
type Verse struct {
	ID          int64  `json:"id"`
	VerseNumber int    `json:"verseNumber"`
	Text        string `json:"text"`
}

// Chapter 章节分页内容。
// 注意：上游在该响应中使用 "bookAbbrevation" 这一历史拼写，不可更正。
type Chapter struct {
	BookName         string  `json:"bookName"`
	BookAbbreviation string  `json:"bookAbbrevation"`
	ChapterNumber    int     `json:"chapterNumber"`
	CurrentPage      int     `json:"currentPage"`
	TotalPages       int     `json:"totalPages"`
	Verses           []Verse `json:"verses"`
}

// SearchVerse 搜索命中的经文
type SearchVerse struct {
	ID               int64  `json:"id"`
	BookName         string `json:"bookName"`
	BookAbbreviation string `json:"bookAbreviation"`
	ChapterNumber    int    `json:"chapterNumber"`
	VerseNumber      int    `json:"verseNumber"`
	Text             string `json:"text"`
	Testament        string `json:"testament"`
}

// SearchResult 搜索结果
type SearchResult struct {
	Keyword      string        `json:"keyword"`
	TotalResults int64         `json:"totalResults"`
	TotalPages   int           `json:"totalPages"`
	CurrentPage  int           `json:"currentPage"`
	Verses       []SearchVerse `json:"verses"`
}

// Explanation AI 讲解结果
type Explanation struct {
	Explanation string   `json:"explanation"`
	References  []string `json:"references,omitempty"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Client 上游圣经内容服务的类型化客户端。
// 除可选的 bearer 凭证外不持有任何状态，纯请求转译。
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetBooks 获取全部书卷列表（无分页）
func (c *Client) GetBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.get(ctx, "/bible/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBookDetails 获取书卷详情
func (c *Client) GetBookDetails(ctx context.Context, abbreviation string) (*BookDetails, error) {
	var details BookDetails
	path := fmt.Sprintf("/bible/books/%s/details", url.PathEscape(abbreviation))
	if err := c.get(ctx, path, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetChapter 获取章节某一页的经文。
// page 超过 totalPages 时上游返回空经文列表而非错误，原样透传。
func (c *Client) GetChapter(ctx context.Context, abbreviation string, chapter, page int) (*Chapter, error) {
	var result Chapter
	path := fmt.Sprintf("/bible/%s/%d?page=%d", url.PathEscape(abbreviation), chapter, page)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchVerses 关键词搜索经文
func (c *Client) SearchVerses(ctx context.Context, keyword string, page int) (*SearchResult, error) {
	var result SearchResult
	path := fmt.Sprintf("/bible/search/versiculo?keyword=%s&page=%d", url.QueryEscape(keyword), page)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetChapterSummary 获取章节 AI 总结
func (c *Client) GetChapterSummary(ctx context.Context, abbreviation string, chapter int) (*Explanation, error) {
	body := map[string]interface{}{
		"bookAbreviation": abbreviation,
		"chapter":         chapter,
	}
	var result Explanation
	if err := c.post(ctx, "/bible-ai/chapter-summary", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVerseExplanation 获取单节经文 AI 讲解
func (c *Client) GetVerseExplanation(ctx context.Context, abbreviation string, chapter, verse int) (*Explanation, error) {
	body := map[string]interface{}{
		"bookAbreviation": abbreviation,
		"chapter":         chapter,
		"verse":           verse,
	}
	var result Explanation
	if err := c.post(ctx, "/bible-ai/verse-explanation", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetVersesAnalysis 获取多节经文 AI 综合分析
func (c *Client) GetVersesAnalysis(ctx context.Context, abbreviation string, chapter int, verses []int) (*Explanation, error) {
	body := map[string]interface{}{
		"bookAbreviation": abbreviation,
		"chapter":         chapter,
		"verses":          verses,
	}
	var result Explanation
	if err := c.post(ctx, "/bible-ai/verses-analysis", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamDown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrBookNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 尽量携带上游返回的错误消息
		var eb errorBody
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
			return fmt.Errorf("%w: %s", ErrUpstreamRejected, eb.Message)
		}
		return fmt.Errorf("%w: status %d", ErrUpstreamRejected, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstreamRejected, err)
	}

	return nil
}
