package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/cache"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/bibleapi"
)

var (
	ErrEmptyKeyword = errors.New("搜索关键词不能为空")
)

// ContentGateway 上游圣经内容服务的只读能力
type ContentGateway interface {
	GetBooks(ctx context.Context) ([]bibleapi.Book, error)
	GetBookDetails(ctx context.Context, abbreviation string) (*bibleapi.BookDetails, error)
	GetChapter(ctx context.Context, abbreviation string, chapter, page int) (*bibleapi.Chapter, error)
	SearchVerses(ctx context.Context, keyword string, page int) (*bibleapi.SearchResult, error)
}

type BibleService struct {
	gateway ContentGateway
	cache   cache.Cache
	ttl     time.Duration
}

// NewBibleService 创建内容服务。cache 可为 nil（不缓存，直接透传）。
func NewBibleService(gateway ContentGateway, c cache.Cache, cfg *config.Config) *BibleService {
	ttl := time.Duration(cfg.BibleAPI.CacheTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &BibleService{
		gateway: gateway,
		cache:   c,
		ttl:     ttl,
	}
}

// ListBooks 获取全部书卷列表。圣经正文不变，缓存命中优先。
func (s *BibleService) ListBooks(ctx context.Context) ([]dto.BookItem, error) {
	const key = "bible:books"

	var items []dto.BookItem
	if s.cacheGet(ctx, key, &items) {
		return items, nil
	}

	books, err := s.gateway.GetBooks(ctx)
	if err != nil {
		return nil, err
	}

	items = make([]dto.BookItem, 0, len(books))
	for _, b := range books {
		items = append(items, dto.BookItem{
			Name:         b.Name,
			Abbreviation: b.Abbreviation,
		})
	}

	s.cacheSet(ctx, key, items)
	return items, nil
}

// GetBookDetails 获取书卷详情
func (s *BibleService) GetBookDetails(ctx context.Context, abbreviation string) (*dto.BookDetails, error) {
	key := "bible:book:" + abbreviation

	var details dto.BookDetails
	if s.cacheGet(ctx, key, &details) {
		return &details, nil
	}

	remote, err := s.gateway.GetBookDetails(ctx, abbreviation)
	if err != nil {
		return nil, err
	}

	details = dto.BookDetails{
		BookName:         remote.BookName,
		BookAbbreviation: remote.BookAbbreviation,
		Chapters:         remote.Chapters,
	}

	s.cacheSet(ctx, key, &details)
	return &details, nil
}

// GetChapter 获取章节某一页的经文。
// page 小于 1 时归一为 1；超出页数范围由上游返回空列表，原样透传。
func (s *BibleService) GetChapter(ctx context.Context, abbreviation string, chapter, page int) (*dto.ChapterPage, error) {
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("bible:chapter:%s:%d:%d", abbreviation, chapter, page)

	var result dto.ChapterPage
	if s.cacheGet(ctx, key, &result) {
		return &result, nil
	}

	remote, err := s.gateway.GetChapter(ctx, abbreviation, chapter, page)
	if err != nil {
		return nil, err
	}

	verses := make([]dto.VerseItem, 0, len(remote.Verses))
	for _, v := range remote.Verses {
		verses = append(verses, dto.VerseItem{
			ID:          v.ID,
			VerseNumber: v.VerseNumber,
			Text:        v.Text,
		})
	}

	result = dto.ChapterPage{
		BookName:         remote.BookName,
		BookAbbreviation: remote.BookAbbreviation,
		ChapterNumber:    remote.ChapterNumber,
		CurrentPage:      remote.CurrentPage,
		TotalPages:       remote.TotalPages,
		Verses:           verses,
	}

	s.cacheSet(ctx, key, &result)
	return &result, nil
}

// SearchVerses 关键词搜索经文
func (s *BibleService) SearchVerses(ctx context.Context, keyword string, page int) (*dto.SearchResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if page < 1 {
		page = 1
	}

	key := fmt.Sprintf("bible:search:%s:%d", keyword, page)

	var result dto.SearchResult
	if s.cacheGet(ctx, key, &result) {
		return &result, nil
	}

	remote, err := s.gateway.SearchVerses(ctx, keyword, page)
	if err != nil {
		return nil, err
	}

	verses := make([]dto.SearchVerseItem, 0, len(remote.Verses))
	for _, v := range remote.Verses {
		verses = append(verses, dto.SearchVerseItem{
			ID:               v.ID,
			BookName:         v.BookName,
			BookAbbreviation: v.BookAbbreviation,
			ChapterNumber:    v.ChapterNumber,
			VerseNumber:      v.VerseNumber,
			Text:             v.Text,
			Testament:        v.Testament,
		})
	}

	result = dto.SearchResult{
		Keyword:      remote.Keyword,
		TotalResults: remote.TotalResults,
		TotalPages:   remote.TotalPages,
		CurrentPage:  remote.CurrentPage,
		Verses:       verses,
	}

	s.cacheSet(ctx, key, &result)
	return &result, nil
}

// cacheGet 缓存读取。缓存故障按未命中处理，不能影响主链路。
func (s *BibleService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		log.Printf("Cache get failed for %s: %v", key, err)
		return false
	}
	return hit
}

func (s *BibleService) cacheSet(ctx context.Context, key string, val interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, val, s.ttl); err != nil {
		log.Printf("Cache set failed for %s: %v", key, err)
	}
}
