package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/internal/pkg/bibleapi"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

type BibleHandler struct {
	bibleService *service.BibleService
}

func NewBibleHandler(bibleService *service.BibleService) *BibleHandler {
	return &BibleHandler{bibleService: bibleService}
}

// ListBooks 获取全部书卷列表
// GET /api/v1/bible/books
func (h *BibleHandler) ListBooks(c *gin.Context) {
	books, err := h.bibleService.ListBooks(c.Request.Context())
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, gin.H{"books": books})
}

// GetBookDetails 获取书卷详情
// GET /api/v1/bible/books/:abbrev
func (h *BibleHandler) GetBookDetails(c *gin.Context) {
	abbrev := c.Param("abbrev")

	details, err := h.bibleService.GetBookDetails(c.Request.Context(), abbrev)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, details)
}

// GetChapter 获取章节经文（分页）
// GET /api/v1/bible/:abbrev/:chapter?page=1
func (h *BibleHandler) GetChapter(c *gin.Context) {
	abbrev := c.Param("abbrev")

	chapter, err := strconv.Atoi(c.Param("chapter"))
	if err != nil || chapter < 1 {
		response.ParamError(c, "章节号无效")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.bibleService.GetChapter(c.Request.Context(), abbrev, chapter, page)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, result)
}

// Search 关键词搜索经文
// GET /api/v1/bible/search?keyword=amor&page=1
func (h *BibleHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.bibleService.SearchVerses(c.Request.Context(), keyword, page)
	if err != nil {
		if errors.Is(err, service.ErrEmptyKeyword) {
			response.ParamError(c, err.Error())
			return
		}
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, result)
}

// handleUpstreamError 上游内容服务错误统一转译
func handleUpstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, bibleapi.ErrBookNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, bibleapi.ErrUpstreamDown), errors.Is(err, bibleapi.ErrUpstreamRejected):
		response.UpstreamError(c, "")
	default:
		response.ServerError(c, "")
	}
}
