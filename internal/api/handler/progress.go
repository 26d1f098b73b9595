package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/internal/api/middleware"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Save 记录一次经文阅读
// POST /api/v1/reading-progress
func (h *ProgressHandler) Save(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	item, err := h.progressService.SaveProgress(userID, &req)
	if err != nil {
		response.ServerError(c, "保存阅读记录失败")
		return
	}

	response.SuccessWithMessage(c, "已记录", item)
}

// History 分页获取阅读历史
// GET /api/v1/reading-progress?page=1&page_size=20
func (h *ProgressHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := h.progressService.GetHistory(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.SuccessPage(c, total, page, pageSize, items)
}

// Recent 最近阅读
// GET /api/v1/reading-progress/recent?limit=5
func (h *ProgressHandler) Recent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	items, err := h.progressService.GetRecent(userID, limit)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, gin.H{"items": items})
}

// Stats 阅读统计
// GET /api/v1/reading-progress/stats
func (h *ProgressHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	stats, err := h.progressService.GetStats(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, stats)
}

// CheckVerse 查询某节经文是否读过
// GET /api/v1/reading-progress/check/:verseId
func (h *ProgressHandler) CheckVerse(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	verseID, err := strconv.ParseInt(c.Param("verseId"), 10, 64)
	if err != nil {
		response.ParamError(c, "经文 ID 无效")
		return
	}

	status, err := h.progressService.CheckRead(userID, verseID)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Success(c, status)
}

// Delete 删除一条阅读记录
// DELETE /api/v1/reading-progress/:id
func (h *ProgressHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "记录 ID 无效")
		return
	}

	if err := h.progressService.DeleteEntry(userID, entryID); err != nil {
		switch {
		case errors.Is(err, service.ErrProgressNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "已删除", nil)
}
