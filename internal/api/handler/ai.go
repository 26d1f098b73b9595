package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

// AIHandler AI 讲解接口。套餐校验由路由上的 RequirePremium 中间件完成。
type AIHandler struct {
	aiService *service.AIService
}

func NewAIHandler(aiService *service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// ChapterSummary 章节 AI 总结
// POST /api/v1/bible-ai/chapter-summary
func (h *AIHandler) ChapterSummary(c *gin.Context) {
	var req dto.ChapterSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.aiService.ChapterSummary(c.Request.Context(), &req)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, result)
}

// VerseExplanation 单节经文 AI 讲解
// POST /api/v1/bible-ai/verse-explanation
func (h *AIHandler) VerseExplanation(c *gin.Context) {
	var req dto.VerseExplanationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.aiService.VerseExplanation(c.Request.Context(), &req)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, result)
}

// VersesAnalysis 多节经文 AI 综合分析
// POST /api/v1/bible-ai/verses-analysis
func (h *AIHandler) VersesAnalysis(c *gin.Context) {
	var req dto.VersesAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.aiService.VersesAnalysis(c.Request.Context(), &req)
	if err != nil {
		handleUpstreamError(c, err)
		return
	}

	response.Success(c, result)
}
