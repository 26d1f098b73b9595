package service

import (
	"context"

	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/bibleapi"
)

// AIGateway 上游 AI 讲解能力。
// 套餐校验在路由中间件完成，服务层只负责转译。
type AIGateway interface {
	GetChapterSummary(ctx context.Context, abbreviation string, chapter int) (*bibleapi.Explanation, error)
	GetVerseExplanation(ctx context.Context, abbreviation string, chapter, verse int) (*bibleapi.Explanation, error)
	GetVersesAnalysis(ctx context.Context, abbreviation string, chapter int, verses []int) (*bibleapi.Explanation, error)
}

type AIService struct {
	gateway AIGateway
}

func NewAIService(gateway AIGateway) *AIService {
	return &AIService{gateway: gateway}
}

// ChapterSummary 章节 AI 总结
func (s *AIService) ChapterSummary(ctx context.Context, req *dto.ChapterSummaryRequest) (*dto.ExplanationResult, error) {
	result, err := s.gateway.GetChapterSummary(ctx, req.BookAbbreviation, req.Chapter)
	if err != nil {
		return nil, err
	}
	return buildExplanation(result), nil
}

// VerseExplanation 单节经文 AI 讲解
func (s *AIService) VerseExplanation(ctx context.Context, req *dto.VerseExplanationRequest) (*dto.ExplanationResult, error) {
	result, err := s.gateway.GetVerseExplanation(ctx, req.BookAbbreviation, req.Chapter, req.Verse)
	if err != nil {
		return nil, err
	}
	return buildExplanation(result), nil
}

// VersesAnalysis 多节经文 AI 综合分析
func (s *AIService) VersesAnalysis(ctx context.Context, req *dto.VersesAnalysisRequest) (*dto.ExplanationResult, error) {
	result, err := s.gateway.GetVersesAnalysis(ctx, req.BookAbbreviation, req.Chapter, req.Verses)
	if err != nil {
		return nil, err
	}
	return buildExplanation(result), nil
}

func buildExplanation(e *bibleapi.Explanation) *dto.ExplanationResult {
	return &dto.ExplanationResult{
		Explanation: e.Explanation,
		References:  e.References,
	}
}
