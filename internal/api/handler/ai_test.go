package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lqx9/bible_go_server/internal/api/middleware"
	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/bibleapi"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/repository"
	"github.com/lqx9/bible_go_server/internal/service"
	"github.com/lqx9/bible_go_server/internal/testutil"
)

type stubAIGateway struct {
	explanation *bibleapi.Explanation
	err         error
	calls       int
}

func (g *stubAIGateway) GetChapterSummary(ctx context.Context, abbreviation string, chapter int) (*bibleapi.Explanation, error) {
	g.calls++
	return g.explanation, g.err
}

func (g *stubAIGateway) GetVerseExplanation(ctx context.Context, abbreviation string, chapter, verse int) (*bibleapi.Explanation, error) {
	g.calls++
	return g.explanation, g.err
}

func (g *stubAIGateway) GetVersesAnalysis(ctx context.Context, abbreviation string, chapter int, verses []int) (*bibleapi.Explanation, error) {
	g.calls++
	return g.explanation, g.err
}

// setupAIRouter mirrors the production /bible-ai group: auth context plus
// the premium gate in front of the handlers.
func setupAIRouter(t *testing.T, userID int64, db *gorm.DB, gateway *stubAIGateway) *gin.Engine {
	t.Helper()

	subscriptionService := service.NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
	handler := NewAIHandler(service.NewAIService(gateway))

	router := gin.New()
	ai := router.Group("/bible-ai", mockAuth(userID), middleware.RequirePremium(subscriptionService))
	{
		ai.POST("/chapter-summary", handler.ChapterSummary)
		ai.POST("/verse-explanation", handler.VerseExplanation)
		ai.POST("/verses-analysis", handler.VersesAnalysis)
	}
	return router
}

func TestAIHandler_ChapterSummary_PremiumUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID, model.PlanAIPremium)

	gateway := &stubAIGateway{
		explanation: &bibleapi.Explanation{Explanation: "Resumo do capítulo"},
	}
	router := setupAIRouter(t, user.ID, db, gateway)

	w := performRequest(router, "POST", "/bible-ai/chapter-summary", dto.ChapterSummaryRequest{
		BookAbbreviation: "GEN",
		Chapter:          1,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Resumo do capítulo", data["explanation"])
}

func TestAIHandler_FreeUserDeniedBeforeUpstream(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	// Logged-in FREE user: permission error carrying the current plan,
	// and the upstream AI gateway is never called.
	user := testutil.TestUser(t, db)

	gateway := &stubAIGateway{
		explanation: &bibleapi.Explanation{Explanation: "should not be reached"},
	}
	router := setupAIRouter(t, user.ID, db, gateway)

	w := performRequest(router, "POST", "/bible-ai/chapter-summary", dto.ChapterSummaryRequest{
		BookAbbreviation: "GEN",
		Chapter:          1,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodePermissionDenied, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, model.PlanFree, data["plan"])

	assert.Zero(t, gateway.calls)
}

func TestAIHandler_UpgradeUnlocksAI(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)

	gateway := &stubAIGateway{
		explanation: &bibleapi.Explanation{Explanation: "ok"},
	}
	router := setupAIRouter(t, user.ID, db, gateway)

	req := dto.VerseExplanationRequest{BookAbbreviation: "JOA", Chapter: 3, Verse: 16}

	w := performRequest(router, "POST", "/bible-ai/verse-explanation", req)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodePermissionDenied, resp.Code)

	// Upgrade, then the same request passes
	subRepo := repository.NewSubscriptionRepository(db)
	_, err := subRepo.UpgradePlan(user.ID, model.PlanAIPremium)
	require.NoError(t, err)

	w = performRequest(router, "POST", "/bible-ai/verse-explanation", req)
	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	assert.Equal(t, 1, gateway.calls)
}

func TestAIHandler_VersesAnalysis_InvalidBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID, model.PlanAIPremium)

	gateway := &stubAIGateway{}
	router := setupAIRouter(t, user.ID, db, gateway)

	// Empty verse list fails validation
	w := performRequest(router, "POST", "/bible-ai/verses-analysis", map[string]interface{}{
		"book_abbreviation": "GEN",
		"chapter":           1,
		"verses":            []int{},
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
	assert.Zero(t, gateway.calls)
}

func TestAIHandler_UpstreamRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	user := testutil.TestUser(t, db)
	testutil.TestSubscription(t, db, user.ID, model.PlanAIPremium)

	gateway := &stubAIGateway{err: bibleapi.ErrUpstreamRejected}
	router := setupAIRouter(t, user.ID, db, gateway)

	w := performRequest(router, "POST", "/bible-ai/chapter-summary", dto.ChapterSummaryRequest{
		BookAbbreviation: "GEN",
		Chapter:          1,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeUpstreamError, resp.Code)
}
