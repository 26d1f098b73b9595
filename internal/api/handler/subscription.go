package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/internal/api/middleware"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Get 获取当前订阅（首次查询自动开通 FREE 套餐）
// GET /api/v1/subscription
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	info, err := h.subscriptionService.GetSubscription(userID)
	if err != nil {
		response.ServerError(c, "订阅状态查询失败")
		return
	}

	response.Success(c, info)
}

// Upgrade 升级套餐
// POST /api/v1/subscription/upgrade
func (h *SubscriptionHandler) Upgrade(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.subscriptionService.Upgrade(userID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlan):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "升级失败")
		}
		return
	}

	response.SuccessWithMessage(c, "升级成功", info)
}
