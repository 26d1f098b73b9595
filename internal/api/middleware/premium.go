package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

// RequirePremium AI 功能套餐检查中间件。
// 必须挂在 Auth 之后。非 AI_PREMIUM 用户返回权限错误，并在 data 中携带当前套餐。
func RequirePremium(subscriptionService *service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "")
			c.Abort()
			return
		}

		sub, err := subscriptionService.GetSubscription(userID)
		if err != nil {
			response.ServerError(c, "订阅状态查询失败")
			c.Abort()
			return
		}

		if !sub.Active || sub.Plan != model.PlanAIPremium {
			response.ErrorWithData(c, response.CodePermissionDenied,
				"AI 功能需要升级到 AI_PREMIUM 套餐", gin.H{"plan": sub.Plan})
			c.Abort()
			return
		}

		c.Next()
	}
}
