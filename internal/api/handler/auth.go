package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/api/middleware"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/oauth"
	"github.com/lqx9/bible_go_server/internal/pkg/response"
	"github.com/lqx9/bible_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
	cfg         *config.Config
}

// NewAuthHandler 创建认证处理器。stateStore 可为 nil（不校验 OAuth state，仅用于测试）。
func NewAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		stateStore:  stateStore,
		cfg:         cfg,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "注册成功", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	h.setAuthCookie(c, resp.Token)
	response.SuccessWithMessage(c, "登录成功", resp)
}

// GithubAuth 跳转 GitHub 授权页
// GET /api/v1/auth/github
func (h *AuthHandler) GithubAuth(c *gin.Context) {
	state := c.Query("state")

	if h.stateStore != nil {
		generated, err := h.stateStore.GenerateState(c.Request.Context(), c.Query("redirect_uri"))
		if err != nil {
			response.ServerError(c, "")
			return
		}
		state = generated
	}

	c.Redirect(http.StatusTemporaryRedirect, h.authService.GetGithubAuthURL(state))
}

// GithubCallback 处理 GitHub OAuth 回调
// GET /api/v1/auth/github/callback
func (h *AuthHandler) GithubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.ParamError(c, "缺少授权码")
		return
	}

	redirectURI := ""
	if h.stateStore != nil {
		uri, err := h.stateStore.ValidateState(c.Request.Context(), c.Query("state"))
		if err != nil {
			response.ParamError(c, "state 校验失败")
			return
		}
		redirectURI = uri
	}

	resp, err := h.authService.GithubCallback(c.Request.Context(), code)
	if err != nil {
		response.AuthError(c, "GitHub 登录失败")
		return
	}

	h.setAuthCookie(c, resp.Token)

	// 带 redirect_uri 的浏览器流程直接跳回前端，登录态走 cookie
	if redirectURI != "" {
		c.Redirect(http.StatusTemporaryRedirect, redirectURI)
		return
	}

	response.SuccessWithMessage(c, "登录成功", resp)
}

// Me 当前登录用户信息。可选认证：未登录返回 null 而非认证错误。
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Success(c, nil)
		return
	}

	info, err := h.authService.CurrentUser(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, info)
}

// Logout 退出登录（清除登录态 cookie）
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookieName, "", -1, "/", "", false, true)
	response.SuccessWithMessage(c, "已退出登录", nil)
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	maxAge := h.cfg.JWT.ExpireHours * 3600
	c.SetCookie(middleware.TokenCookieName, token, maxAge, "/", "", false, true)
}
