package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/email"
	"github.com/lqx9/bible_go_server/internal/pkg/jwt"
	"github.com/lqx9/bible_go_server/internal/pkg/oauth"
	"github.com/lqx9/bible_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	userRepo     *repository.UserRepository
	cfg          *config.Config
	githubOAuth  *oauth.GithubOAuth
	emailService *email.Service
}

func NewAuthService(userRepo *repository.UserRepository, emailService *email.Service, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		githubOAuth: oauth.NewGithubOAuth(
			cfg.OAuth.Github.ClientID,
			cfg.OAuth.Github.ClientSecret,
			cfg.OAuth.Github.RedirectURI,
		),
		emailService: emailService,
	}
}

// Register 用户注册
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	user := &model.User{
		Name:         req.Name,
		Email:        &req.Email,
		PasswordHash: &passwordStr,
		LoginMethod:  "password",
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 欢迎邮件失败不影响注册
	if s.emailService != nil {
		if err := s.emailService.SendWelcome(req.Email, req.Name); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", req.Email, err)
		}
	}

	return &dto.RegisterResponse{
		UserID: user.ID,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastSignedIn(user.ID); err != nil {
		log.Printf("Failed to touch last_signed_in for user %d: %v", user.ID, err)
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.buildUserInfo(user),
	}, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CurrentUser 当前用户信息
func (s *AuthService) CurrentUser(id int64) (*dto.UserInfo, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	return s.buildUserInfo(user), nil
}

// GetGithubAuthURL 获取 GitHub 授权 URL
func (s *AuthService) GetGithubAuthURL(state string) string {
	return s.githubOAuth.GetAuthURL(state)
}

// GithubCallback 处理 GitHub OAuth 回调：upsert-on-login。
// 首次登录创建用户；再次登录刷新资料与最后登录时间。
// open_id 与配置的 owner 匹配时授予 admin 角色。
func (s *AuthService) GithubCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.githubOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	githubUser, err := s.githubOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get github user: %w", err)
	}

	openID := githubUser.OpenID()

	name := githubUser.Name
	if name == "" {
		name = githubUser.Login
	}

	user := &model.User{
		Name:        name,
		OpenID:      &openID,
		LoginMethod: "github",
		Role:        model.RoleUser,
	}
	if githubUser.Email != "" {
		user.Email = &githubUser.Email
	}
	if openID == s.cfg.Owner.OpenID {
		user.Role = model.RoleAdmin
	}

	if err := s.userRepo.UpsertByOpenID(user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	stored, err := s.userRepo.GetByOpenID(openID)
	if err != nil {
		return nil, err
	}

	// owner 身份在已有行上也要生效
	if openID == s.cfg.Owner.OpenID && stored.Role != model.RoleAdmin {
		stored.Role = model.RoleAdmin
		if err := s.userRepo.Update(stored); err != nil {
			return nil, err
		}
	}

	jwtToken, err := jwt.GenerateToken(stored.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: jwtToken,
		User:  s.buildUserInfo(stored),
	}, nil
}

func (s *AuthService) buildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.Email != nil {
		info.Email = *user.Email
	}
	if user.LastSignedIn != nil {
		info.LastSignedIn = user.LastSignedIn.Format(time.RFC3339)
	}

	return info
}
