package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lqx9/bible_go_server/config"
	"github.com/lqx9/bible_go_server/internal/model"
	"github.com/lqx9/bible_go_server/internal/model/dto"
	"github.com/lqx9/bible_go_server/internal/pkg/jwt"
	"github.com/lqx9/bible_go_server/internal/repository"
	"github.com/lqx9/bible_go_server/internal/testutil"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
	}
}

func setupAuthService(t *testing.T) (*AuthService, *repository.UserRepository, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, testAuthConfig())

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, userRepo, cleanup
}

func TestAuthService_Register_Success(t *testing.T) {
	service, userRepo, cleanup := setupAuthService(t)
	defer cleanup()

	resp, err := service.Register(&dto.RegisterRequest{
		Name:     "newreader",
		Email:    "newreader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.UserID)

	user, err := userRepo.GetByEmail("newreader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newreader", user.Name)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "password", user.LoginMethod)
	require.NotNil(t, user.PasswordHash)
	assert.NotEqual(t, "password123", *user.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	req := &dto.RegisterRequest{
		Name:     "reader",
		Email:    "taken@example.com",
		Password: "password123",
	}
	_, err := service.Register(req)
	require.NoError(t, err)

	_, err = service.Register(req)
	assert.Equal(t, ErrEmailExists, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	service, userRepo, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Name:     "reader",
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "reader", resp.User.Name)

	// Token must round-trip with the configured secret
	claims, err := jwt.ParseToken(resp.Token, "test-secret-key")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	// Login touches last_signed_in
	user, err := userRepo.GetByEmail("reader@example.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastSignedIn)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Name:     "reader",
		Email:    "reader@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "wrong-password",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	// Unknown email and wrong password are indistinguishable
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_Login_OAuthOnlyAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, testAuthConfig())

	// GitHub user has no password hash
	user := testutil.TestUser(t, db,
		testutil.WithEmail("oauth@example.com"),
		testutil.WithOpenID("github:42"))
	user.PasswordHash = nil
	require.NoError(t, userRepo.Update(user))

	_, err := service.Login(&dto.LoginRequest{
		Email:    "oauth@example.com",
		Password: "password123",
	})
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestAuthService_CurrentUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, nil, testAuthConfig())

	user := testutil.TestUser(t, db, testutil.WithName("current"))

	info, err := service.CurrentUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.ID)
	assert.Equal(t, "current", info.Name)
}

func TestAuthService_CurrentUser_NotFound(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.CurrentUser(99999)
	assert.Equal(t, ErrUserNotFound, err)
}
