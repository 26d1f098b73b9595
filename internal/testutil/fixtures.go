package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lqx9/bible_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	email := fmt.Sprintf("test_%d@example.com", time.Now().UnixNano())
	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Name:         fmt.Sprintf("testuser_%d", time.Now().UnixNano()%10000),
		Email:        &email,
		PasswordHash: &passwordHash,
		Role:         model.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithName 设置用户名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = &email
	}
}

// WithOpenID 设置外部身份标识
func WithOpenID(openID string) func(*model.User) {
	return func(u *model.User) {
		u.OpenID = &openID
		u.LoginMethod = "github"
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// TestProgress 创建测试阅读记录
func TestProgress(t *testing.T, db *gorm.DB, userID, verseID int64, opts ...func(*model.ReadingProgress)) *model.ReadingProgress {
	t.Helper()

	entry := &model.ReadingProgress{
		UserID:           userID,
		VerseID:          verseID,
		BookName:         "Gênesis",
		BookAbbreviation: "GEN",
		ChapterNumber:    1,
		VerseNumber:      int(verseID % 100),
		ReadAt:           time.Now(),
	}

	for _, opt := range opts {
		opt(entry)
	}

	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("Failed to create test progress entry: %v", err)
	}

	return entry
}

// WithReadAt 设置阅读时间
func WithReadAt(at time.Time) func(*model.ReadingProgress) {
	return func(p *model.ReadingProgress) {
		p.ReadAt = at
	}
}

// WithLocation 设置经文出处
func WithLocation(bookName, abbrev string, chapter, verse int) func(*model.ReadingProgress) {
	return func(p *model.ReadingProgress) {
		p.BookName = bookName
		p.BookAbbreviation = abbrev
		p.ChapterNumber = chapter
		p.VerseNumber = verse
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, plan string, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:    userID,
		Plan:      plan,
		Active:    true,
		StartDate: time.Now(),
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithInactive 设置为停用
func WithInactive() func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Active = false
	}
}

// WithEndDate 设置到期时间
func WithEndDate(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.EndDate = &at
	}
}
