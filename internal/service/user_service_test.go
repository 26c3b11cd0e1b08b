package service

import (
	"errors"
	"testing"

	"github.com/lifelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestUserServiceRegisterCreatesProfile(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	user, err := svc.Register(RegisterInput{
		Email:    "John@Example.com",
		Username: "johndoe",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to have ID")
	}
	// 邮箱统一转小写存储
	if user.Email != "john@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
	if user.Password == "password123" {
		t.Fatal("password must not be stored in plaintext")
	}
	if !user.IsActive {
		t.Fatal("expected user to be active")
	}

	var profile db.Profile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		t.Fatalf("expected profile to be created: %v", err)
	}
	if profile.Timezone != "UTC" {
		t.Fatalf("unexpected timezone: %s", profile.Timezone)
	}
}

func TestUserServiceRegisterRejectsDuplicates(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	if _, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "johndoe", Password: "password123"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if _, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "someoneelse", Password: "password123"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Register(RegisterInput{Email: "other@example.com", Username: "johndoe", Password: "password123"}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserServiceRegisterValidation(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	var validation *ValidationError
	if _, err := svc.Register(RegisterInput{Email: "not-an-email", Username: "johndoe", Password: "password123"}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for email, got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "", Password: "password123"}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for username, got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "johndoe", Password: "short"}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for password, got %v", err)
	}
}

func TestUserServiceAuthenticate(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	registered, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "johndoe", Password: "password123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := svc.Authenticate("johndoe", "password123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("unexpected user id: %d", user.ID)
	}

	// 密码错误与用户不存在都返回同一个错误，避免账号枚举
	if _, err := svc.Authenticate("johndoe", "wrongpass"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody", "password123"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestUserServiceGetAndList(t *testing.T) {
	cleanup := setupUserTestDB(t)
	defer cleanup()

	svc := NewUserService(db.DB)

	created, err := svc.Register(RegisterInput{Email: "john@example.com", Username: "johndoe", Password: "password123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "jane@example.com", Username: "janedoe", Password: "password123"}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	user, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if user.Profile.UserID != created.ID {
		t.Fatal("expected profile to be preloaded")
	}

	if _, err := svc.Get(9999); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	users, err := svc.List(0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	paged, err := svc.List(1, 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(paged) != 1 {
		t.Fatalf("expected 1 user, got %d", len(paged))
	}
}
