package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/lifelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupProfileTestDB(t *testing.T) func() {
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

func registerProfileUser(t *testing.T) *db.User {
	t.Helper()
	user, err := NewUserService(db.DB).Register(RegisterInput{
		Email:    "john@example.com",
		Username: "johndoe",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	return user
}

func TestProfileServiceUpdate(t *testing.T) {
	cleanup := setupProfileTestDB(t)
	defer cleanup()

	user := registerProfileUser(t)
	svc := NewProfileService(db.DB)

	profile, err := svc.Update(user.ID, ProfileInput{
		Bio:      "Fitness enthusiast",
		Timezone: "Asia/Shanghai",
		ActivityPreferences: map[string]any{
			"outdoor": true,
			"team":    false,
		},
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Bio != "Fitness enthusiast" {
		t.Fatalf("unexpected bio: %s", profile.Bio)
	}
	if profile.Timezone != "Asia/Shanghai" {
		t.Fatalf("unexpected timezone: %s", profile.Timezone)
	}

	prefs := svc.Preferences(profile)
	if outdoor, ok := prefs["outdoor"].(bool); !ok || !outdoor {
		t.Fatalf("unexpected preferences: %#v", prefs)
	}

	// 时区留空时回退到 UTC
	profile, err = svc.Update(user.ID, ProfileInput{Bio: "updated"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Timezone != "UTC" {
		t.Fatalf("unexpected timezone: %s", profile.Timezone)
	}
}

func TestProfileServiceBioTooLong(t *testing.T) {
	cleanup := setupProfileTestDB(t)
	defer cleanup()

	user := registerProfileUser(t)
	svc := NewProfileService(db.DB)

	var validation *ValidationError
	if _, err := svc.Update(user.ID, ProfileInput{Bio: strings.Repeat("x", 181)}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProfileServiceSetAvatar(t *testing.T) {
	cleanup := setupProfileTestDB(t)
	defer cleanup()

	user := registerProfileUser(t)
	svc := NewProfileService(db.DB)

	profile, err := svc.SetAvatar(user.ID, "/static/uploads/avatar.png")
	if err != nil {
		t.Fatalf("SetAvatar returned error: %v", err)
	}
	if profile.AvatarURL != "/static/uploads/avatar.png" {
		t.Fatalf("unexpected avatar url: %s", profile.AvatarURL)
	}
}

func TestProfileServiceGetMissing(t *testing.T) {
	cleanup := setupProfileTestDB(t)
	defer cleanup()

	svc := NewProfileService(db.DB)
	if _, err := svc.Get(9999); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
