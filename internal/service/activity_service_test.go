package service

import (
	"errors"
	"testing"

	"github.com/lifelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupActivityTestDB(t *testing.T) func() {
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

func TestActivityServiceCreateAndList(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	svc := NewActivityService(db.DB)

	rec, err := svc.Create(user.ID, RecommendationInput{
		ActivityName:    "Morning meditation",
		Description:     "10 minutes of mindfulness",
		DurationMinutes: 10,
		ExpectedBenefit: "Reduced stress",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected recommendation to have ID")
	}
	if rec.IsCompleted {
		t.Fatal("new recommendation must not be completed")
	}

	var validation *ValidationError
	if _, err := svc.Create(user.ID, RecommendationInput{ActivityName: "", DurationMinutes: 10}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for activity_name, got %v", err)
	}
	if _, err := svc.Create(user.ID, RecommendationInput{ActivityName: "Walk", DurationMinutes: 0}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for duration_minutes, got %v", err)
	}

	recs, err := svc.List(user.ID, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
}

func TestActivityServicePartialUpdate(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	user := createTestUser(t, "john@example.com", "johndoe")
	svc := NewActivityService(db.DB)

	rec, err := svc.Create(user.ID, RecommendationInput{ActivityName: "Nature walk", DurationMinutes: 30})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	completed := true
	updated, err := svc.Update(user.ID, rec.ID, RecommendationUpdate{IsCompleted: &completed})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.IsCompleted {
		t.Fatal("expected recommendation to be completed")
	}
	if updated.UserRating != nil {
		t.Fatal("rating must stay unset when not provided")
	}

	rating := 4
	updated, err = svc.Update(user.ID, rec.ID, RecommendationUpdate{UserRating: &rating})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.UserRating == nil || *updated.UserRating != 4 {
		t.Fatalf("unexpected rating: %v", updated.UserRating)
	}
	// 未提供的字段保持不变
	if !updated.IsCompleted {
		t.Fatal("completed flag must survive a rating-only update")
	}

	bad := 6
	var validation *ValidationError
	if _, err := svc.Update(user.ID, rec.ID, RecommendationUpdate{UserRating: &bad}); !errors.As(err, &validation) {
		t.Fatalf("expected validation error for user_rating, got %v", err)
	}
}

func TestActivityServiceOwnershipAndDelete(t *testing.T) {
	cleanup := setupActivityTestDB(t)
	defer cleanup()

	owner := createTestUser(t, "john@example.com", "johndoe")
	intruder := createTestUser(t, "jane@example.com", "janedoe")
	svc := NewActivityService(db.DB)

	rec, err := svc.Create(owner.ID, RecommendationInput{ActivityName: "Digital detox", DurationMinutes: 60})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Get(intruder.ID, rec.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Get(owner.ID, 9999); !errors.Is(err, ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound, got %v", err)
	}

	if err := svc.Delete(owner.ID, rec.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(owner.ID, rec.ID); !errors.Is(err, ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound after delete, got %v", err)
	}
}
