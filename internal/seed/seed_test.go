package seed

import (
	"testing"
	"time"

	"github.com/lifelog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) func() {
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

func TestSeedRunPopulatesDemoData(t *testing.T) {
	cleanup := setupSeedTestDB(t)
	defer cleanup()

	if err := Run(db.DB); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var userCount int64
	db.DB.Model(&db.User{}).Count(&userCount)
	if userCount != int64(len(demoUsers)) {
		t.Fatalf("expected %d users, got %d", len(demoUsers), userCount)
	}

	var profileCount int64
	db.DB.Model(&db.Profile{}).Count(&profileCount)
	if profileCount != userCount {
		t.Fatalf("expected one profile per user, got %d", profileCount)
	}

	var users []db.User
	if err := db.DB.Find(&users).Error; err != nil {
		t.Fatalf("failed to load users: %v", err)
	}
	for _, user := range users {
		if user.Password == "password123" {
			t.Fatal("seeded password must be hashed")
		}

		var logCount int64
		db.DB.Model(&db.DailyLog{}).Where("user_id = ?", user.ID).Count(&logCount)
		if logCount != defaultLogDays {
			t.Fatalf("expected %d logs for %s, got %d", defaultLogDays, user.Username, logCount)
		}

		var recCount int64
		db.DB.Model(&db.ActivityRecommendation{}).Where("user_id = ?", user.ID).Count(&recCount)
		if recCount != 2 {
			t.Fatalf("expected 2 recommendations for %s, got %d", user.Username, recCount)
		}
	}
}

func TestSeedRunSkipsPopulatedDatabase(t *testing.T) {
	cleanup := setupSeedTestDB(t)
	defer cleanup()

	if err := Run(db.DB); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var before int64
	db.DB.Model(&db.DailyLog{}).Count(&before)

	if err := Run(db.DB); err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}

	var after int64
	db.DB.Model(&db.DailyLog{}).Count(&after)
	if before != after {
		t.Fatalf("second run must not add data: before=%d after=%d", before, after)
	}
}

func TestSeedDairyDaysCarryBloatingSignal(t *testing.T) {
	cleanup := setupSeedTestDB(t)
	defer cleanup()

	if err := Run(db.DB); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	bloatingNames := map[string]bool{}
	for _, item := range bloatingFoodCatalog {
		bloatingNames[item.Name] = true
	}
	dairyMoods := map[string]bool{}
	for _, text := range dairyMoodDescriptions {
		dairyMoods[text] = true
	}

	var logs []db.DailyLog
	if err := db.DB.Preload("FoodEntries").Preload("MoodEntries").Find(&logs).Error; err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}

	checked := 0
	for _, dailyLog := range logs {
		if !isDairyDay(dailyLog.LogDate) {
			continue
		}
		checked++

		foundFood := false
		for _, food := range dailyLog.FoodEntries {
			if bloatingNames[food.FoodName] {
				foundFood = true
				break
			}
		}
		if !foundFood {
			t.Fatalf("dairy day %v has no bloating food", dailyLog.LogDate)
		}

		foundMood := false
		for _, mood := range dailyLog.MoodEntries {
			if dairyMoods[mood.Description] {
				foundMood = true
				break
			}
		}
		if !foundMood {
			t.Fatalf("dairy day %v has no digestive mood entry", dailyLog.LogDate)
		}
	}
	if checked == 0 {
		t.Fatal("expected at least one dairy day in a two-week window")
	}
}

func TestGenerateDailyLogsInvariants(t *testing.T) {
	t.Parallel()

	logs := GenerateDailyLogs(1, defaultLogDays)
	if len(logs) != defaultLogDays {
		t.Fatalf("expected %d logs, got %d", defaultLogDays, len(logs))
	}

	seen := map[string]bool{}
	for _, entry := range logs {
		if entry.OverallMood < 1 || entry.OverallMood > 10 {
			t.Fatalf("mood out of range: %d", entry.OverallMood)
		}
		if entry.LogDate.Hour() != 0 || entry.LogDate.Minute() != 0 {
			t.Fatalf("log date not normalized: %v", entry.LogDate)
		}
		key := entry.LogDate.Format("2006-01-02")
		if seen[key] {
			t.Fatalf("duplicate date %s", key)
		}
		seen[key] = true
	}
}

func TestIsDairyDay(t *testing.T) {
	t.Parallel()

	// 2026-08-04 是周二，2026-08-07 是周五
	if !isDairyDay(time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("Tuesday must be a dairy day")
	}
	if !isDairyDay(time.Date(2026, 8, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("Friday must be a dairy day")
	}
	if isDairyDay(time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("Wednesday is not a dairy day")
	}
}
