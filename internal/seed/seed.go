package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lifelog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultLogDays = 14

// 周二与周五是演示数据里的"乳制品日"，当天情绪会被压低，
// 并在晚餐后追加一条腹胀类心情记录，供洞察分析发现关联。
func isDairyDay(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Tuesday || wd == time.Friday
}

// Run 向空库写入演示用户及两周的日志数据，已有用户时跳过
func Run(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&db.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Println("数据库已有数据，跳过演示数据生成")
		return nil
	}

	log.Println("开始生成演示数据...")

	for _, demo := range demoUsers {
		if err := seedUser(gdb, demo); err != nil {
			return fmt.Errorf("seed user %s: %w", demo.Username, err)
		}
	}

	log.Printf("演示数据生成完成: %d 个用户，各 %d 天日志", len(demoUsers), defaultLogDays)
	return nil
}

// seedUser 在单个事务内创建用户、资料、日志及全部条目
func seedUser(gdb *gorm.DB, demo demoUser) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		user := db.User{
			Email:    demo.Email,
			Username: demo.Username,
			Password: string(hashed),
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := db.Profile{
			UserID:   user.ID,
			Bio:      demo.Bio,
			Timezone: "UTC",
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		logs := GenerateDailyLogs(user.ID, defaultLogDays)
		for i := range logs {
			if err := tx.Create(&logs[i]).Error; err != nil {
				return err
			}
			if err := createEntriesForLog(tx, &logs[i]); err != nil {
				return err
			}
		}

		// 每个用户附带两条活动建议，一部分标记为已完成并打分
		for i := 0; i < 2; i++ {
			item := recommendationCatalog[rand.Intn(len(recommendationCatalog))]
			rec := db.ActivityRecommendation{
				UserID:          user.ID,
				ActivityName:    item.ActivityName,
				Description:     item.Description,
				DurationMinutes: item.DurationMinutes,
				ExpectedBenefit: item.ExpectedBenefit,
				IsCompleted:     rand.Intn(2) == 0,
			}
			if rec.IsCompleted {
				rating := 1 + rand.Intn(5)
				rec.UserRating = &rating
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GenerateDailyLogs 生成最近 numDays 天的日志，周末情绪偏高，乳制品日偏低
func GenerateDailyLogs(userID uint, numDays int) []db.DailyLog {
	logs := make([]db.DailyLog, 0, numDays)
	end := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 0; i < numDays; i++ {
		date := end.AddDate(0, 0, -i)

		base := 5 + rand.Intn(4)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			base += rand.Intn(3)
		}
		mood := clampMood(base + rand.Intn(5) - 2)
		if isDairyDay(date) {
			mood = clampMood(mood - (1 + rand.Intn(2)))
		}

		logs = append(logs, db.DailyLog{
			UserID:      userID,
			LogDate:     date,
			OverallMood: mood,
			Notes:       fmt.Sprintf("Day %d of tracking", numDays-i),
		})
	}
	return logs
}

// createEntriesForLog 按日志当天的情绪与星期生成五类条目
func createEntriesForLog(tx *gorm.DB, dailyLog *db.DailyLog) error {
	date := dailyLog.LogDate
	mood := dailyLog.OverallMood
	dairy := isDairyDay(date)

	mealHours := []int{7, 8, 12, 13, 18, 19, 15, 16}
	numFood := 3 + rand.Intn(3)
	for i := 0; i < numFood; i++ {
		item := foodCatalog[rand.Intn(len(foodCatalog))]
		entry := db.FoodEntry{
			DailyLogID: dailyLog.ID,
			FoodName:   item.Name,
			MealType:   item.MealType,
			Calories:   item.Calories,
			Timestamp:  atHour(date, mealHours[rand.Intn(len(mealHours))]),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	if dairy {
		item := bloatingFoodCatalog[rand.Intn(len(bloatingFoodCatalog))]
		dinnerHour := 18 + rand.Intn(3)
		entry := db.FoodEntry{
			DailyLogID: dailyLog.ID,
			FoodName:   item.Name,
			MealType:   item.MealType,
			Calories:   item.Calories,
			Timestamp:  atHour(date, dinnerHour),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		// 乳制品餐后 1-2 小时补一条低分心情
		postHour := dinnerHour + 1 + rand.Intn(2)
		if postHour > 23 {
			postHour = 23
		}
		moodEntry := db.MoodEntry{
			DailyLogID:  dailyLog.ID,
			MoodRating:  clampMood(mood - (2 + rand.Intn(2))),
			Description: dairyMoodDescriptions[rand.Intn(len(dairyMoodDescriptions))],
			Timestamp:   atHour(date, postHour),
		}
		if err := tx.Create(&moodEntry).Error; err != nil {
			return err
		}
	}

	exerciseHours := []int{6, 7, 17, 18, 19}
	numExercise := rand.Intn(3)
	for i := 0; i < numExercise; i++ {
		item := exerciseCatalog[rand.Intn(len(exerciseCatalog))]
		duration := 20 + rand.Intn(41)
		entry := db.ExerciseEntry{
			DailyLogID:      dailyLog.ID,
			ExerciseType:    item.Type,
			Description:     fmt.Sprintf("%d minute %s session", duration, item.Type),
			DurationMinutes: duration,
			Intensity:       item.Intensity,
			CaloriesBurned:  item.CaloriesBurned * duration / 30,
			Timestamp:       atHour(date, exerciseHours[rand.Intn(len(exerciseHours))]),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	// 工作条目只在工作日生成，效率随情绪走高，压力反向
	if wd := date.Weekday(); wd >= time.Monday && wd <= time.Friday {
		start := 8 + rand.Intn(3)
		hours := 6 + rand.Intn(4)
		entry := db.WorkEntry{
			DailyLogID:         dailyLog.ID,
			Description:        workDescriptions[rand.Intn(len(workDescriptions))],
			StartTime:          atHour(date, start),
			EndTime:            atHour(date, start+hours),
			ProductivityRating: randBetween(clampMood(mood-3), clampMood(mood+3)),
			StressLevel:        randBetween(clampMood(11-mood-3), clampMood(11-mood+3)),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	numEvents := rand.Intn(3)
	for i := 0; i < numEvents; i++ {
		item := eventCatalog[rand.Intn(len(eventCatalog))]
		entry := db.EventEntry{
			DailyLogID:   dailyLog.ID,
			Description:  item.Description,
			EventType:    item.EventType,
			ImpactRating: item.ImpactRating,
			Timestamp:    atHour(date, 8+rand.Intn(14)),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}

	numMoods := 1 + rand.Intn(3)
	for i := 0; i < numMoods; i++ {
		entry := db.MoodEntry{
			DailyLogID:  dailyLog.ID,
			MoodRating:  clampMood(mood + rand.Intn(5) - 2),
			Description: moodDescriptions[rand.Intn(len(moodDescriptions))],
			Timestamp:   atHour(date, 8+i*6),
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func atHour(date time.Time, hour int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, rand.Intn(60), 0, 0, time.UTC)
}

func clampMood(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}

func randBetween(low, high int) int {
	if high <= low {
		return low
	}
	return low + rand.Intn(high-low+1)
}
