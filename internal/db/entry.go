package db

import (
	"time"

	"gorm.io/gorm"
)

// 条目模型：每种条目都只属于一条 DailyLog，通过外键级联删除。
// 枚举字段以小写字符串存储，取值校验放在 service 层的显式校验函数里。

// FoodEntry 记录一次进食
// MealType 取值 breakfast/lunch/dinner/snack/other
type FoodEntry struct {
	gorm.Model
	DailyLogID  uint `gorm:"index;not null"`
	FoodName    string
	Description string
	MealType    string
	Calories    int
	Timestamp   time.Time
}

// ExerciseEntry 记录一次运动
// Intensity 取值 low/moderate/high/very_high
type ExerciseEntry struct {
	gorm.Model
	DailyLogID      uint `gorm:"index;not null"`
	ExerciseType    string
	Description     string
	DurationMinutes int
	Intensity       string
	CaloriesBurned  int
	Timestamp       time.Time
}

// WorkEntry 记录一段工作时间，EndTime 不早于 StartTime
// ProductivityRating 与 StressLevel 取值 1-10
type WorkEntry struct {
	gorm.Model
	DailyLogID         uint `gorm:"index;not null"`
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	ProductivityRating int
	StressLevel        int
}

// EventEntry 记录一件事件，ImpactRating 取值 -5..5
// EventType 取值 social/personal/professional/family/health/other
type EventEntry struct {
	gorm.Model
	DailyLogID   uint `gorm:"index;not null"`
	Description  string
	EventType    string
	ImpactRating int
	Timestamp    time.Time
}

// MoodEntry 记录一次即时心情，MoodRating 取值 1-10
// Factors 以 JSON 字符串存储影响因素
type MoodEntry struct {
	gorm.Model
	DailyLogID  uint `gorm:"index;not null"`
	MoodRating  int
	Description string
	Factors     string
	Timestamp   time.Time
}
