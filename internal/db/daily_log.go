package db

import (
	"time"

	"gorm.io/gorm"
)

// DailyLog 是每日记录的聚合根，所有条目类型都挂在它下面
// UserID + LogDate 采用唯一索引，保证同一用户每天只有一条记录
// OverallMood 取值 1-10
type DailyLog struct {
	gorm.Model
	UserID      uint      `gorm:"index;index:idx_daily_log_unique,unique;not null"`
	LogDate     time.Time `gorm:"index:idx_daily_log_unique,unique"`
	OverallMood int
	Notes       string

	FoodEntries     []FoodEntry     `gorm:"constraint:OnDelete:CASCADE"`
	ExerciseEntries []ExerciseEntry `gorm:"constraint:OnDelete:CASCADE"`
	WorkEntries     []WorkEntry     `gorm:"constraint:OnDelete:CASCADE"`
	EventEntries    []EventEntry    `gorm:"constraint:OnDelete:CASCADE"`
	MoodEntries     []MoodEntry     `gorm:"constraint:OnDelete:CASCADE"`
	AIInsights      []AIInsight     `gorm:"constraint:OnDelete:CASCADE"`
}
