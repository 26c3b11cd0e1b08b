package db

import (
	"gorm.io/gorm"
)

// 洞察类型枚举
const (
	InsightMoodCorrelation    = "mood_correlation"
	InsightHabitSuggestion    = "habit_suggestion"
	InsightPatternRecognition = "pattern_recognition"
	InsightGeneralObservation = "general_observation"
)

// AIInsight 保存模型生成的分析结果，只追加不更新
// RelatedFactors 以 JSON 字符串存储；ConfidenceScore 取值 0-1
type AIInsight struct {
	gorm.Model
	DailyLogID      uint `gorm:"index;not null"`
	InsightType     string
	Content         string
	RelatedFactors  string
	ConfidenceScore float64
}

// ActivityRecommendation 保存推荐活动，归属于用户本人
// UserRating 为空表示尚未评分，取值 1-5
type ActivityRecommendation struct {
	gorm.Model
	UserID          uint `gorm:"index;not null"`
	ActivityName    string
	Description     string
	DurationMinutes int
	ExpectedBenefit string
	IsCompleted     bool `gorm:"default:false"`
	UserRating      *int
}
