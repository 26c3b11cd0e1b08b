package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/db"
)

// JSON 载荷转换：模型到响应对象的映射集中在这里，字段名与外部契约保持一致。

func userToPayload(user *db.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func userWithProfilePayload(user *db.User) gin.H {
	payload := userToPayload(user)
	if user.Profile.ID != 0 {
		payload["profile"] = profileToPayload(&user.Profile)
	}
	return payload
}

func profileToPayload(profile *db.Profile) gin.H {
	return gin.H{
		"id":                   profile.ID,
		"user_id":              profile.UserID,
		"bio":                  profile.Bio,
		"timezone":             profile.Timezone,
		"activity_preferences": decodeJSONValue(profile.ActivityPreferences),
		"avatar_url":           profile.AvatarURL,
		"created_at":           profile.CreatedAt,
		"updated_at":           profile.UpdatedAt,
	}
}

func dailyLogToPayload(log *db.DailyLog) gin.H {
	return gin.H{
		"id":           log.ID,
		"user_id":      log.UserID,
		"date":         log.LogDate.Format("2006-01-02"),
		"overall_mood": log.OverallMood,
		"notes":        log.Notes,
		"created_at":   log.CreatedAt,
		"updated_at":   log.UpdatedAt,
	}
}

func dailyLogWithChildrenPayload(log *db.DailyLog) gin.H {
	payload := dailyLogToPayload(log)

	food := make([]gin.H, 0, len(log.FoodEntries))
	for i := range log.FoodEntries {
		food = append(food, foodEntryToPayload(&log.FoodEntries[i]))
	}
	exercise := make([]gin.H, 0, len(log.ExerciseEntries))
	for i := range log.ExerciseEntries {
		exercise = append(exercise, exerciseEntryToPayload(&log.ExerciseEntries[i]))
	}
	work := make([]gin.H, 0, len(log.WorkEntries))
	for i := range log.WorkEntries {
		work = append(work, workEntryToPayload(&log.WorkEntries[i]))
	}
	events := make([]gin.H, 0, len(log.EventEntries))
	for i := range log.EventEntries {
		events = append(events, eventEntryToPayload(&log.EventEntries[i]))
	}
	moods := make([]gin.H, 0, len(log.MoodEntries))
	for i := range log.MoodEntries {
		moods = append(moods, moodEntryToPayload(&log.MoodEntries[i]))
	}
	insights := make([]gin.H, 0, len(log.AIInsights))
	for i := range log.AIInsights {
		insights = append(insights, insightToPayload(&log.AIInsights[i]))
	}

	payload["food_entries"] = food
	payload["exercise_entries"] = exercise
	payload["work_entries"] = work
	payload["event_entries"] = events
	payload["mood_entries"] = moods
	payload["ai_insights"] = insights
	return payload
}

func foodEntryToPayload(entry *db.FoodEntry) gin.H {
	return gin.H{
		"id":           entry.ID,
		"daily_log_id": entry.DailyLogID,
		"food_name":    entry.FoodName,
		"description":  entry.Description,
		"meal_type":    entry.MealType,
		"calories":     entry.Calories,
		"timestamp":    entry.Timestamp,
		"created_at":   entry.CreatedAt,
		"updated_at":   entry.UpdatedAt,
	}
}

func exerciseEntryToPayload(entry *db.ExerciseEntry) gin.H {
	return gin.H{
		"id":               entry.ID,
		"daily_log_id":     entry.DailyLogID,
		"exercise_type":    entry.ExerciseType,
		"description":      entry.Description,
		"duration_minutes": entry.DurationMinutes,
		"intensity":        entry.Intensity,
		"calories_burned":  entry.CaloriesBurned,
		"timestamp":        entry.Timestamp,
		"created_at":       entry.CreatedAt,
		"updated_at":       entry.UpdatedAt,
	}
}

func workEntryToPayload(entry *db.WorkEntry) gin.H {
	return gin.H{
		"id":                  entry.ID,
		"daily_log_id":        entry.DailyLogID,
		"description":         entry.Description,
		"start_time":          entry.StartTime,
		"end_time":            entry.EndTime,
		"productivity_rating": entry.ProductivityRating,
		"stress_level":        entry.StressLevel,
		"created_at":          entry.CreatedAt,
		"updated_at":          entry.UpdatedAt,
	}
}

func eventEntryToPayload(entry *db.EventEntry) gin.H {
	return gin.H{
		"id":            entry.ID,
		"daily_log_id":  entry.DailyLogID,
		"description":   entry.Description,
		"event_type":    entry.EventType,
		"impact_rating": entry.ImpactRating,
		"timestamp":     entry.Timestamp,
		"created_at":    entry.CreatedAt,
		"updated_at":    entry.UpdatedAt,
	}
}

func moodEntryToPayload(entry *db.MoodEntry) gin.H {
	return gin.H{
		"id":           entry.ID,
		"daily_log_id": entry.DailyLogID,
		"mood_rating":  entry.MoodRating,
		"description":  entry.Description,
		"factors":      decodeJSONValue(entry.Factors),
		"timestamp":    entry.Timestamp,
		"created_at":   entry.CreatedAt,
		"updated_at":   entry.UpdatedAt,
	}
}

func insightToPayload(insight *db.AIInsight) gin.H {
	return gin.H{
		"id":               insight.ID,
		"daily_log_id":     insight.DailyLogID,
		"insight_type":     insight.InsightType,
		"content":          insight.Content,
		"content_html":     renderInsightHTML(insight.Content),
		"related_factors":  decodeJSONValue(insight.RelatedFactors),
		"confidence_score": insight.ConfidenceScore,
		"created_at":       insight.CreatedAt,
	}
}

func recommendationToPayload(rec *db.ActivityRecommendation) gin.H {
	return gin.H{
		"id":               rec.ID,
		"user_id":          rec.UserID,
		"activity_name":    rec.ActivityName,
		"description":      rec.Description,
		"duration_minutes": rec.DurationMinutes,
		"expected_benefit": rec.ExpectedBenefit,
		"is_completed":     rec.IsCompleted,
		"user_rating":      rec.UserRating,
		"created_at":       rec.CreatedAt,
	}
}

// decodeJSONValue 宽容解析 JSON 字符串列：为空返回 nil，解析失败按原始字符串返回。
func decodeJSONValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return raw
	}
	return value
}

// parseTimestamp 解析可选的时间字段，接受 RFC3339，空串返回零值。
func parseTimestamp(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
