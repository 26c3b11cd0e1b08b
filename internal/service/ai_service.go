package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

const (
	minLogsForAnalysis       = 7
	analysisMaxTokens        = 1024
	recommendationMaxTokens  = 512
	recommendationLogWindow  = 10
	maxAILogSnippetRunes     = 1024

	analysisSystemPrompt = "You are an empathetic, kind, helpful assistant specialized in analyzing " +
		"lifestyle patterns and their effects on mood. Your insights should be evidence-based, " +
		"compassionate, and actionable. Focus on finding correlations between activities, diet, " +
		"exercise, events, and mood. Don't make unfounded claims, and acknowledge uncertainty " +
		"when appropriate."

	recommendationSystemPrompt = "You are an AI assistant specialized in recommending personalized " +
		"activities to improve wellbeing. Your recommendations should be specific, actionable, and " +
		"tailored to the user's preferences and current mood patterns. Format your response as JSON " +
		"with fields: activity_name, description, duration_minutes, and expected_benefit."
)

// AIService 封装洞察分析与活动推荐的外部生成调用
// 单次请求/响应，无重试；解析失败在内部降级，外部调用或落库失败统一归为 ErrGenerationFailed
type AIService struct {
	db       *gorm.DB
	profiles *ProfileService
	client   *anthropicClient
}

// NewAIService 构造 AIService
func NewAIService(gdb *gorm.DB, apiKey, baseURL string) *AIService {
	return &AIService{
		db:       gdb,
		profiles: NewProfileService(gdb),
		client:   newAnthropicClient(apiKey, baseURL),
	}
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (s *AIService) SetHTTPClient(client httpDoer) {
	s.client.SetHTTPClient(client)
}

// SetBaseURL 覆盖默认的 Anthropic API 地址。
func (s *AIService) SetBaseURL(base string) {
	s.client.SetBaseURL(base)
}

// SetModel 指定生成所使用的模型名称。
func (s *AIService) SetModel(model string) {
	s.client.SetModel(model)
}

// 聚合载荷：把用户日志及全部子条目压平成一个结构化对象再注入提示词

type analysisFood struct {
	FoodName  string `json:"food_name"`
	MealType  string `json:"meal_type"`
	Timestamp string `json:"timestamp,omitempty"`
}

type analysisExercise struct {
	ExerciseType    string `json:"exercise_type"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	Timestamp       string `json:"timestamp,omitempty"`
}

type analysisWork struct {
	Description        string  `json:"description"`
	ProductivityRating int     `json:"productivity_rating"`
	StressLevel        int     `json:"stress_level"`
	DurationMinutes    float64 `json:"duration_minutes"`
}

type analysisEvent struct {
	Description  string `json:"description"`
	EventType    string `json:"event_type"`
	ImpactRating int    `json:"impact_rating"`
	Timestamp    string `json:"timestamp,omitempty"`
}

type analysisMood struct {
	MoodRating  int    `json:"mood_rating"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type analysisLog struct {
	Date            string             `json:"date"`
	OverallMood     int                `json:"overall_mood"`
	FoodEntries     []analysisFood     `json:"food_entries"`
	ExerciseEntries []analysisExercise `json:"exercise_entries"`
	WorkEntries     []analysisWork     `json:"work_entries"`
	EventEntries    []analysisEvent    `json:"event_entries"`
	MoodEntries     []analysisMood     `json:"mood_entries"`
}

type analysisData struct {
	DailyLogs []analysisLog `json:"daily_logs"`
}

type recommendationActivity struct {
	Type    string         `json:"type"`
	Name    string         `json:"name"`
	Date    string         `json:"date"`
	Details map[string]any `json:"details"`
}

type recommendationData struct {
	Preferences      map[string]any           `json:"preferences"`
	RecentMood       []int                    `json:"recent_mood"`
	RecentActivities []recommendationActivity `json:"recent_activities"`
}

// AnalyzeMoodPatterns 分析用户全部日志并生成一条情绪相关的洞察。
// 日志不足 7 条时返回 ErrInsufficientData，不触发外部调用；洞察挂在最近一条日志上。
func (s *AIService) AnalyzeMoodPatterns(ctx context.Context, userID uint) (*db.AIInsight, error) {
	var count int64
	if err := s.db.Model(&db.DailyLog{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count daily logs: %w", err)
	}
	if count < minLogsForAnalysis {
		return nil, ErrInsufficientData
	}

	var logs []db.DailyLog
	if err := s.db.Where("user_id = ?", userID).
		Preload("FoodEntries").
		Preload("ExerciseEntries").
		Preload("WorkEntries").
		Preload("EventEntries").
		Preload("MoodEntries").
		Order("log_date ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load daily logs: %w", err)
	}

	prompt, err := buildAnalysisPrompt(logs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	logAIExchange("INSIGHT", "prompt", prompt)

	result, err := s.client.complete(ctx, aiChatRequest{
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    analysisMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	logAIExchange("INSIGHT", "response", result.Content)

	payload, parsed := parseInsightPayload(result.Content)
	if !parsed {
		log.Printf("[AI INSIGHT] falling back to unstructured content")
	}

	factors, err := json.Marshal(payload.Factors)
	if err != nil {
		factors = []byte("{}")
	}

	// 洞察挂在最近一条日志上
	latest := logs[len(logs)-1]
	insight := db.AIInsight{
		DailyLogID:      latest.ID,
		InsightType:     db.InsightMoodCorrelation,
		Content:         payload.Content,
		RelatedFactors:  string(factors),
		ConfidenceScore: payload.Confidence,
	}
	if err := s.db.Create(&insight).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &insight, nil
}

// GenerateRecommendation 基于档案偏好与近期日志生成一条个性化活动推荐。
func (s *AIService) GenerateRecommendation(ctx context.Context, userID uint) (*db.ActivityRecommendation, error) {
	preferences := map[string]any{}
	if profile, err := s.profiles.Get(userID); err == nil {
		preferences = s.profiles.Preferences(profile)
	}

	var logs []db.DailyLog
	if err := s.db.Where("user_id = ?", userID).
		Preload("ExerciseEntries").
		Preload("EventEntries").
		Order("log_date DESC").
		Limit(recommendationLogWindow).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load daily logs: %w", err)
	}

	prompt, err := buildRecommendationPrompt(preferences, logs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	logAIExchange("RECOMMEND", "prompt", prompt)

	result, err := s.client.complete(ctx, aiChatRequest{
		SystemPrompt: recommendationSystemPrompt,
		UserPrompt:   prompt,
		MaxTokens:    recommendationMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	logAIExchange("RECOMMEND", "response", result.Content)

	payload, parsed := parseRecommendationPayload(result.Content)
	if !parsed {
		log.Printf("[AI RECOMMEND] falling back to generic recommendation")
	}

	rec := db.ActivityRecommendation{
		UserID:          userID,
		ActivityName:    payload.ActivityName,
		Description:     payload.Description,
		DurationMinutes: payload.DurationMinutes,
		ExpectedBenefit: payload.ExpectedBenefit,
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &rec, nil
}

func buildAnalysisData(logs []db.DailyLog) analysisData {
	data := analysisData{DailyLogs: make([]analysisLog, 0, len(logs))}

	for _, entry := range logs {
		logData := analysisLog{
			Date:            entry.LogDate.Format("2006-01-02"),
			OverallMood:     entry.OverallMood,
			FoodEntries:     make([]analysisFood, 0, len(entry.FoodEntries)),
			ExerciseEntries: make([]analysisExercise, 0, len(entry.ExerciseEntries)),
			WorkEntries:     make([]analysisWork, 0, len(entry.WorkEntries)),
			EventEntries:    make([]analysisEvent, 0, len(entry.EventEntries)),
			MoodEntries:     make([]analysisMood, 0, len(entry.MoodEntries)),
		}

		for _, food := range entry.FoodEntries {
			logData.FoodEntries = append(logData.FoodEntries, analysisFood{
				FoodName:  food.FoodName,
				MealType:  food.MealType,
				Timestamp: formatEntryTime(food.Timestamp),
			})
		}
		for _, exercise := range entry.ExerciseEntries {
			logData.ExerciseEntries = append(logData.ExerciseEntries, analysisExercise{
				ExerciseType:    exercise.ExerciseType,
				DurationMinutes: exercise.DurationMinutes,
				Intensity:       exercise.Intensity,
				Timestamp:       formatEntryTime(exercise.Timestamp),
			})
		}
		for _, work := range entry.WorkEntries {
			logData.WorkEntries = append(logData.WorkEntries, analysisWork{
				Description:        work.Description,
				ProductivityRating: work.ProductivityRating,
				StressLevel:        work.StressLevel,
				DurationMinutes:    work.EndTime.Sub(work.StartTime).Minutes(),
			})
		}
		for _, event := range entry.EventEntries {
			logData.EventEntries = append(logData.EventEntries, analysisEvent{
				Description:  event.Description,
				EventType:    event.EventType,
				ImpactRating: event.ImpactRating,
				Timestamp:    formatEntryTime(event.Timestamp),
			})
		}
		for _, mood := range entry.MoodEntries {
			logData.MoodEntries = append(logData.MoodEntries, analysisMood{
				MoodRating:  mood.MoodRating,
				Description: mood.Description,
				Timestamp:   formatEntryTime(mood.Timestamp),
			})
		}

		data.DailyLogs = append(data.DailyLogs, logData)
	}

	return data
}

func buildAnalysisPrompt(logs []db.DailyLog) (string, error) {
	data := buildAnalysisData(logs)
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode analysis data: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("Analyze the following user lifestyle data and identify patterns that might be affecting their mood.\n\n")
	builder.WriteString("DATA:\n")
	builder.Write(encoded)
	builder.WriteString("\n\nPlease identify:\n")
	builder.WriteString("1. The strongest correlations between activities and mood\n")
	builder.WriteString("2. Potential lifestyle factors that might be improving or worsening mood\n")
	builder.WriteString("3. Patterns in timing, intensity, or frequency of activities that affect mood\n")
	builder.WriteString("4. Any notable inconsistencies or habits that could be modified\n\n")
	builder.WriteString("Format your response as a JSON object with these keys:\n")
	builder.WriteString("- \"content\": A thorough analysis written in a helpful, compassionate tone (300-500 words)\n")
	builder.WriteString("- \"factors\": A list of the key factors affecting mood, with their correlation strength\n")
	builder.WriteString("- \"confidence\": A value between 0 and 1 indicating your confidence in these insights\n\n")
	builder.WriteString("Your analysis should be evidence-based, actionable, and sensitive to the complexity of mood and lifestyle interactions.")
	return builder.String(), nil
}

func buildRecommendationPrompt(preferences map[string]any, logs []db.DailyLog) (string, error) {
	data := recommendationData{
		Preferences:      preferences,
		RecentMood:       make([]int, 0, len(logs)),
		RecentActivities: make([]recommendationActivity, 0),
	}

	for _, entry := range logs {
		data.RecentMood = append(data.RecentMood, entry.OverallMood)

		for _, exercise := range entry.ExerciseEntries {
			data.RecentActivities = append(data.RecentActivities, recommendationActivity{
				Type: "exercise",
				Name: exercise.ExerciseType,
				Date: formatEntryTime(exercise.Timestamp),
				Details: map[string]any{
					"duration_minutes": exercise.DurationMinutes,
					"intensity":        exercise.Intensity,
				},
			})
		}
		for _, event := range entry.EventEntries {
			data.RecentActivities = append(data.RecentActivities, recommendationActivity{
				Type: "event",
				Name: event.Description,
				Date: formatEntryTime(event.Timestamp),
				Details: map[string]any{
					"event_type":    event.EventType,
					"impact_rating": event.ImpactRating,
				},
			})
		}
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode recommendation data: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("Based on the following user data, recommend a single personalized activity that could help improve their wellbeing.\n\n")
	builder.WriteString("USER DATA:\n")
	builder.Write(encoded)
	builder.WriteString("\n\nConsider:\n")
	builder.WriteString("- The user's recent mood trends\n")
	builder.WriteString("- Their activity preferences\n")
	builder.WriteString("- Recent activities they've already done\n\n")
	builder.WriteString("Format your response as a JSON object with these fields:\n")
	builder.WriteString("- activity_name: A concise name for the recommended activity\n")
	builder.WriteString("- description: A detailed description (2-3 sentences)\n")
	builder.WriteString("- duration_minutes: Estimated time needed (integer)\n")
	builder.WriteString("- expected_benefit: Primary benefit to mood or wellbeing\n\n")
	builder.WriteString("Make your recommendation specific, actionable, and tailored to this user's unique situation.")
	return builder.String(), nil
}

func formatEntryTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// logAIExchange 输出 AI 请求与响应的关键信息，便于排查模型行为。
func logAIExchange(kind, phase, content string) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		log.Printf("[AI %s] %s: <empty>", kind, phase)
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxAILogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxAILogSnippetRunes]) + "…(truncated)"
	}
	log.Printf("[AI %s] %s (runes=%d): %s", kind, phase, runeCount, snippet)
}
