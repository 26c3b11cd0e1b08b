package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

// 条目字段的封闭取值集合
var (
	mealTypes       = map[string]bool{"breakfast": true, "lunch": true, "dinner": true, "snack": true, "other": true}
	intensityLevels = map[string]bool{"low": true, "moderate": true, "high": true, "very_high": true}
	eventTypes      = map[string]bool{"social": true, "personal": true, "professional": true, "family": true, "health": true, "other": true}
)

// EntryService 负责五类条目的增删改查
// 每个操作都先沿归属链校验：日志存在且属于调用者，条目属于该日志
type EntryService struct {
	db *gorm.DB
}

// NewEntryService 构造 EntryService
func NewEntryService(gdb *gorm.DB) *EntryService {
	return &EntryService{db: gdb}
}

// FoodEntryInput 定义饮食条目的可配置字段
type FoodEntryInput struct {
	FoodName    string
	Description string
	MealType    string
	Calories    int
	Timestamp   time.Time
}

// ExerciseEntryInput 定义运动条目的可配置字段
type ExerciseEntryInput struct {
	ExerciseType    string
	Description     string
	DurationMinutes int
	Intensity       string
	CaloriesBurned  int
	Timestamp       time.Time
}

// WorkEntryInput 定义工作条目的可配置字段
type WorkEntryInput struct {
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	ProductivityRating int
	StressLevel        int
}

// EventEntryInput 定义事件条目的可配置字段
type EventEntryInput struct {
	Description  string
	EventType    string
	ImpactRating int
	Timestamp    time.Time
}

// MoodEntryInput 定义心情条目的可配置字段
type MoodEntryInput struct {
	MoodRating  int
	Description string
	Factors     map[string]any
	Timestamp   time.Time
}

// ownedLogOf 校验日志存在且属于调用者
func (s *EntryService) ownedLogOf(userID, logID uint) (*db.DailyLog, error) {
	var log db.DailyLog
	if err := s.db.First(&log, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("find daily log: %w", err)
	}
	if log.UserID != userID {
		return nil, ErrNotOwner
	}
	return &log, nil
}

func entryTimestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func validateFoodInput(input FoodEntryInput) error {
	if strings.TrimSpace(input.FoodName) == "" {
		return invalidField("food_name", "is required")
	}
	if !mealTypes[input.MealType] {
		return invalidField("meal_type", "must be one of breakfast, lunch, dinner, snack, other")
	}
	if input.Calories < 0 {
		return invalidField("calories", "must not be negative")
	}
	return nil
}

func validateExerciseInput(input ExerciseEntryInput) error {
	if strings.TrimSpace(input.ExerciseType) == "" {
		return invalidField("exercise_type", "is required")
	}
	if input.DurationMinutes <= 0 {
		return invalidField("duration_minutes", "must be positive")
	}
	if !intensityLevels[input.Intensity] {
		return invalidField("intensity", "must be one of low, moderate, high, very_high")
	}
	if input.CaloriesBurned < 0 {
		return invalidField("calories_burned", "must not be negative")
	}
	return nil
}

func validateWorkInput(input WorkEntryInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return invalidField("description", "is required")
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return invalidField("start_time", "start_time and end_time are required")
	}
	if input.EndTime.Before(input.StartTime) {
		return invalidField("end_time", "must not be before start_time")
	}
	if input.ProductivityRating < 1 || input.ProductivityRating > 10 {
		return invalidField("productivity_rating", "must be between 1 and 10")
	}
	if input.StressLevel < 1 || input.StressLevel > 10 {
		return invalidField("stress_level", "must be between 1 and 10")
	}
	return nil
}

func validateEventInput(input EventEntryInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return invalidField("description", "is required")
	}
	if !eventTypes[input.EventType] {
		return invalidField("event_type", "must be one of social, personal, professional, family, health, other")
	}
	if input.ImpactRating < -5 || input.ImpactRating > 5 {
		return invalidField("impact_rating", "must be between -5 and 5")
	}
	return nil
}

func validateMoodInput(input MoodEntryInput) error {
	return validateMoodRating("mood_rating", input.MoodRating)
}

func encodeFactors(factors map[string]any) (string, error) {
	if factors == nil {
		return "", nil
	}
	raw, err := json.Marshal(factors)
	if err != nil {
		return "", invalidField("factors", "must be a JSON object")
	}
	return string(raw), nil
}

// CreateFood 在指定日志下新增一条饮食条目
func (s *EntryService) CreateFood(userID, logID uint, input FoodEntryInput) (*db.FoodEntry, error) {
	if err := validateFoodInput(input); err != nil {
		return nil, err
	}
	log, err := s.ownedLogOf(userID, logID)
	if err != nil {
		return nil, err
	}

	entry := db.FoodEntry{
		DailyLogID:  log.ID,
		FoodName:    strings.TrimSpace(input.FoodName),
		Description: strings.TrimSpace(input.Description),
		MealType:    input.MealType,
		Calories:    input.Calories,
		Timestamp:   entryTimestamp(input.Timestamp),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create food entry: %w", err)
	}
	return &entry, nil
}

// ListFood 返回日志下的饮食条目，按时间升序
func (s *EntryService) ListFood(userID, logID uint, offset, limit int) ([]db.FoodEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entries []db.FoodEntry
	if err := pageQuery(s.db, logID, offset, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	return entries, nil
}

// GetFood 获取单条饮食条目
func (s *EntryService) GetFood(userID, logID, entryID uint) (*db.FoodEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entry db.FoodEntry
	if err := s.findEntry(&entry, logID, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateFood 全量替换饮食条目的可变字段
func (s *EntryService) UpdateFood(userID, logID, entryID uint, input FoodEntryInput) (*db.FoodEntry, error) {
	if err := validateFoodInput(input); err != nil {
		return nil, err
	}
	entry, err := s.GetFood(userID, logID, entryID)
	if err != nil {
		return nil, err
	}

	entry.FoodName = strings.TrimSpace(input.FoodName)
	entry.Description = strings.TrimSpace(input.Description)
	entry.MealType = input.MealType
	entry.Calories = input.Calories
	entry.Timestamp = entryTimestamp(input.Timestamp)

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update food entry: %w", err)
	}
	return entry, nil
}

// DeleteFood 删除单条饮食条目
func (s *EntryService) DeleteFood(userID, logID, entryID uint) error {
	entry, err := s.GetFood(userID, logID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(entry).Error; err != nil {
		return fmt.Errorf("delete food entry: %w", err)
	}
	return nil
}

// CreateExercise 在指定日志下新增一条运动条目
func (s *EntryService) CreateExercise(userID, logID uint, input ExerciseEntryInput) (*db.ExerciseEntry, error) {
	if err := validateExerciseInput(input); err != nil {
		return nil, err
	}
	log, err := s.ownedLogOf(userID, logID)
	if err != nil {
		return nil, err
	}

	entry := db.ExerciseEntry{
		DailyLogID:      log.ID,
		ExerciseType:    strings.TrimSpace(input.ExerciseType),
		Description:     strings.TrimSpace(input.Description),
		DurationMinutes: input.DurationMinutes,
		Intensity:       input.Intensity,
		CaloriesBurned:  input.CaloriesBurned,
		Timestamp:       entryTimestamp(input.Timestamp),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create exercise entry: %w", err)
	}
	return &entry, nil
}

// ListExercise 返回日志下的运动条目
func (s *EntryService) ListExercise(userID, logID uint, offset, limit int) ([]db.ExerciseEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entries []db.ExerciseEntry
	if err := pageQuery(s.db, logID, offset, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list exercise entries: %w", err)
	}
	return entries, nil
}

// GetExercise 获取单条运动条目
func (s *EntryService) GetExercise(userID, logID, entryID uint) (*db.ExerciseEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entry db.ExerciseEntry
	if err := s.findEntry(&entry, logID, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateExercise 全量替换运动条目的可变字段
func (s *EntryService) UpdateExercise(userID, logID, entryID uint, input ExerciseEntryInput) (*db.ExerciseEntry, error) {
	if err := validateExerciseInput(input); err != nil {
		return nil, err
	}
	entry, err := s.GetExercise(userID, logID, entryID)
	if err != nil {
		return nil, err
	}

	entry.ExerciseType = strings.TrimSpace(input.ExerciseType)
	entry.Description = strings.TrimSpace(input.Description)
	entry.DurationMinutes = input.DurationMinutes
	entry.Intensity = input.Intensity
	entry.CaloriesBurned = input.CaloriesBurned
	entry.Timestamp = entryTimestamp(input.Timestamp)

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update exercise entry: %w", err)
	}
	return entry, nil
}

// DeleteExercise 删除单条运动条目
func (s *EntryService) DeleteExercise(userID, logID, entryID uint) error {
	entry, err := s.GetExercise(userID, logID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(entry).Error; err != nil {
		return fmt.Errorf("delete exercise entry: %w", err)
	}
	return nil
}

// CreateWork 在指定日志下新增一条工作条目
func (s *EntryService) CreateWork(userID, logID uint, input WorkEntryInput) (*db.WorkEntry, error) {
	if err := validateWorkInput(input); err != nil {
		return nil, err
	}
	log, err := s.ownedLogOf(userID, logID)
	if err != nil {
		return nil, err
	}

	entry := db.WorkEntry{
		DailyLogID:         log.ID,
		Description:        strings.TrimSpace(input.Description),
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		ProductivityRating: input.ProductivityRating,
		StressLevel:        input.StressLevel,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create work entry: %w", err)
	}
	return &entry, nil
}

// ListWork 返回日志下的工作条目，按开始时间升序
func (s *EntryService) ListWork(userID, logID uint, offset, limit int) ([]db.WorkEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	offset, limit = normalizePage(offset, limit)
	var entries []db.WorkEntry
	if err := s.db.Where("daily_log_id = ?", logID).
		Order("start_time ASC").Offset(offset).Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	return entries, nil
}

// GetWork 获取单条工作条目
func (s *EntryService) GetWork(userID, logID, entryID uint) (*db.WorkEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entry db.WorkEntry
	if err := s.findEntry(&entry, logID, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateWork 全量替换工作条目的可变字段
func (s *EntryService) UpdateWork(userID, logID, entryID uint, input WorkEntryInput) (*db.WorkEntry, error) {
	if err := validateWorkInput(input); err != nil {
		return nil, err
	}
	entry, err := s.GetWork(userID, logID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Description = strings.TrimSpace(input.Description)
	entry.StartTime = input.StartTime
	entry.EndTime = input.EndTime
	entry.ProductivityRating = input.ProductivityRating
	entry.StressLevel = input.StressLevel

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update work entry: %w", err)
	}
	return entry, nil
}

// DeleteWork 删除单条工作条目
func (s *EntryService) DeleteWork(userID, logID, entryID uint) error {
	entry, err := s.GetWork(userID, logID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(entry).Error; err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	return nil
}

// CreateEvent 在指定日志下新增一条事件条目
func (s *EntryService) CreateEvent(userID, logID uint, input EventEntryInput) (*db.EventEntry, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	log, err := s.ownedLogOf(userID, logID)
	if err != nil {
		return nil, err
	}

	entry := db.EventEntry{
		DailyLogID:   log.ID,
		Description:  strings.TrimSpace(input.Description),
		EventType:    input.EventType,
		ImpactRating: input.ImpactRating,
		Timestamp:    entryTimestamp(input.Timestamp),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create event entry: %w", err)
	}
	return &entry, nil
}

// ListEvents 返回日志下的事件条目
func (s *EntryService) ListEvents(userID, logID uint, offset, limit int) ([]db.EventEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entries []db.EventEntry
	if err := pageQuery(s.db, logID, offset, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list event entries: %w", err)
	}
	return entries, nil
}

// GetEvent 获取单条事件条目
func (s *EntryService) GetEvent(userID, logID, entryID uint) (*db.EventEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entry db.EventEntry
	if err := s.findEntry(&entry, logID, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateEvent 全量替换事件条目的可变字段
func (s *EntryService) UpdateEvent(userID, logID, entryID uint, input EventEntryInput) (*db.EventEntry, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	entry, err := s.GetEvent(userID, logID, entryID)
	if err != nil {
		return nil, err
	}

	entry.Description = strings.TrimSpace(input.Description)
	entry.EventType = input.EventType
	entry.ImpactRating = input.ImpactRating
	entry.Timestamp = entryTimestamp(input.Timestamp)

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update event entry: %w", err)
	}
	return entry, nil
}

// DeleteEvent 删除单条事件条目
func (s *EntryService) DeleteEvent(userID, logID, entryID uint) error {
	entry, err := s.GetEvent(userID, logID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(entry).Error; err != nil {
		return fmt.Errorf("delete event entry: %w", err)
	}
	return nil
}

// CreateMood 在指定日志下新增一条心情条目
func (s *EntryService) CreateMood(userID, logID uint, input MoodEntryInput) (*db.MoodEntry, error) {
	if err := validateMoodInput(input); err != nil {
		return nil, err
	}
	factors, err := encodeFactors(input.Factors)
	if err != nil {
		return nil, err
	}
	log, err := s.ownedLogOf(userID, logID)
	if err != nil {
		return nil, err
	}

	entry := db.MoodEntry{
		DailyLogID:  log.ID,
		MoodRating:  input.MoodRating,
		Description: strings.TrimSpace(input.Description),
		Factors:     factors,
		Timestamp:   entryTimestamp(input.Timestamp),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create mood entry: %w", err)
	}
	return &entry, nil
}

// ListMood 返回日志下的心情条目
func (s *EntryService) ListMood(userID, logID uint, offset, limit int) ([]db.MoodEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entries []db.MoodEntry
	if err := pageQuery(s.db, logID, offset, limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	return entries, nil
}

// GetMood 获取单条心情条目
func (s *EntryService) GetMood(userID, logID, entryID uint) (*db.MoodEntry, error) {
	if _, err := s.ownedLogOf(userID, logID); err != nil {
		return nil, err
	}
	var entry db.MoodEntry
	if err := s.findEntry(&entry, logID, entryID); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateMood 全量替换心情条目的可变字段
func (s *EntryService) UpdateMood(userID, logID, entryID uint, input MoodEntryInput) (*db.MoodEntry, error) {
	if err := validateMoodInput(input); err != nil {
		return nil, err
	}
	factors, err := encodeFactors(input.Factors)
	if err != nil {
		return nil, err
	}
	entry, err := s.GetMood(userID, logID, entryID)
	if err != nil {
		return nil, err
	}

	entry.MoodRating = input.MoodRating
	entry.Description = strings.TrimSpace(input.Description)
	entry.Factors = factors
	entry.Timestamp = entryTimestamp(input.Timestamp)

	if err := s.db.Save(entry).Error; err != nil {
		return nil, fmt.Errorf("update mood entry: %w", err)
	}
	return entry, nil
}

// DeleteMood 删除单条心情条目
func (s *EntryService) DeleteMood(userID, logID, entryID uint) error {
	entry, err := s.GetMood(userID, logID, entryID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(entry).Error; err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

// findEntry 在日志范围内按 ID 查找条目，查不到统一返回 ErrEntryNotFound。
func (s *EntryService) findEntry(dest any, logID, entryID uint) error {
	if err := s.db.Where("daily_log_id = ?", logID).First(dest, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("find entry: %w", err)
	}
	return nil
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return offset, limit
}

func pageQuery(gdb *gorm.DB, logID uint, offset, limit int) *gorm.DB {
	offset, limit = normalizePage(offset, limit)
	return gdb.Where("daily_log_id = ?", logID).
		Order("timestamp ASC").Offset(offset).Limit(limit)
}
