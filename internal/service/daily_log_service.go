package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

// DailyLogService 负责每日记录的增删改查
// 所有操作都以调用者身份为准做归属校验，绝不信任请求里携带的 user_id
type DailyLogService struct {
	db *gorm.DB
}

// DailyLogInput 定义创建/更新日志时可配置字段
// Date 为零值时取当前时间所在日期
type DailyLogInput struct {
	Date        time.Time
	OverallMood int
	Notes       string
}

// DailyLogFilter 描述列表查询条件
type DailyLogFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// NewDailyLogService 构造 DailyLogService
func NewDailyLogService(gdb *gorm.DB) *DailyLogService {
	return &DailyLogService{db: gdb}
}

// Create 为调用者创建一条日志。
// 同一天已有日志时返回 ErrLogExists；日期归一化到零点，同天判定与时分秒无关。
func (s *DailyLogService) Create(userID uint, input DailyLogInput) (*db.DailyLog, error) {
	if err := validateMoodRating("overall_mood", input.OverallMood); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	logDate := normalizeToDate(date)

	var count int64
	if err := s.db.Model(&db.DailyLog{}).
		Where("user_id = ? AND log_date = ?", userID, logDate).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check existing log: %w", err)
	}
	if count > 0 {
		return nil, ErrLogExists
	}

	log := db.DailyLog{
		UserID:      userID,
		LogDate:     logDate,
		OverallMood: input.OverallMood,
		Notes:       input.Notes,
	}

	if err := s.db.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("create daily log: %w", err)
	}
	return &log, nil
}

// List 返回调用者的日志集合，按日期倒序，支持日期区间过滤与分页。
func (s *DailyLogService) List(userID uint, filter DailyLogFilter) ([]db.DailyLog, error) {
	query := s.db.Where("user_id = ?", userID)

	if filter.StartDate != nil {
		query = query.Where("log_date >= ?", normalizeToDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("log_date <= ?", normalizeToDate(*filter.EndDate))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var logs []db.DailyLog
	if err := query.Order("log_date DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}

// Count 返回调用者的日志总数
func (s *DailyLogService) Count(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&db.DailyLog{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count daily logs: %w", err)
	}
	return count, nil
}

// Get 按 ID 获取日志：不存在返回 ErrLogNotFound，归属不符返回 ErrNotOwner。
func (s *DailyLogService) Get(userID, logID uint) (*db.DailyLog, error) {
	return s.ownedLog(userID, logID)
}

// GetWithChildren 获取日志并预加载全部子条目与洞察
func (s *DailyLogService) GetWithChildren(userID, logID uint) (*db.DailyLog, error) {
	if _, err := s.ownedLog(userID, logID); err != nil {
		return nil, err
	}

	var log db.DailyLog
	if err := s.db.
		Preload("FoodEntries").
		Preload("ExerciseEntries").
		Preload("WorkEntries").
		Preload("EventEntries").
		Preload("MoodEntries").
		Preload("AIInsights").
		First(&log, logID).Error; err != nil {
		return nil, fmt.Errorf("load daily log: %w", err)
	}
	return &log, nil
}

// Update 全量替换日志的可变字段，日期保持不变。
func (s *DailyLogService) Update(userID, logID uint, input DailyLogInput) (*db.DailyLog, error) {
	if err := validateMoodRating("overall_mood", input.OverallMood); err != nil {
		return nil, err
	}

	log, err := s.ownedLog(userID, logID)
	if err != nil {
		return nil, err
	}

	log.OverallMood = input.OverallMood
	log.Notes = input.Notes

	if err := s.db.Save(log).Error; err != nil {
		return nil, fmt.Errorf("update daily log: %w", err)
	}
	return log, nil
}

// Delete 删除日志并级联清掉全部子条目与洞察。
// 这里做硬删除，避免软删行占用 (user_id, log_date) 唯一索引。
func (s *DailyLogService) Delete(userID, logID uint) error {
	log, err := s.ownedLog(userID, logID)
	if err != nil {
		return err
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		children := []any{
			&db.FoodEntry{},
			&db.ExerciseEntry{},
			&db.WorkEntry{},
			&db.EventEntry{},
			&db.MoodEntry{},
			&db.AIInsight{},
		}
		for _, model := range children {
			if err := tx.Unscoped().Where("daily_log_id = ?", log.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&db.DailyLog{}, log.ID).Error
	}); err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	return nil
}

// Insights 返回日志下的洞察记录，按创建时间倒序。
func (s *DailyLogService) Insights(userID, logID uint) ([]db.AIInsight, error) {
	if _, err := s.ownedLog(userID, logID); err != nil {
		return nil, err
	}

	var insights []db.AIInsight
	if err := s.db.Where("daily_log_id = ?", logID).
		Order("created_at DESC").Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	return insights, nil
}

// ownedLog 统一的存在性 + 归属校验，先判存在再判归属。
func (s *DailyLogService) ownedLog(userID, logID uint) (*db.DailyLog, error) {
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

func validateMoodRating(field string, value int) error {
	if value < 1 || value > 10 {
		return invalidField(field, "must be between 1 and 10")
	}
	return nil
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
