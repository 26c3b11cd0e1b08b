package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

// ActivityService 负责活动推荐的查询与维护
// 推荐可由 AI 生成，也可由用户自行创建；只有归属用户能改完成状态和评分
type ActivityService struct {
	db *gorm.DB
}

// RecommendationInput 定义创建推荐时的字段
type RecommendationInput struct {
	ActivityName    string
	Description     string
	DurationMinutes int
	ExpectedBenefit string
}

// RecommendationUpdate 定义部分更新语义：nil 字段保持原值
type RecommendationUpdate struct {
	IsCompleted *bool
	UserRating  *int
}

// NewActivityService 构造 ActivityService
func NewActivityService(gdb *gorm.DB) *ActivityService {
	return &ActivityService{db: gdb}
}

// Create 为调用者直接创建一条推荐
func (s *ActivityService) Create(userID uint, input RecommendationInput) (*db.ActivityRecommendation, error) {
	if strings.TrimSpace(input.ActivityName) == "" {
		return nil, invalidField("activity_name", "is required")
	}
	if input.DurationMinutes <= 0 {
		return nil, invalidField("duration_minutes", "must be positive")
	}

	rec := db.ActivityRecommendation{
		UserID:          userID,
		ActivityName:    strings.TrimSpace(input.ActivityName),
		Description:     strings.TrimSpace(input.Description),
		DurationMinutes: input.DurationMinutes,
		ExpectedBenefit: strings.TrimSpace(input.ExpectedBenefit),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	return &rec, nil
}

// List 返回调用者的推荐，按创建时间倒序并支持分页。
func (s *ActivityService) List(userID uint, offset, limit int) ([]db.ActivityRecommendation, error) {
	offset, limit = normalizePage(offset, limit)

	var recs []db.ActivityRecommendation
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}

// Get 按 ID 获取推荐：不存在返回 ErrRecommendationNotFound，归属不符返回 ErrNotOwner。
func (s *ActivityService) Get(userID, recID uint) (*db.ActivityRecommendation, error) {
	var rec db.ActivityRecommendation
	if err := s.db.First(&rec, recID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("find recommendation: %w", err)
	}
	if rec.UserID != userID {
		return nil, ErrNotOwner
	}
	return &rec, nil
}

// Update 按部分更新语义修改完成状态与评分，未提供的字段保持不变。
func (s *ActivityService) Update(userID, recID uint, update RecommendationUpdate) (*db.ActivityRecommendation, error) {
	if update.UserRating != nil && (*update.UserRating < 1 || *update.UserRating > 5) {
		return nil, invalidField("user_rating", "must be between 1 and 5")
	}

	rec, err := s.Get(userID, recID)
	if err != nil {
		return nil, err
	}

	if update.IsCompleted != nil {
		rec.IsCompleted = *update.IsCompleted
	}
	if update.UserRating != nil {
		rec.UserRating = update.UserRating
	}

	if err := s.db.Save(rec).Error; err != nil {
		return nil, fmt.Errorf("update recommendation: %w", err)
	}
	return rec, nil
}

// Delete 删除一条推荐
func (s *ActivityService) Delete(userID, recID uint) error {
	rec, err := s.Get(userID, recID)
	if err != nil {
		return err
	}
	if err := s.db.Unscoped().Delete(rec).Error; err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	return nil
}
