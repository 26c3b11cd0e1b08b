package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lifelog/internal/db"
	"gorm.io/gorm"
)

const maxBioRuneCount = 180

// ProfileService 负责用户档案的查询与更新
// 档案只能由其归属用户本人修改
type ProfileService struct {
	db *gorm.DB
}

// ProfileInput 定义档案可修改字段，偏好表以 map 传入并序列化为 JSON 存储
type ProfileInput struct {
	Bio                 string
	Timezone            string
	ActivityPreferences map[string]any
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// Get 返回指定用户的档案
func (s *ProfileService) Get(userID uint) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Update 全量替换档案的可变字段
func (s *ProfileService) Update(userID uint, input ProfileInput) (*db.Profile, error) {
	bio := strings.TrimSpace(input.Bio)
	if utf8.RuneCountInString(bio) > maxBioRuneCount {
		return nil, invalidField("bio", fmt.Sprintf("must be at most %d characters", maxBioRuneCount))
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = "UTC"
	}

	preferences := ""
	if input.ActivityPreferences != nil {
		raw, err := json.Marshal(input.ActivityPreferences)
		if err != nil {
			return nil, invalidField("activity_preferences", "must be a JSON object")
		}
		preferences = string(raw)
	}

	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.Bio = bio
	profile.Timezone = timezone
	profile.ActivityPreferences = preferences

	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// SetAvatar 更新档案头像地址
func (s *ProfileService) SetAvatar(userID uint, avatarURL string) (*db.Profile, error) {
	profile, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	profile.AvatarURL = strings.TrimSpace(avatarURL)
	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return profile, nil
}

// Preferences 把存储的 JSON 偏好表还原为 map，内容为空时返回空表。
func (s *ProfileService) Preferences(profile *db.Profile) map[string]any {
	return decodeJSONMap(profile.ActivityPreferences)
}

// decodeJSONMap 宽容地解析 JSON 字符串列，解析失败按空表处理。
func decodeJSONMap(raw string) map[string]any {
	result := map[string]any{}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return result
	}
	if err := json.Unmarshal([]byte(trimmed), &result); err != nil {
		return map[string]any{}
	}
	return result
}
