package db

import (
	"gorm.io/gorm"
)

// User 定义了用户模型
// Email 与 Username 均唯一；Password 存 bcrypt 哈希，绝不落明文
// 账号只支持创建与更新，不提供删除
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
	IsActive bool   `gorm:"default:true"`

	Profile         Profile                  `gorm:"constraint:OnDelete:CASCADE"`
	DailyLogs       []DailyLog               `gorm:"constraint:OnDelete:CASCADE"`
	Recommendations []ActivityRecommendation `gorm:"constraint:OnDelete:CASCADE"`
}

// Profile 与 User 一对一，随注册一并创建
// ActivityPreferences 以 JSON 字符串存储自由偏好表
type Profile struct {
	gorm.Model
	UserID              uint   `gorm:"uniqueIndex;not null"`
	Bio                 string `gorm:"size:180"`
	Timezone            string `gorm:"default:UTC"`
	ActivityPreferences string
	AvatarURL           string
}
