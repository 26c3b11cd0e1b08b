package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lifelog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 负责账号注册、认证与查询
// 密码只以 bcrypt 哈希形式入库
type UserService struct {
	db *gorm.DB
}

// RegisterInput 定义注册时的必填字段
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Register 创建用户及其空档案，邮箱/用户名冲突时分别返回对应错误。
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)

	if err := validateRegisterInput(email, username, input.Password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.db.Model(&db.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.User{
		Email:    email,
		Username: username,
		Password: string(hashed),
		IsActive: true,
	}

	// 用户和档案在同一事务里创建
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&db.Profile{UserID: user.ID, Timezone: "UTC"}).Error
	}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate 校验用户名与密码，成功时返回用户。
// 为避免枚举账号，查无此人与密码错误都返回 ErrBadCredentials。
func (s *UserService) Authenticate(username, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ? AND is_active = ?", strings.TrimSpace(username), true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}

	return &user, nil
}

// List 返回用户集合，按创建时间升序并支持 offset/limit 分页。
func (s *UserService) List(offset, limit int) ([]db.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var users []db.User
	if err := s.db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get 根据 ID 获取用户并附带档案
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.Preload("Profile").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func validateRegisterInput(email, username, password string) error {
	if email == "" || !strings.Contains(email, "@") || strings.Contains(email, " ") {
		return invalidField("email", "must be a valid email address")
	}
	if username == "" {
		return invalidField("username", "is required")
	}
	if len(password) < 6 {
		return invalidField("password", "must be at least 6 characters")
	}
	return nil
}
