package service

import (
	"errors"
	"fmt"
)

// 服务层统一的错误分类，handler 据此映射 HTTP 状态码。
var (
	// ErrEmailTaken 在注册邮箱已被占用时返回
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken 在注册用户名已被占用时返回
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound 在指定用户不存在时返回
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials 在登录凭证错误时返回
	ErrBadCredentials = errors.New("incorrect username or password")

	// ErrTokenInvalid 在令牌格式错误或签名校验失败时返回
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired 在令牌已过自然有效期时返回
	ErrTokenExpired = errors.New("token expired")

	// ErrLogNotFound 在指定日志不存在时返回
	ErrLogNotFound = errors.New("daily log not found")
	// ErrLogExists 在同一用户同一天已有日志时返回
	ErrLogExists = errors.New("a log for this date already exists")
	// ErrEntryNotFound 在指定条目不存在时返回
	ErrEntryNotFound = errors.New("entry not found")
	// ErrRecommendationNotFound 在指定推荐不存在时返回
	ErrRecommendationNotFound = errors.New("recommendation not found")
	// ErrProfileNotFound 在指定档案不存在时返回
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNotOwner 在资源存在但归属链与调用者不符时返回
	ErrNotOwner = errors.New("not authorized to access this resource")

	// ErrInsufficientData 在日志数不足以做洞察分析时返回
	ErrInsufficientData = errors.New("not enough daily logs for analysis")
	// ErrGenerationFailed 在外部生成调用或其落库步骤失败时返回
	ErrGenerationFailed = errors.New("failed to generate result")
)

// ValidationError 描述单个字段的取值问题，在落库前被拒绝。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
