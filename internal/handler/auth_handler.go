package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/service"
)

const (
	contextUserIDKey   = "userID"
	contextUsernameKey = "username"
)

type registerPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register 处理注册请求，成功时返回 201 与新用户信息。
func (a *API) Register(c *gin.Context) {
	var payload registerPayload
	if !bindJSON(c, &payload, "invalid registration payload") {
		return
	}

	user, err := a.users.Register(service.RegisterInput{
		Email:    payload.Email,
		Username: payload.Username,
		Password: payload.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userToPayload(user))
}

// Login 校验凭证并签发 Bearer 令牌。
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid login payload") {
		return
	}

	user, err := a.users.Authenticate(payload.Username, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := a.tokens.Issue(user.ID, user.Username)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// AuthRequired 解析 Authorization 头中的 Bearer 令牌并把调用者身份写入上下文。
// 缺失、非法与过期一律 401。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		subject, err := a.tokens.Resolve(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			message := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(contextUserIDKey, subject.UserID)
		c.Set(contextUsernameKey, subject.Username)
		c.Next()
	}
}

// currentUserID 读取中间件写入的调用者 ID
func currentUserID(c *gin.Context) uint {
	if value, exists := c.Get(contextUserIDKey); exists {
		if id, ok := value.(uint); ok {
			return id
		}
	}
	return 0
}
