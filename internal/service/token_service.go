package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService 负责签发与解析无状态的 Bearer 令牌。
// 令牌自然过期即失效，不维护任何服务端会话或吊销列表。
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// TokenSubject 是令牌解析出的调用者身份。
type TokenSubject struct {
	UserID   uint
	Username string
}

type tokenClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// NewTokenService 构造 TokenService，ttl 非正时回退到 72 小时。
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue 为指定用户签发 HS256 令牌，过期时间为签发时刻加 TTL。
func (s *TokenService) Issue(userID uint, username string) (string, error) {
	return s.IssueWithTTL(userID, username, s.ttl)
}

// IssueWithTTL 按指定 TTL 签发令牌，主要便于过期路径的测试。
func (s *TokenService) IssueWithTTL(userID uint, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve 校验令牌并还原调用者身份。
// 过期返回 ErrTokenExpired，其余签名/格式问题一律返回 ErrTokenInvalid。
func (s *TokenService) Resolve(raw string) (TokenSubject, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TokenSubject{}, ErrTokenInvalid
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenSubject{}, ErrTokenExpired
		}
		return TokenSubject{}, ErrTokenInvalid
	}

	if !token.Valid || claims.UserID == 0 || strings.TrimSpace(claims.Subject) == "" {
		return TokenSubject{}, ErrTokenInvalid
	}

	return TokenSubject{UserID: claims.UserID, Username: claims.Subject}, nil
}
