package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	DatabasePath     string
	GinMode          string
	JWTSecret        string
	TokenTTL         time.Duration
	AnthropicAPIKey  string
	AnthropicBaseURL string
	SeedDB           bool
	UploadDir        string
	UploadURLPath    string
}

// Load 从环境变量读取应用配置，缺失必需密钥时直接返回错误。
// 存在 .env 文件时先行加载，便于本地开发。
func Load() (AppConfig, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "lifelog.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		return AppConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	tokenTTL := 72 * time.Hour
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return AppConfig{}, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %q", raw)
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	anthropicKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if anthropicKey == "" {
		return AppConfig{}, fmt.Errorf("ANTHROPIC_API_KEY is required")
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	return AppConfig{
		ListenAddr:       listenAddr,
		Port:             port,
		DatabasePath:     databasePath,
		GinMode:          ginMode,
		JWTSecret:        jwtSecret,
		TokenTTL:         tokenTTL,
		AnthropicAPIKey:  anthropicKey,
		AnthropicBaseURL: strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")),
		SeedDB:           strings.EqualFold(strings.TrimSpace(os.Getenv("SEED_DB")), "true"),
		UploadDir:        uploadDir,
		UploadURLPath:    uploadURLPath,
	}, nil
}
