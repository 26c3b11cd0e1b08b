package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/config"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/handler"
	"github.com/lifelog/internal/router"
	"github.com/lifelog/internal/seed"
	"github.com/lifelog/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.SeedDB {
		if err := seed.Run(db.DB); err != nil {
			log.Fatalf("failed to seed database: %v", err)
		}
	}

	api := handler.NewAPI(db.DB, handler.Options{
		Tokens:    service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		AI:        service.NewAIService(db.DB, cfg.AnthropicAPIKey, cfg.AnthropicBaseURL),
		UploadDir: cfg.UploadDir,
		UploadURL: cfg.UploadURLPath,
	})

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(api, router.Options{
		UploadDir: cfg.UploadDir,
		UploadURL: cfg.UploadURLPath,
	})
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
