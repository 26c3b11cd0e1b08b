package main

import (
	"log"

	"github.com/lifelog/internal/config"
	"github.com/lifelog/internal/db"
	"github.com/lifelog/internal/seed"
)

// 演示数据生成器：向空库写入三个演示用户及两周日志
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	if err := seed.Run(db.DB); err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
}
