package handler

import (
	"github.com/lifelog/internal/service"
	"gorm.io/gorm"
)

// API 汇集各 HTTP 处理器共享的服务依赖。
type API struct {
	tokens     *service.TokenService
	users      *service.UserService
	profiles   *service.ProfileService
	dailyLogs  *service.DailyLogService
	entries    *service.EntryService
	activities *service.ActivityService
	ai         *service.AIService
	uploadDir  string
	uploadURL  string
}

// Options 汇总构造 API 时需要的外部配置。
type Options struct {
	Tokens    *service.TokenService
	AI        *service.AIService
	UploadDir string
	UploadURL string
}

// NewAPI 基于同一个数据库连接构造全部处理器依赖。
func NewAPI(gdb *gorm.DB, opts Options) *API {
	return &API{
		tokens:     opts.Tokens,
		users:      service.NewUserService(gdb),
		profiles:   service.NewProfileService(gdb),
		dailyLogs:  service.NewDailyLogService(gdb),
		entries:    service.NewEntryService(gdb),
		activities: service.NewActivityService(gdb),
		ai:         opts.AI,
		uploadDir:  opts.UploadDir,
		uploadURL:  opts.UploadURL,
	}
}
