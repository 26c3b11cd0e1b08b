package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifelog/internal/handler"
)

// Options 路由层需要的少量外部配置
type Options struct {
	UploadDir string
	UploadURL string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()

	// 头像等上传文件的静态服务
	if opts.UploadDir != "" && opts.UploadURL != "" {
		r.Static(opts.UploadURL, opts.UploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 开放路由：注册与登录
	auth := r.Group("/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
	}

	// 需要携带 Bearer 令牌的路由
	authed := r.Group("")
	authed.Use(api.AuthRequired())
	{
		authed.GET("/users", api.ListUsers)
		authed.GET("/users/:id", api.GetUser)

		authed.GET("/profile", api.GetProfile)
		authed.PUT("/profile", api.UpdateProfile)
		authed.POST("/profile/avatar", api.UploadAvatar)

		logs := authed.Group("/daily-logs")
		{
			logs.POST("", api.CreateDailyLog)
			logs.GET("", api.ListDailyLogs)
			logs.GET("/:id", api.GetDailyLog)
			logs.PUT("/:id", api.UpdateDailyLog)
			logs.DELETE("/:id", api.DeleteDailyLog)

			logs.GET("/:id/insights", api.ListLogInsights)

			logs.POST("/:id/food", api.CreateFoodEntry)
			logs.GET("/:id/food", api.ListFoodEntries)
			logs.GET("/:id/food/:entryID", api.GetFoodEntry)
			logs.PUT("/:id/food/:entryID", api.UpdateFoodEntry)
			logs.DELETE("/:id/food/:entryID", api.DeleteFoodEntry)

			logs.POST("/:id/exercise", api.CreateExerciseEntry)
			logs.GET("/:id/exercise", api.ListExerciseEntries)
			logs.GET("/:id/exercise/:entryID", api.GetExerciseEntry)
			logs.PUT("/:id/exercise/:entryID", api.UpdateExerciseEntry)
			logs.DELETE("/:id/exercise/:entryID", api.DeleteExerciseEntry)

			logs.POST("/:id/work", api.CreateWorkEntry)
			logs.GET("/:id/work", api.ListWorkEntries)
			logs.GET("/:id/work/:entryID", api.GetWorkEntry)
			logs.PUT("/:id/work/:entryID", api.UpdateWorkEntry)
			logs.DELETE("/:id/work/:entryID", api.DeleteWorkEntry)

			logs.POST("/:id/events", api.CreateEventEntry)
			logs.GET("/:id/events", api.ListEventEntries)
			logs.GET("/:id/events/:entryID", api.GetEventEntry)
			logs.PUT("/:id/events/:entryID", api.UpdateEventEntry)
			logs.DELETE("/:id/events/:entryID", api.DeleteEventEntry)

			logs.POST("/:id/mood", api.CreateMoodEntry)
			logs.GET("/:id/mood", api.ListMoodEntries)
			logs.GET("/:id/mood/:entryID", api.GetMoodEntry)
			logs.PUT("/:id/mood/:entryID", api.UpdateMoodEntry)
			logs.DELETE("/:id/mood/:entryID", api.DeleteMoodEntry)
		}

		activities := authed.Group("/activities")
		{
			activities.POST("/recommendations", api.CreateRecommendation)
			activities.GET("/recommendations", api.ListRecommendations)
			activities.GET("/recommendations/:id", api.GetRecommendation)
			activities.PATCH("/recommendations/:id", api.UpdateRecommendation)
			activities.DELETE("/recommendations/:id", api.DeleteRecommendation)
		}

		insights := authed.Group("/insights")
		{
			insights.POST("/analyze", api.AnalyzeInsights)
			insights.POST("/recommendations", api.GenerateRecommendation)
		}
	}

	return r
}
