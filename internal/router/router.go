package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sahxzm/Dreamer/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API) *gin.Engine {
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	apiGroup := r.Group("/api")
	{
		streaks := apiGroup.Group("/streaks")
		{
			streaks.GET("", api.ListStreaks)
			streaks.POST("/activity", api.RecordActivity)
			streaks.GET("/stats", api.GetStreakStats)
			streaks.GET("/heatmap", api.GetHeatmap)
			streaks.GET("/level", api.GetActivityLevel)
			streaks.GET("/day", api.GetStreakDay)
		}

		progress := apiGroup.Group("/progress")
		{
			progress.GET("", api.ListProgress)
			progress.POST("", api.CreateProgressItem)
			progress.PUT("/:id", api.UpdateProgressItem)
			progress.POST("/:id/complete", api.CompleteProgressItem)
			progress.DELETE("/:id", api.DeleteProgressItem)
			progress.GET("/stats", api.GetProgressStats)
			progress.POST("/sync/tasks", api.SyncTasks)
			progress.POST("/sync/goals", api.SyncGoals)
		}

		goals := apiGroup.Group("/goals")
		{
			goals.GET("", api.ListGoals)
			goals.POST("", api.CreateGoal)
			goals.PUT("/:id", api.UpdateGoal)
			goals.DELETE("/:id", api.DeleteGoal)
			goals.POST("/:id/progress", api.RecordGoalProgress)
			goals.GET("/:id/history", api.GetGoalHistory)
			goals.GET("/stats", api.GetGoalStats)
		}

		theme := apiGroup.Group("/theme")
		{
			theme.GET("", api.GetTheme)
			theme.PUT("", api.UpdateTheme)
			theme.POST("/backgrounds", api.AddCustomBackground)
			theme.DELETE("/backgrounds/:name", api.RemoveCustomBackground)
		}

		focus := apiGroup.Group("/focus")
		{
			focus.GET("", api.GetFocus)
			focus.POST("/add", api.AddFocusSeconds)
			focus.POST("/reset-today", api.ResetFocusToday)
		}

		session := apiGroup.Group("/session")
		{
			session.POST("/snapshot", api.SnapshotSession)
			session.POST("/restore", api.RestoreSession)
		}
	}

	return r
}
