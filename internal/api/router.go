package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"lifecoach/internal/analytics"
	"lifecoach/internal/coach"
	"lifecoach/internal/config"
	"lifecoach/internal/memory"
)

// Per-endpoint-class rate budgets, per client IP
const (
	careerLimit     = 75
	careerWindow    = time.Minute
	planLimit       = 5
	planWindow      = 5 * time.Minute
	analyticsLimit  = 50
	analyticsWindow = time.Minute
)

func SetupRouter(cfg *config.Config, mem *memory.Manager, engine *coach.Engine, reporter *analytics.Reporter) *gin.Engine {
	r := gin.Default()
	r.Use(SecurityHeaders())

	limiter := NewRateLimiter()

	// subpath is "" for root deployments or e.g. "/lifecoach" behind a
	// shared reverse proxy
	group := r.Group(cfg.Server.Subpath)
	{
		group.GET("/health", HealthHandler(mem))
		group.GET("/config", ConfigHandler(cfg))

		group.POST("/chat", ChatHandler(engine))
		group.POST("/career",
			RateLimit(limiter, "career", careerLimit, careerWindow),
			CareerHandler(engine))
		group.POST("/career/plan",
			RateLimit(limiter, "career_plan", planLimit, planWindow),
			CareerPlanHandler(engine))

		group.POST("/goals", CreateGoalHandler(mem))
		group.PUT("/goals/:id", UpdateGoalHandler(mem))

		group.GET("/memory", MemoryHandler(mem))
		group.GET("/analytics",
			RateLimit(limiter, "analytics", analyticsLimit, analyticsWindow),
			AnalyticsHandler(reporter))
		group.GET("/export", ExportHandler(mem))
	}
	return r
}
