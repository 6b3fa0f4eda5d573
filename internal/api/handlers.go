package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lifecoach/internal/analytics"
	"lifecoach/internal/coach"
	"lifecoach/internal/config"
	"lifecoach/internal/memory"
)

// maxMessageLen bounds chat input; anything longer is rejected before the
// provider call
const maxMessageLen = 2000

// GET /health
func HealthHandler(mem *memory.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		healthy := mem.Healthy()
		status := "ok"
		memState := "operational"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			memState = "error"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":        status,
			"service":       "AI Life Coach",
			"version":       "1.0.0",
			"timestamp":     time.Now().Unix(),
			"memory_system": memState,
		})
	}
}

// GET /config
func ConfigHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only non-sensitive fields
		c.JSON(http.StatusOK, gin.H{
			"server": gin.H{
				"host":    cfg.Server.Host,
				"port":    cfg.Server.Port,
				"subpath": cfg.Server.Subpath,
			},
			"coach": gin.H{
				"model": cfg.Coach.Model,
			},
		})
	}
}

// bindMessage extracts and validates the {message} body shared by the
// chat and career endpoints
func bindMessage(c *gin.Context) (string, bool) {
	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No message provided"})
		return "", false
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Empty message"})
		return "", false
	}
	if len(msg) > maxMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Message too long. Please keep it under 2000 characters."})
		return "", false
	}
	return msg, true
}

// POST /chat
func ChatHandler(engine *coach.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg, ok := bindMessage(c)
		if !ok {
			return
		}

		reply, err := engine.Respond(c.Request.Context(), msg, coach.ModeLife)
		if err != nil {
			slog.Error("chat turn failed", "error", err)
			c.JSON(statusFor(err), gin.H{"success": false, "error": userMessage(err)})
			return
		}

		resp := gin.H{
			"success":        true,
			"response":       reply.Text,
			"mood":           reply.Mood,
			"context_events": reply.ContextEvents,
			"timestamp":      time.Now().Format(time.RFC3339),
		}
		if reply.Fallback {
			resp["fallback"] = true
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /career
func CareerHandler(engine *coach.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		msg, ok := bindMessage(c)
		if !ok {
			return
		}

		reply, err := engine.Respond(c.Request.Context(), msg, coach.ModeCareer)
		if err != nil {
			slog.Error("career turn failed", "error", err)
			c.JSON(statusFor(err), gin.H{"success": false, "error": userMessage(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":               true,
			"response":              reply.Text,
			"career_insights":       reply.CareerInsights,
			"skill_recommendations": reply.SkillRecommendations,
			"next_steps":            reply.NextSteps,
		})
	}
}

// POST /career/plan
func CareerPlanHandler(engine *coach.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Timeframe string `json:"timeframe"`
		}
		// Body is optional; an empty one means the default timeframe
		_ = c.ShouldBindJSON(&req)

		plan, id, err := engine.CareerPlan(c.Request.Context(), req.Timeframe)
		if err != nil {
			slog.Error("career plan failed", "error", err)
			c.JSON(statusFor(err), gin.H{"success": false, "error": "Failed to create career plan"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"plan":    plan,
			"plan_id": id,
		})
	}
}

// POST /goals
func CreateGoalHandler(mem *memory.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Goal       string `json:"goal"`
			TargetDate string `json:"target_date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No goal provided"})
			return
		}

		goal, err := mem.AddGoal(req.Goal, req.TargetDate)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"success": false, "error": userMessage(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
	}
}

// PUT /goals/:id
func UpdateGoalHandler(mem *memory.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No status provided"})
			return
		}

		goal, err := mem.UpdateGoalStatus(c.Param("id"), memory.GoalStatus(req.Status))
		if err != nil {
			c.JSON(statusFor(err), gin.H{"success": false, "error": userMessage(err)})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "goal": goal})
	}
}

// GET /memory
func MemoryHandler(mem *memory.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, mem.Summarize())
	}
}

// GET /analytics?type=comprehensive|weekly
func AnalyticsHandler(reporter *analytics.Reporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var report interface{}
		if c.Query("type") == "weekly" {
			report = reporter.Weekly()
		} else {
			report = reporter.Comprehensive()
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"report":       report,
			"generated_at": time.Now().Unix(),
		})
	}
}

// GET /export
func ExportHandler(mem *memory.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := mem.Export()
		resp := gin.H{
			"life_events":      store.LifeEvents,
			"goals":            store.Goals,
			"patterns":         store.Patterns,
			"warnings":         store.Warnings,
			"export_timestamp": time.Now().Unix(),
			"version":          "1.0",
		}
		if len(store.CareerPlans) > 0 {
			resp["career_plans"] = store.CareerPlans
		}
		c.JSON(http.StatusOK, resp)
	}
}
