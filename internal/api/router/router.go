package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pysgod/MarmaraPMS-sub000/config"
	"github.com/pysgod/MarmaraPMS-sub000/internal/api/handler"
	"github.com/pysgod/MarmaraPMS-sub000/internal/api/middleware"
	"github.com/pysgod/MarmaraPMS-sub000/internal/model"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/jwt"
	"github.com/pysgod/MarmaraPMS-sub000/pkg/redis"
)

// Setup builds the gin engine with all routes and middleware.
// Mutating schedule routes require the planner or admin role; catalog
// administration is admin only; everything authenticated can read.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			canPlan := middleware.RoleAuth(model.RoleAdmin, model.RolePlanner)
			adminOnly := middleware.RoleAuth(model.RoleAdmin)

			// auth (token required)
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// shift catalog
			shiftTypes := authorized.Group("/shift-types")
			{
				shiftTypes.GET("", h.ShiftType.List)
				shiftTypes.POST("", adminOnly, h.ShiftType.Create)
				shiftTypes.PUT("/reorder", adminOnly, h.ShiftType.Reorder)
				shiftTypes.PUT("/:id", adminOnly, h.ShiftType.Update)
				shiftTypes.DELETE("/:id", adminOnly, h.ShiftType.Delete)
			}

			// monthly grid
			schedule := authorized.Group("/schedule")
			{
				schedule.GET("", h.Schedule.GetSchedule)
				schedule.GET("/cell", h.Schedule.GetCell)
				schedule.GET("/joker", h.Schedule.GetJoker)
				schedule.POST("/cell/action", canPlan, h.Schedule.PrimaryAction)
				schedule.PUT("/cell", canPlan, h.Schedule.DirectSet)
			}

			// attendance reconciliation
			authorized.GET("/attendance/overview", h.Attendance.MonthOverview)

			// directory
			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Directory.ListProjects)
				projects.GET("/employees", h.Directory.ListActiveEmployees)
				projects.POST("/employees", canPlan, h.Directory.AssignEmployees)
				projects.DELETE("/employees", canPlan, h.Directory.ReleaseEmployee)
			}

			// exports
			export := authorized.Group("/export")
			{
				export.GET("/schedule", h.Export.ExportSchedule)
				export.GET("/calendar", h.Export.ExportEmployeeCalendar)
			}
		}
	}

	return r
}
