package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/dayplan/internal/config"
	"github.com/Nixie-Tech-LLC/dayplan/internal/db"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/api/endpoints"
	"github.com/Nixie-Tech-LLC/dayplan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/dayplan/internal/schedule"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, resolver *schedule.Resolver) {
	r.Use(middleware.RequestID(), middleware.RequestLogger())

	// CORS
	corsCfg := cors.Config{
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			middleware.RequestIDHeader,
		},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	} else {
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	r.Use(cors.New(corsCfg))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.TaskModule(store),
		endpoints.ScheduleModule(resolver),
		endpoints.PomodoroModule(store),
	)

	r.GET("/healthz", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database unreachable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
}
