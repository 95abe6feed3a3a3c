package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nopesy/UCSB-Hacks-XII/config"
	"github.com/Nopesy/UCSB-Hacks-XII/database"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/agent"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/auditlog"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/event"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/eventrating"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/reports"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/sleep"
	"github.com/Nopesy/UCSB-Hacks-XII/middleware"

	_ "github.com/Nopesy/UCSB-Hacks-XII/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	api := r.Group("/api")
	api.Use(middleware.RateLimiter())     // Global rate limit per IP
	api.Use(middleware.AuditMiddleware()) // Capture client IP for the activity log

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	api.GET("/auditlogs", auditHandler.GetAuditLogs)

	// ========== Events (sync, classify, conflicts) ==========
	eventRepo := event.NewRepository(database.DB)
	eventService := event.NewService(eventRepo, auditSvc)
	eventHandler := event.NewHandler(eventService, cfg.DefaultUserID)

	eventRoutes := api.Group("/events")
	{
		eventRoutes.POST("/sync", eventHandler.SyncEvents)
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.POST("/reclassify", eventHandler.Reclassify)

		// clear-all before :id so the router never treats it as an id
		eventRoutes.DELETE("/clear-all", eventHandler.ClearAll)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)

		eventRoutes.PATCH("/:id", eventHandler.RescheduleEvent)
		eventRoutes.PATCH("/:id/status", eventHandler.UpdateStatus)
		eventRoutes.PATCH("/:id/type", eventHandler.UpdateType)

		eventRoutes.GET("", eventHandler.ListEvents)
	}
	api.GET("/calendars", eventHandler.ListCalendars)

	// ========== Sleep Logs ==========
	sleepRepo := sleep.NewRepository(database.DB)
	sleepService := sleep.NewService(sleepRepo, auditSvc, loc)
	sleepHandler := sleep.NewHandler(sleepService, cfg.DefaultUserID)

	sleepRoutes := api.Group("/sleep")
	{
		sleepRoutes.POST("", sleepHandler.LogSleep)
		sleepRoutes.GET("/today", sleepHandler.GetToday)
		sleepRoutes.GET("/recent", sleepHandler.ListRecent)
		sleepRoutes.GET("/:date", sleepHandler.GetByDate)
	}

	// ========== Event Ratings ==========
	ratingRepo := eventrating.NewRepository(database.DB)
	ratingHandler := eventrating.NewHandler(ratingRepo, cfg.DefaultUserID)

	ratingRoutes := api.Group("/ratings")
	{
		ratingRoutes.POST("", ratingHandler.Rate)
		ratingRoutes.GET("", ratingHandler.List)
		ratingRoutes.GET("/:externalId", ratingHandler.Get)
		ratingRoutes.DELETE("/:externalId", ratingHandler.Delete)
	}

	// ========== Prediction Agent Proxy ==========
	agentClient := agent.NewClient(cfg.AgentURL)
	agentHandler := agent.NewHandler(agentClient, cfg.DefaultUserID, loc)

	agentRoutes := api.Group("/agent")
	{
		agentRoutes.GET("/burnout", agentHandler.Burnout)
		agentRoutes.GET("/health", agentHandler.Health)
	}

	// ========== Reports ==========
	reportsService := reports.NewService(eventService, reports.NewExporter())
	reportsHandler := reports.NewHandler(reportsService, cfg.DefaultUserID)

	api.GET("/reports/events/export", reportsHandler.ExportEvents)
}
