package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nopesy/UCSB-Hacks-XII/config"
	"github.com/Nopesy/UCSB-Hacks-XII/database"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/auditlog"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/event"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/eventrating"
	"github.com/Nopesy/UCSB-Hacks-XII/internal/sleep"
	"github.com/Nopesy/UCSB-Hacks-XII/routes"
	"github.com/Nopesy/UCSB-Hacks-XII/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Redis and Kafka are optional; the server runs without either.
	if err := utils.InitRedis(cfg); err != nil {
		log.Printf("⚠️ Continuing without Redis: %v", err)
	}
	utils.InitializeKafka(cfg)
	defer utils.CloseKafka()

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auditlog.AuditLog{},
		&event.Event{},
		&eventrating.EventRating{},
		&sleep.SleepLog{},
	); err != nil {
		log.Fatalf("❌ DB AutoMigrate failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// The dashboard UI and the companion agent are the only callers.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Printf("📅 Sync endpoint: http://localhost:%s/api/events/sync\n", cfg.Port)
	fmt.Printf("📖 Swagger: http://localhost:%s/swagger/index.html\n", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
