package main

import (
	"context"
	"log"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/ai"
	"github.com/apotekcloud/apotek-golang/internal/alerts"
	"github.com/apotekcloud/apotek-golang/internal/config"
	"github.com/apotekcloud/apotek-golang/internal/database"
	"github.com/apotekcloud/apotek-golang/internal/email"
	"github.com/apotekcloud/apotek-golang/internal/handlers"
	"github.com/apotekcloud/apotek-golang/internal/migrations"
	"github.com/apotekcloud/apotek-golang/internal/routes"
	"github.com/joho/godotenv"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.Load()

	// 1. --- Database Connection + Schema ---
	if cfg.DatabaseDSN == "" {
		log.Fatal("CRITICAL ERROR: DB_DSN environment variable is not set.")
	}

	db, err := database.OpenDBWithDSN(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// 2. --- AI Service Initialization ---
	// The AI chat widget is optional; without a key the endpoint just
	// reports that it is not configured.
	var aiService *ai.AIService
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set. AI chat will be disabled.")
	} else {
		aiService, err = ai.NewAIService(cfg.GeminiAPIKey, cfg.GeminiModel, db)
		if err != nil {
			log.Fatalf("Failed to initialize AI Service: %v", err)
		}
	}

	// 3. --- Alert Service (email sweep) ---
	alertService := &alerts.Service{
		DB:               db,
		Mailer:           email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		MinStock:         cfg.AlertMinStock,
		DaysBeforeExpire: cfg.AlertDaysBeforeExpire,
		EmailFrom:        cfg.AlertEmailFrom,
		EmailTo:          cfg.AlertEmailTo,
		WebsiteURL:       cfg.WebsiteURL,
	}

	// --- Application Setup ---
	// We inject ALL dependencies into the Handlers struct.
	app := &handlers.Handlers{
		DB:        db,
		AIService: aiService,
		Alerts:    alertService,
		Cfg:       cfg,
	}

	// 4. --- Background Workers (Cron) ---
	// The sweep can also be triggered externally via /v1/cron/alerts;
	// the built-in ticker only runs when an interval is configured.
	if cfg.AlertIntervalMinutes > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.AlertIntervalMinutes) * time.Minute)
			defer ticker.Stop()

			log.Printf("🕒 Background Worker Started: stock/expiry sweep every %d minute(s)...", cfg.AlertIntervalMinutes)

			for range ticker.C {
				result, err := alertService.Run(context.Background())
				if err != nil {
					log.Printf("Alert sweep failed: %v", err)
					continue
				}
				if result.Sent {
					log.Printf("Alert sweep sent email for %d item(s)", len(result.Items))
				}
			}
		}()
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Printf("Starting Apotek Cloud API server on port %s...", cfg.HTTPPort)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
