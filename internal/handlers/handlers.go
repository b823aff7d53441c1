package handlers

import (
	"database/sql"

	"github.com/apotekcloud/apotek-golang/internal/ai"
	"github.com/apotekcloud/apotek-golang/internal/alerts"
	"github.com/apotekcloud/apotek-golang/internal/config"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB        *sql.DB
	AIService *ai.AIService // nil when GEMINI_API_KEY is not configured
	Alerts    *alerts.Service
	Cfg       config.Config
}
