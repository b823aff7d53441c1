package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Dashboard Stats ---
//

// DashboardStats mirrors the cards on the landing page.
type DashboardStats struct {
	TotalMedicines    int               `json:"totalMedicines"`
	LowStockCount     int               `json:"lowStockCount"`
	LowStockItems     []models.Medicine `json:"lowStockItems"`
	ExpiringSoonCount int               `json:"expiringSoonCount"`
	ExpiringSoonItems []models.Medicine `json:"expiringSoonItems"`
	TodaySales        float64           `json:"todaySales"`
	TodayTransactions int               `json:"todayTransactions"`
	AlertsCount       int               `json:"alertsCount"`
}

// GetDashboardStats is the handler for GET /v1/dashboard/stats.
// Any store failure degrades to zeroed stats rather than breaking the
// page; the dashboard is a summary, not a source of truth.
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats, err := h.collectDashboardStats()
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		stats = DashboardStats{
			LowStockItems:     []models.Medicine{},
			ExpiringSoonItems: []models.Medicine{},
		}
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) collectDashboardStats() (DashboardStats, error) {
	var stats DashboardStats

	// 1. Total medicines
	err := h.DB.QueryRow("SELECT COUNT(*) FROM medicines").Scan(&stats.TotalMedicines)
	if err != nil {
		return stats, err
	}

	// 2. Low stock (each item against its own minStock threshold)
	stats.LowStockItems, err = h.lowStockMedicines()
	if err != nil {
		return stats, err
	}
	stats.LowStockCount = len(stats.LowStockItems)

	// 3. Expiring in the next 30 days (expired stock excluded here)
	stats.ExpiringSoonItems, err = h.expiringSoonMedicines(30)
	if err != nil {
		return stats, err
	}
	stats.ExpiringSoonCount = len(stats.ExpiringSoonItems)

	// 4. Today's revenue and transaction count
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()
	err = h.DB.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE created_at >= ?",
		startOfDay,
	).Scan(&stats.TodayTransactions, &stats.TodaySales)
	if err != nil {
		return stats, err
	}

	// 5. Alerts sent this month
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).UnixMilli()
	err = h.DB.QueryRow(
		"SELECT COUNT(*) FROM alerts WHERE created_at >= ?",
		startOfMonth,
	).Scan(&stats.AlertsCount)
	if err != nil {
		return stats, err
	}

	return stats, nil
}
