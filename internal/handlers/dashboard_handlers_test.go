package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekcloud/apotek-golang/internal/models"
)

func TestDashboardStats_CountsEverything(t *testing.T) {
	app := newTestApp(t)
	lowID := app.seedMedicine(t, models.Medicine{Name: "Amoxicillin", Stock: 2, MinStock: 10, Price: 15000})
	app.seedMedicine(t, models.Medicine{Name: "Expiring Soon", Stock: 50, MinStock: 2, Price: 1000, ExpiredAt: int64Ptr(millisIn(10))})
	app.seedMedicine(t, models.Medicine{Name: "Healthy", Stock: 50, MinStock: 2, Price: 1000})

	// one sale today
	w := app.do(t, http.MethodPost, "/v1/sales", map[string]interface{}{
		"items": []map[string]interface{}{
			{"medicineId": lowID, "name": "Amoxicillin", "quantity": 1, "price": 15000, "subtotal": 15000},
		},
		"total": 15000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// one alert sweep recorded this month
	w = app.do(t, http.MethodPost, "/v1/alerts/run", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalMedicines    int               `json:"totalMedicines"`
		LowStockCount     int               `json:"lowStockCount"`
		LowStockItems     []models.Medicine `json:"lowStockItems"`
		ExpiringSoonCount int               `json:"expiringSoonCount"`
		TodaySales        float64           `json:"todaySales"`
		TodayTransactions int               `json:"todayTransactions"`
		AlertsCount       int               `json:"alertsCount"`
	}
	decode(t, w, &stats)

	assert.Equal(t, 3, stats.TotalMedicines)
	assert.Equal(t, 1, stats.LowStockCount)
	require.Len(t, stats.LowStockItems, 1)
	assert.Equal(t, "Amoxicillin", stats.LowStockItems[0].Name)
	assert.Equal(t, 1, stats.ExpiringSoonCount)
	assert.Equal(t, 15000.0, stats.TodaySales)
	assert.Equal(t, 1, stats.TodayTransactions)
	assert.Equal(t, 1, stats.AlertsCount)
}

func TestDashboardStats_EmptyStore(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalMedicines    int     `json:"totalMedicines"`
		TodaySales        float64 `json:"todaySales"`
		TodayTransactions int     `json:"todayTransactions"`
	}
	decode(t, w, &stats)
	assert.Zero(t, stats.TotalMedicines)
	assert.Zero(t, stats.TodaySales)
	assert.Zero(t, stats.TodayTransactions)
}
