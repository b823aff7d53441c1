package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
)

//
// --- Alert Sweep Handlers ---
//

// RunAlerts triggers one sweep. It serves both POST /v1/alerts/run (the
// dashboard button, behind the admin guard) and GET /v1/cron/alerts (the
// external scheduler, behind the bearer secret).
func (h *Handlers) RunAlerts(c *gin.Context) {
	result, err := h.Alerts.Run(c.Request.Context())
	if err != nil {
		log.Printf("Alert sweep failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":        false,
			"error":     err.Error(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	message := "Tidak ada alert yang perlu dikirim"
	if result.Sent {
		message = fmt.Sprintf("Alert terkirim untuk %d item", len(result.Items))
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"message":   message,
		"sent":      result.Sent,
		"items":     result.Items,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GetAlerts is the handler for GET /v1/alerts: sweep history, newest
// first, capped at 50.
func (h *Handlers) GetAlerts(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, status, type, created_at
		FROM alerts
		ORDER BY created_at DESC LIMIT 50`)
	if err != nil {
		log.Printf("Error fetching alerts: %v", err)
		c.JSON(http.StatusOK, gin.H{"alerts": []models.Alert{}})
		return
	}
	defer rows.Close()

	alerts := []models.Alert{}
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.Status, &a.Type, &a.CreatedAt); err != nil {
			log.Printf("Error scanning alert: %v", err)
			c.JSON(http.StatusOK, gin.H{"alerts": []models.Alert{}})
			return
		}
		alerts = append(alerts, a)
	}

	itemQuery := `
		SELECT medicine_id, name, stock, min_stock, expired_at, reason
		FROM alert_items WHERE alert_id = ?`
	for i := range alerts {
		itemRows, err := h.DB.Query(itemQuery, alerts[i].ID)
		if err != nil {
			log.Printf("Error fetching alert items: %v", err)
			c.JSON(http.StatusOK, gin.H{"alerts": []models.Alert{}})
			return
		}

		items := []models.AlertItem{}
		for itemRows.Next() {
			var item models.AlertItem
			if err := itemRows.Scan(&item.ID, &item.Name, &item.Stock, &item.MinStock, &item.ExpiredAt, &item.Reason); err != nil {
				itemRows.Close()
				log.Printf("Error scanning alert item: %v", err)
				c.JSON(http.StatusOK, gin.H{"alerts": []models.Alert{}})
				return
			}
			items = append(items, item)
		}
		itemRows.Close()
		alerts[i].Items = items
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
