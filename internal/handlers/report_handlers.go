package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/apotekcloud/apotek-golang/internal/report"
	"github.com/gin-gonic/gin"
)

//
// --- Reporting Handlers ---
//

// GetSalesReport is the handler for GET /v1/reports/sales?start=&end=
func (h *Handlers) GetSalesReport(c *gin.Context) {
	start, end := parseRange(c)

	sales, err := h.querySalesRange(start, end)
	if err != nil {
		log.Printf("Error fetching sales report: %v", err)
		c.JSON(http.StatusOK, gin.H{"sales": []models.Sale{}, "totalRevenue": 0.0, "totalTransactions": 0})
		return
	}

	var totalRevenue float64
	for _, sale := range sales {
		totalRevenue += sale.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"sales":             sales,
		"totalRevenue":      totalRevenue,
		"totalTransactions": len(sales),
	})
}

// GetLowStockReport is the handler for GET /v1/reports/low-stock.
// Eligibility is per-item (stock <= its own minStock), which no single
// WHERE clause over two columns expresses portably here, so it scans and
// filters like the pages always have. Ascending stock: worst first.
func (h *Handlers) GetLowStockReport(c *gin.Context) {
	items, err := h.lowStockMedicines()
	if err != nil {
		log.Printf("Error fetching low stock report: %v", err)
		c.JSON(http.StatusOK, gin.H{"medicines": []models.Medicine{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": items})
}

// GetExpiringSoonReport is the handler for GET /v1/reports/expiring?days=
// Unlike the alert sweep, this report has a lower bound: already-expired
// stock is a disposal problem, not an "expiring soon" one.
func (h *Handlers) GetExpiringSoonReport(c *gin.Context) {
	daysAhead := reportDays(c)

	items, err := h.expiringSoonMedicines(daysAhead)
	if err != nil {
		log.Printf("Error fetching expiring soon report: %v", err)
		c.JSON(http.StatusOK, gin.H{"medicines": []models.Medicine{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": items})
}

// ExportReportPDF is the handler for GET /v1/reports/pdf?type=
// type is one of sales, lowStock, expiring; sales also honors start/end
// and expiring honors days.
func (h *Handlers) ExportReportPDF(c *gin.Context) {
	reportType := c.Query("type")

	var (
		buf interface{ Bytes() []byte }
		err error
	)

	switch reportType {
	case "sales":
		start, end := parseRange(c)
		var sales []models.Sale
		sales, err = h.querySalesRange(start, end)
		if err == nil {
			var totalRevenue float64
			for _, sale := range sales {
				totalRevenue += sale.Total
			}
			buf, err = report.SalesPDF(sales, totalRevenue, periodLabel(start, end))
		}
	case "lowStock":
		var items []models.Medicine
		items, err = h.lowStockMedicines()
		if err == nil {
			buf, err = report.LowStockPDF(items)
		}
	case "expiring":
		daysAhead := reportDays(c)
		var items []models.Medicine
		items, err = h.expiringSoonMedicines(daysAhead)
		if err == nil {
			buf, err = report.ExpiringPDF(items, daysAhead)
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of: sales, lowStock, expiring"})
		return
	}

	if err != nil {
		log.Printf("Error exporting %s report: %v", reportType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal membuat laporan PDF"})
		return
	}

	filename := fmt.Sprintf("Report_%s_%d.pdf", reportType, time.Now().UnixMilli())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Handlers) lowStockMedicines() ([]models.Medicine, error) {
	medicines, err := h.scanMedicines(`
		SELECT id, name, stock, min_stock, price, buy_price, barcode, expired_at, supplier_id, created_at, updated_at
		FROM medicines`)
	if err != nil {
		return nil, err
	}

	items := []models.Medicine{}
	for _, m := range medicines {
		if m.Stock <= m.MinStock {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Stock < items[j].Stock })
	return items, nil
}

func (h *Handlers) expiringSoonMedicines(daysAhead int) ([]models.Medicine, error) {
	now := time.Now().UnixMilli()
	threshold := now + int64(daysAhead)*24*60*60*1000

	return h.scanMedicines(`
		SELECT id, name, stock, min_stock, price, buy_price, barcode, expired_at, supplier_id, created_at, updated_at
		FROM medicines
		WHERE expired_at IS NOT NULL AND expired_at <= ? AND expired_at > ?
		ORDER BY expired_at`, threshold, now)
}

func reportDays(c *gin.Context) int {
	daysAhead, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || daysAhead <= 0 {
		daysAhead = 30
	}
	return daysAhead
}

func periodLabel(start, end *int64) string {
	from := "Awal"
	if start != nil {
		from = time.UnixMilli(*start).Format("02/01/2006")
	}
	to := "Hari ini"
	if end != nil {
		to = time.UnixMilli(*end).Format("02/01/2006")
	}
	return from + " s/d " + to
}
