package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekcloud/apotek-golang/internal/models"
)

func TestSalesReport_SumsRevenue(t *testing.T) {
	app := newTestApp(t)
	id := app.seedMedicine(t, models.Medicine{Name: "OBH Combi", Stock: 50, MinStock: 2, Price: 5000})

	for _, total := range []float64{5000, 15000} {
		w := app.do(t, http.MethodPost, "/v1/sales", map[string]interface{}{
			"items": []map[string]interface{}{
				{"medicineId": id, "name": "OBH Combi", "quantity": 1, "price": total, "subtotal": total},
			},
			"total": total,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := app.do(t, http.MethodGet, "/v1/reports/sales", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Sales             []models.Sale `json:"sales"`
		TotalRevenue      float64       `json:"totalRevenue"`
		TotalTransactions int           `json:"totalTransactions"`
	}
	decode(t, w, &report)
	assert.Len(t, report.Sales, 2)
	assert.Equal(t, 20000.0, report.TotalRevenue)
	assert.Equal(t, 2, report.TotalTransactions)
}

func TestLowStockReport_UsesPerItemThreshold(t *testing.T) {
	app := newTestApp(t)
	app.seedMedicine(t, models.Medicine{Name: "Amoxicillin", Stock: 3, MinStock: 10, Price: 15000})
	app.seedMedicine(t, models.Medicine{Name: "Paracetamol 500mg", Stock: 10, MinStock: 10, Price: 10000}) // boundary: included
	app.seedMedicine(t, models.Medicine{Name: "OBH Combi", Stock: 11, MinStock: 10, Price: 5000})          // above: excluded

	w := app.do(t, http.MethodGet, "/v1/reports/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Medicines []models.Medicine `json:"medicines"`
	}
	decode(t, w, &report)
	require.Len(t, report.Medicines, 2)
	// worst stock first
	assert.Equal(t, "Amoxicillin", report.Medicines[0].Name)
	assert.Equal(t, "Paracetamol 500mg", report.Medicines[1].Name)
}

func TestExpiringReport_ExcludesAlreadyExpired(t *testing.T) {
	app := newTestApp(t)
	app.seedMedicine(t, models.Medicine{Name: "Expired Batch", Stock: 5, MinStock: 2, Price: 1000, ExpiredAt: int64Ptr(millisIn(-3))})
	app.seedMedicine(t, models.Medicine{Name: "Expiring Soon", Stock: 5, MinStock: 2, Price: 1000, ExpiredAt: int64Ptr(millisIn(10))})
	app.seedMedicine(t, models.Medicine{Name: "Far Future", Stock: 5, MinStock: 2, Price: 1000, ExpiredAt: int64Ptr(millisIn(120))})
	app.seedMedicine(t, models.Medicine{Name: "No Expiry", Stock: 5, MinStock: 2, Price: 1000})

	w := app.do(t, http.MethodGet, "/v1/reports/expiring?days=30", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Medicines []models.Medicine `json:"medicines"`
	}
	decode(t, w, &report)
	require.Len(t, report.Medicines, 1)
	assert.Equal(t, "Expiring Soon", report.Medicines[0].Name)

	// widening the lookahead pulls in the far-future batch
	w = app.do(t, http.MethodGet, "/v1/reports/expiring?days=365", nil)
	decode(t, w, &report)
	assert.Len(t, report.Medicines, 2)
}

func TestExportReportPDF_ReturnsAttachment(t *testing.T) {
	app := newTestApp(t)
	app.seedMedicine(t, models.Medicine{Name: "Amoxicillin", Stock: 3, MinStock: 10, Price: 15000})

	for _, reportType := range []string{"sales", "lowStock", "expiring"} {
		w := app.do(t, http.MethodGet, "/v1/reports/pdf?type="+reportType, nil)
		require.Equal(t, http.StatusOK, w.Code, "type=%s", reportType)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
		require.True(t, w.Body.Len() > 4, "type=%s", reportType)
		assert.Equal(t, "%PDF", w.Body.String()[:4], "type=%s", reportType)
	}
}

func TestExportReportPDF_RejectsUnknownType(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/reports/pdf?type=inventaris", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
