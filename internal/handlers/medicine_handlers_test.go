package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekcloud/apotek-golang/internal/models"
)

func TestCreateMedicine_RoundTrip(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/medicines", map[string]interface{}{
		"name":      "Paracetamol 500mg",
		"stock":     50,
		"minStock":  10,
		"price":     10000,
		"buyPrice":  7000,
		"barcode":   "8991234567890",
		"expiredAt": millisIn(180),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success  bool            `json:"success"`
		Medicine models.Medicine `json:"medicine"`
	}
	decode(t, w, &created)
	require.True(t, created.Success)
	require.NotEmpty(t, created.Medicine.ID)
	assert.Equal(t, "Paracetamol 500mg", created.Medicine.Name)
	assert.NotZero(t, created.Medicine.CreatedAt)
	assert.Equal(t, created.Medicine.CreatedAt, created.Medicine.UpdatedAt)

	w = app.do(t, http.MethodGet, "/v1/medicines", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Medicines []models.Medicine `json:"medicines"`
	}
	decode(t, w, &list)
	require.Len(t, list.Medicines, 1)
	assert.Equal(t, created.Medicine.ID, list.Medicines[0].ID)
	require.NotNil(t, list.Medicines[0].Barcode)
	assert.Equal(t, "8991234567890", *list.Medicines[0].Barcode)
}

func TestCreateMedicine_RequiresName(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/medicines", map[string]interface{}{
		"stock": 10,
		"price": 5000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMedicines_SearchIsCaseInsensitive(t *testing.T) {
	app := newTestApp(t)
	app.seedMedicine(t, models.Medicine{Name: "Paracetamol 500mg", Stock: 50, MinStock: 10, Price: 10000})
	app.seedMedicine(t, models.Medicine{Name: "OBH Combi", Stock: 20, MinStock: 5, Price: 5000})

	w := app.do(t, http.MethodGet, "/v1/medicines?search=PARACET", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Medicines []models.Medicine `json:"medicines"`
	}
	decode(t, w, &list)
	require.Len(t, list.Medicines, 1)
	assert.Equal(t, "Paracetamol 500mg", list.Medicines[0].Name)
}

func TestSearchMedicines_MatchesBarcodeAndCapsAtTen(t *testing.T) {
	app := newTestApp(t)
	app.seedMedicine(t, models.Medicine{Name: "Amoxicillin", Stock: 30, MinStock: 5, Price: 15000, Barcode: strPtr("899777001")})
	for i := 0; i < 12; i++ {
		app.seedMedicine(t, models.Medicine{Name: fmt.Sprintf("Vitamin C %02d", i), Stock: 30, MinStock: 5, Price: 2000})
	}

	// barcode substring match
	w := app.do(t, http.MethodGet, "/v1/medicines/search?q=899777", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Medicines []models.Medicine `json:"medicines"`
	}
	decode(t, w, &list)
	require.Len(t, list.Medicines, 1)
	assert.Equal(t, "Amoxicillin", list.Medicines[0].Name)

	// result cap
	w = app.do(t, http.MethodGet, "/v1/medicines/search?q=vitamin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &list)
	assert.Len(t, list.Medicines, 10)
}

func TestUpdateMedicine_MergesOnlyProvidedFields(t *testing.T) {
	app := newTestApp(t)
	id := app.seedMedicine(t, models.Medicine{Name: "Paracetamol 500mg", Stock: 50, MinStock: 10, Price: 10000, BuyPrice: 7000})

	w := app.do(t, http.MethodPut, "/v1/medicines/"+id, map[string]interface{}{
		"price": 12000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var name string
	var stock int
	var price float64
	err := app.DB.QueryRow("SELECT name, stock, price FROM medicines WHERE id = ?", id).
		Scan(&name, &stock, &price)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", name)
	assert.Equal(t, 50, stock)
	assert.Equal(t, 12000.0, price)
}

func TestUpdateMedicine_UnknownIDReturns404(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/v1/medicines/tidak-ada", map[string]interface{}{
		"price": 12000,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMedicine_RemovesRow(t *testing.T) {
	app := newTestApp(t)
	id := app.seedMedicine(t, models.Medicine{Name: "Paracetamol 500mg", Stock: 50, MinStock: 10, Price: 10000})

	w := app.do(t, http.MethodDelete, "/v1/medicines/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM medicines").Scan(&count))
	assert.Zero(t, count)
}
