package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apotekcloud/apotek-golang/internal/models"
)

func TestSupplierLifecycle(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/suppliers", map[string]interface{}{
		"name":    "PT Kimia Farma",
		"contact": "Budi Santoso",
		"phone":   "0811111111",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Success  bool            `json:"success"`
		Supplier models.Supplier `json:"supplier"`
	}
	decode(t, w, &created)
	require.True(t, created.Success)
	id := created.Supplier.ID
	require.NotEmpty(t, id)

	// merge update: only the contact changes
	w = app.do(t, http.MethodPut, "/v1/suppliers/"+id, map[string]interface{}{
		"contact": "Siti Rahma",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/suppliers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list struct {
		Suppliers []models.Supplier `json:"suppliers"`
	}
	decode(t, w, &list)
	require.Len(t, list.Suppliers, 1)
	assert.Equal(t, "PT Kimia Farma", list.Suppliers[0].Name)
	assert.Equal(t, "Siti Rahma", list.Suppliers[0].Contact)
	require.NotNil(t, list.Suppliers[0].Phone)
	assert.Equal(t, "0811111111", *list.Suppliers[0].Phone)

	w = app.do(t, http.MethodDelete, "/v1/suppliers/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/v1/suppliers", nil)
	decode(t, w, &list)
	assert.Empty(t, list.Suppliers)
}

func TestCreateSupplier_RequiresNameAndContact(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/suppliers", map[string]interface{}{
		"name": "PT Kimia Farma",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSupplier_UnknownIDReturns404(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPut, "/v1/suppliers/tidak-ada", map[string]interface{}{
		"name": "PT Baru",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Deleting a supplier is not cascaded: medicines keep the dangling id.
func TestDeleteSupplier_LeavesMedicineReference(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/v1/suppliers", map[string]interface{}{
		"name":    "PT Kimia Farma",
		"contact": "Budi Santoso",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Supplier models.Supplier `json:"supplier"`
	}
	decode(t, w, &created)
	supplierID := created.Supplier.ID

	medicineID := app.seedMedicine(t, models.Medicine{
		Name: "Paracetamol 500mg", Stock: 50, MinStock: 10, Price: 10000,
		SupplierID: &supplierID,
	})

	w = app.do(t, http.MethodDelete, "/v1/suppliers/"+supplierID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored string
	require.NoError(t, app.DB.QueryRow("SELECT supplier_id FROM medicines WHERE id = ?", medicineID).Scan(&stored))
	assert.Equal(t, supplierID, stored)
}
