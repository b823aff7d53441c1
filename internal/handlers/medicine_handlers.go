package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// --- Inventory Handlers ---
//

// GetMedicines is the handler for GET /v1/medicines?search=
// The search is a case-insensitive substring match done in-process over
// the full collection, because that's the behavior the pages already
// depend on (no collation tricks, no index requirements).
func (h *Handlers) GetMedicines(c *gin.Context) {
	search := strings.ToLower(c.Query("search"))

	medicines, err := h.scanMedicines(`
		SELECT id, name, stock, min_stock, price, buy_price, barcode, expired_at, supplier_id, created_at, updated_at
		FROM medicines
		ORDER BY name`)
	if err != nil {
		// Read failures degrade to an empty list; the page just shows no rows.
		log.Printf("Error fetching medicines: %v", err)
		c.JSON(http.StatusOK, gin.H{"medicines": []models.Medicine{}})
		return
	}

	if search != "" {
		filtered := make([]models.Medicine, 0, len(medicines))
		for _, m := range medicines {
			if strings.Contains(strings.ToLower(m.Name), search) {
				filtered = append(filtered, m)
			}
		}
		medicines = filtered
	}

	c.JSON(http.StatusOK, gin.H{"medicines": medicines})
}

// SearchMedicines is the handler for GET /v1/medicines/search?q=
// It backs the point-of-sale quick search: name or barcode substring,
// capped at 10 rows.
func (h *Handlers) SearchMedicines(c *gin.Context) {
	q := strings.ToLower(c.Query("q"))

	medicines, err := h.scanMedicines(`
		SELECT id, name, stock, min_stock, price, buy_price, barcode, expired_at, supplier_id, created_at, updated_at
		FROM medicines
		ORDER BY name`)
	if err != nil {
		log.Printf("Error searching medicines: %v", err)
		c.JSON(http.StatusOK, gin.H{"medicines": []models.Medicine{}})
		return
	}

	matches := make([]models.Medicine, 0, 10)
	for _, m := range medicines {
		if len(matches) == 10 {
			break
		}
		if strings.Contains(strings.ToLower(m.Name), q) {
			matches = append(matches, m)
			continue
		}
		if m.Barcode != nil && strings.Contains(strings.ToLower(*m.Barcode), q) {
			matches = append(matches, m)
		}
	}

	c.JSON(http.StatusOK, gin.H{"medicines": matches})
}

// CreateMedicineInput defines the JSON for adding a medicine.
type CreateMedicineInput struct {
	Name       string  `json:"name" binding:"required"`
	Stock      int     `json:"stock" binding:"min=0"`
	MinStock   int     `json:"minStock" binding:"min=0"`
	Price      float64 `json:"price" binding:"min=0"`
	BuyPrice   float64 `json:"buyPrice" binding:"min=0"`
	Barcode    *string `json:"barcode"`
	ExpiredAt  *int64  `json:"expiredAt"`
	SupplierID *string `json:"supplierId"`
}

// CreateMedicine is the handler for POST /v1/medicines.
func (h *Handlers) CreateMedicine(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 2. --- Insert with server-assigned id and timestamps ---
	now := time.Now().UnixMilli()
	medicine := models.Medicine{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Stock:      input.Stock,
		MinStock:   input.MinStock,
		Price:      input.Price,
		BuyPrice:   input.BuyPrice,
		Barcode:    input.Barcode,
		ExpiredAt:  input.ExpiredAt,
		SupplierID: input.SupplierID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query := `
		INSERT INTO medicines (id, name, stock, min_stock, price, buy_price, barcode, expired_at, supplier_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := h.DB.Exec(query,
		medicine.ID, medicine.Name, medicine.Stock, medicine.MinStock, medicine.Price, medicine.BuyPrice,
		medicine.Barcode, medicine.ExpiredAt, medicine.SupplierID, medicine.CreatedAt, medicine.UpdatedAt)
	if err != nil {
		log.Printf("Error creating medicine: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menambah obat"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "medicine": medicine})
}

// UpdateMedicineInput uses pointers throughout: only fields present in
// the JSON get written, matching the merge semantics of the pages.
type UpdateMedicineInput struct {
	Name       *string  `json:"name"`
	Stock      *int     `json:"stock"`
	MinStock   *int     `json:"minStock"`
	Price      *float64 `json:"price"`
	BuyPrice   *float64 `json:"buyPrice"`
	Barcode    *string  `json:"barcode"`
	ExpiredAt  *int64   `json:"expiredAt"`
	SupplierID *string  `json:"supplierId"`
}

// UpdateMedicine is the handler for PUT /v1/medicines/:id.
func (h *Handlers) UpdateMedicine(c *gin.Context) {
	medicineID := c.Param("id")

	// 1. --- Bind & Validate JSON ---
	var input UpdateMedicineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 2. --- Build the SET clause from the provided fields ---
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UnixMilli()}

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if input.Name != nil {
		appendSet("name", *input.Name)
	}
	if input.Stock != nil {
		appendSet("stock", *input.Stock)
	}
	if input.MinStock != nil {
		appendSet("min_stock", *input.MinStock)
	}
	if input.Price != nil {
		appendSet("price", *input.Price)
	}
	if input.BuyPrice != nil {
		appendSet("buy_price", *input.BuyPrice)
	}
	if input.Barcode != nil {
		appendSet("barcode", *input.Barcode)
	}
	if input.ExpiredAt != nil {
		appendSet("expired_at", *input.ExpiredAt)
	}
	if input.SupplierID != nil {
		appendSet("supplier_id", *input.SupplierID)
	}

	args = append(args, medicineID)
	query := "UPDATE medicines SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	// 3. --- Execute Update ---
	result, err := h.DB.Exec(query, args...)
	if err != nil {
		log.Printf("Error updating medicine: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal update obat"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Gagal update obat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteMedicine is the handler for DELETE /v1/medicines/:id.
// Hard delete, no tombstone. Sales keep their name/price snapshots.
func (h *Handlers) DeleteMedicine(c *gin.Context) {
	medicineID := c.Param("id")

	if _, err := h.DB.Exec("DELETE FROM medicines WHERE id = ?", medicineID); err != nil {
		log.Printf("Error deleting medicine: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menghapus obat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// scanMedicines runs a medicines SELECT and scans the full rows.
func (h *Handlers) scanMedicines(query string, args ...interface{}) ([]models.Medicine, error) {
	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	medicines := []models.Medicine{}
	for rows.Next() {
		var m models.Medicine
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Stock, &m.MinStock, &m.Price, &m.BuyPrice,
			&m.Barcode, &m.ExpiredAt, &m.SupplierID, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}
