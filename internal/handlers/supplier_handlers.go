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
// --- Supplier Handlers ---
//

// GetSuppliers is the handler for GET /v1/suppliers.
func (h *Handlers) GetSuppliers(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, name, contact, email, phone, address, created_at, updated_at
		FROM suppliers
		ORDER BY name`)
	if err != nil {
		log.Printf("Error fetching suppliers: %v", err)
		c.JSON(http.StatusOK, gin.H{"suppliers": []models.Supplier{}})
		return
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			log.Printf("Error scanning supplier: %v", err)
			c.JSON(http.StatusOK, gin.H{"suppliers": []models.Supplier{}})
			return
		}
		suppliers = append(suppliers, s)
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// CreateSupplierInput defines the JSON for adding a supplier.
type CreateSupplierInput struct {
	Name    string  `json:"name" binding:"required"`
	Contact string  `json:"contact" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CreateSupplier is the handler for POST /v1/suppliers.
func (h *Handlers) CreateSupplier(c *gin.Context) {
	var input CreateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	now := time.Now().UnixMilli()
	supplier := models.Supplier{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Contact:   input.Contact,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO suppliers (id, name, contact, email, phone, address, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := h.DB.Exec(query,
		supplier.ID, supplier.Name, supplier.Contact, supplier.Email, supplier.Phone, supplier.Address,
		supplier.CreatedAt, supplier.UpdatedAt)
	if err != nil {
		log.Printf("Error creating supplier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menambah supplier"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "supplier": supplier})
}

// UpdateSupplierInput merges only the fields present in the JSON.
type UpdateSupplierInput struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateSupplier is the handler for PUT /v1/suppliers/:id.
func (h *Handlers) UpdateSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	var input UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UnixMilli()}

	appendSet := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if input.Name != nil {
		appendSet("name", *input.Name)
	}
	if input.Contact != nil {
		appendSet("contact", *input.Contact)
	}
	if input.Email != nil {
		appendSet("email", *input.Email)
	}
	if input.Phone != nil {
		appendSet("phone", *input.Phone)
	}
	if input.Address != nil {
		appendSet("address", *input.Address)
	}

	args = append(args, supplierID)
	query := "UPDATE suppliers SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		log.Printf("Error updating supplier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal update supplier"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Gagal update supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSupplier is the handler for DELETE /v1/suppliers/:id.
// No cascade and no FK enforcement: medicines that reference this
// supplier keep their now-dangling supplier_id.
func (h *Handlers) DeleteSupplier(c *gin.Context) {
	supplierID := c.Param("id")

	if _, err := h.DB.Exec("DELETE FROM suppliers WHERE id = ?", supplierID); err != nil {
		log.Printf("Error deleting supplier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal menghapus supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
