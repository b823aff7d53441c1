package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/apotekcloud/apotek-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

//
// --- Point-of-Sale Handlers ---
//

// SaleItemInput is one cart line. Price and subtotal are the snapshots
// the cashier screen computed; the server stores them as-is.
type SaleItemInput struct {
	MedicineID string  `json:"medicineId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"min=0"`
	Subtotal   float64 `json:"subtotal" binding:"min=0"`
}

// CreateSaleInput defines the JSON for checkout.
type CreateSaleInput struct {
	Items    []SaleItemInput `json:"items" binding:"required,min=1,dive"`
	Total    float64         `json:"total" binding:"min=0"`
	Discount float64         `json:"discount" binding:"min=0"`
	Tax      float64         `json:"tax" binding:"min=0"`
}

// CreateSale is the handler for POST /v1/sales.
// One transaction covers the sale record, its line items, and every stock
// decrement: all of it lands or none of it does. Deliberately preserved
// behavior: there is NO sufficiency re-check before decrementing (an
// oversized or concurrent sale can drive stock negative), and a line
// whose medicine has vanished keeps its place on the sale while its
// stock update is silently skipped.
func (h *Handlers) CreateSale(c *gin.Context) {
	// 1. --- Get Operator ID ---
	userID_raw, _ := c.Get("userID")
	operatorID := userID_raw.(string)

	// 2. --- Bind & Validate JSON ---
	var input CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	// 3. --- Begin Transaction ---
	tx, err := h.DB.BeginTx(c, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
		return
	}
	defer tx.Rollback() // Safety net

	// 4. --- Insert the Sale Record ---
	saleID := uuid.NewString()
	now := time.Now().UnixMilli()

	saleQuery := `
		INSERT INTO sales (id, total, discount, tax, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.Exec(saleQuery, saleID, input.Total, input.Discount, input.Tax, operatorID, now); err != nil {
		log.Printf("Error creating sale: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
		return
	}

	// 5. --- Insert Line Items & Decrement Stock ---
	itemQuery := `
		INSERT INTO sale_items (id, sale_id, medicine_id, name, quantity, price, subtotal)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	stockQuery := "UPDATE medicines SET stock = ?, updated_at = ? WHERE id = ?"

	for _, item := range input.Items {
		if _, err := tx.Exec(itemQuery,
			uuid.NewString(), saleID, item.MedicineID, item.Name, item.Quantity, item.Price, item.Subtotal); err != nil {
			log.Printf("Error saving sale item: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
			return
		}

		// Read the current stock, then write stock - quantity. Under
		// contention two checkouts can both read the pre-decrement value;
		// last write wins on the final field.
		var currentStock int
		err := tx.QueryRow("SELECT stock FROM medicines WHERE id = ?", item.MedicineID).Scan(&currentStock)
		if err == sql.ErrNoRows {
			continue // medicine vanished; keep the line, skip the decrement
		}
		if err != nil {
			log.Printf("Error loading medicine %s: %v", item.MedicineID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
			return
		}

		if _, err := tx.Exec(stockQuery, currentStock-item.Quantity, now, item.MedicineID); err != nil {
			log.Printf("Error updating stock for %s: %v", item.MedicineID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
			return
		}
	}

	// 6. --- Commit ---
	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Gagal membuat transaksi"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "saleId": saleID})
}

// GetSales is the handler for GET /v1/sales?start=&end=
// start/end are unix-millisecond bounds on createdAt; newest first,
// capped at 100 rows like the report page.
func (h *Handlers) GetSales(c *gin.Context) {
	start, end := parseRange(c)

	sales, err := h.querySalesRange(start, end)
	if err != nil {
		log.Printf("Error fetching sales: %v", err)
		c.JSON(http.StatusOK, gin.H{"sales": []models.Sale{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sales": sales})
}

// parseRange reads optional start/end millis from the query string.
// Unparseable values are treated as absent.
func parseRange(c *gin.Context) (start, end *int64) {
	if v, err := strconv.ParseInt(c.Query("start"), 10, 64); err == nil {
		start = &v
	}
	if v, err := strconv.ParseInt(c.Query("end"), 10, 64); err == nil {
		end = &v
	}
	return start, end
}

// querySalesRange loads sales in a createdAt range, newest first, with
// their line items attached. Shared by the sales list and the reports.
func (h *Handlers) querySalesRange(start, end *int64) ([]models.Sale, error) {
	query := "SELECT id, total, discount, tax, user_id, created_at FROM sales"
	var conditions []string
	var args []interface{}

	if start != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *start)
	}
	if end != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *end)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.Total, &s.Discount, &s.Tax, &s.UserID, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach line items per sale. The report caps at 100 sales, so the
	// per-sale query fan-out stays bounded.
	itemQuery := `
		SELECT medicine_id, name, quantity, price, subtotal
		FROM sale_items WHERE sale_id = ?`
	for i := range sales {
		itemRows, err := h.DB.Query(itemQuery, sales[i].ID)
		if err != nil {
			return nil, err
		}

		items := []models.SaleItem{}
		for itemRows.Next() {
			var item models.SaleItem
			if err := itemRows.Scan(&item.MedicineID, &item.Name, &item.Quantity, &item.Price, &item.Subtotal); err != nil {
				itemRows.Close()
				return nil, err
			}
			items = append(items, item)
		}
		if err := itemRows.Err(); err != nil {
			itemRows.Close()
			return nil, err
		}
		itemRows.Close()
		sales[i].Items = items
	}

	return sales, nil
}
