package models

// Sale is one completed checkout. Sales are immutable once written:
// there is no update or delete path anywhere in the API.
type Sale struct {
	ID       string     `json:"id" db:"id"`
	Items    []SaleItem `json:"items"`
	Total    float64    `json:"total" db:"total"`
	Discount float64    `json:"discount" db:"discount"`
	Tax      float64    `json:"tax" db:"tax"`
	UserID   string     `json:"userId" db:"user_id"`

	CreatedAt int64 `json:"createdAt" db:"created_at"`
}

// SaleItem snapshots the medicine name and unit price at checkout time,
// so later price edits don't rewrite history.
type SaleItem struct {
	MedicineID string  `json:"medicineId" db:"medicine_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	Price      float64 `json:"price" db:"price"`
	Subtotal   float64 `json:"subtotal" db:"subtotal"`
}
