package models

// Medicine Model with Pointers for Nullable Fields.
// Timestamps are unix milliseconds, matching what the frontend already stores.
type Medicine struct {
	ID         string  `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Stock      int     `json:"stock" db:"stock"`
	MinStock   int     `json:"minStock" db:"min_stock"`
	Price      float64 `json:"price" db:"price"`
	BuyPrice   float64 `json:"buyPrice" db:"buy_price"`
	Barcode    *string `json:"barcode,omitempty" db:"barcode"`
	ExpiredAt  *int64  `json:"expiredAt,omitempty" db:"expired_at"`
	SupplierID *string `json:"supplierId,omitempty" db:"supplier_id"`

	CreatedAt int64 `json:"createdAt" db:"created_at"`
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"`
}
