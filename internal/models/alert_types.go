package models

// Alert reasons. An item low on stock AND close to expiry shows up
// twice in the same alert, once per reason.
const (
	AlertReasonLowStock    = "lowStock"
	AlertReasonExpiredSoon = "expiredSoon"
)

// Alert is one sweep outcome. Created by the alert sweep only, never updated.
type Alert struct {
	ID     string      `json:"id" db:"id"`
	Items  []AlertItem `json:"items"`
	Status string      `json:"status" db:"status"` // "sent"
	Type   string      `json:"type" db:"type"`     // delivery channel, "email"

	CreatedAt int64 `json:"createdAt" db:"created_at"`
}

// AlertItem snapshots the medicine fields that triggered the alert.
type AlertItem struct {
	ID        string `json:"id" db:"medicine_id"`
	Name      string `json:"name" db:"name"`
	Stock     *int   `json:"stock,omitempty" db:"stock"`
	MinStock  *int   `json:"minStock,omitempty" db:"min_stock"`
	ExpiredAt *int64 `json:"expiredAt,omitempty" db:"expired_at"`
	Reason    string `json:"reason" db:"reason"`
}
