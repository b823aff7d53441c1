package models

type Supplier struct {
	ID      string  `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	Contact string  `json:"contact" db:"contact"`
	Email   *string `json:"email,omitempty" db:"email"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Address *string `json:"address,omitempty" db:"address"`

	CreatedAt int64 `json:"createdAt" db:"created_at"`
	UpdatedAt int64 `json:"updatedAt" db:"updated_at"`
}
