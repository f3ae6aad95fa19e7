package domain

import "time"

// Supplier is a vendor the organization buys from. FieldID ties the supplier
// to the business field (tag) it is catalogued under.
type Supplier struct {
	ID          string    `json:"supplier_id"`
	Name        string    `json:"name"`
	FieldID     string    `json:"field_id"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SupplierFilter narrows a supplier search. Zero values mean "no constraint".
type SupplierFilter struct {
	Query   string
	FieldID string
}
