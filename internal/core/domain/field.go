package domain

import "time"

// SupplierField is a business-field tag suppliers are catalogued under
// (e.g. produce, construction, transport).
type SupplierField struct {
	ID        string    `json:"field_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
