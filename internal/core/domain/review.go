package domain

import "time"

// Review is a branch manager's rating of a supplier, 1 to 5 stars.
type Review struct {
	ID         string    `json:"review_id"`
	SupplierID string    `json:"supplier_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidRating reports whether r is within the allowed star range.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}
