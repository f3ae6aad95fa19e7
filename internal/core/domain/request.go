package domain

import "time"

// RequestStatus is the lifecycle state of a supplier request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDeclined RequestStatus = "declined"
)

// ValidRequestStatus reports whether s is a status a request may move to.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestApproved, RequestDeclined:
		return true
	}
	return false
}

// SupplierRequest is a branch manager's ask for a new supplier to be added
// to the catalogue. Treasury approves or declines it from the dashboard.
type SupplierRequest struct {
	ID            string        `json:"request_id"`
	RequestedBy   string        `json:"requested_by"`
	BranchID      string        `json:"branch_id"`
	SupplierName  string        `json:"supplier_name"`
	FieldID       string        `json:"field_id"`
	ContactName   string        `json:"contact_name,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Justification string        `json:"justification,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
