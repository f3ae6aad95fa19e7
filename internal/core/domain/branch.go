package domain

import "time"

// Branch is an operational branch of the organization. Each branch manager
// account is tied to exactly one branch.
type Branch struct {
	ID        string `json:"branch_id"`
	Name      string `json:"name"`
	ManagerID string `json:"manager_id,omitempty"`
}

// TransactionType splits cash movements into the two directions the
// dashboard and reports aggregate over.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single cash movement booked against a branch.
type Transaction struct {
	ID          string          `json:"transaction_id"`
	BranchID    string          `json:"branch_id"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	FieldID     string          `json:"field_id,omitempty"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	BookedAt    time.Time       `json:"booked_at"`
}
