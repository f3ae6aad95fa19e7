package domain

// SummaryPeriod selects the aggregation window of the dashboard summary.
type SummaryPeriod string

const (
	PeriodMonthly   SummaryPeriod = "monthly"
	PeriodQuarterly SummaryPeriod = "quarterly"
	PeriodYearly    SummaryPeriod = "yearly"
)

// ValidSummaryPeriod reports whether p is a recognised aggregation window.
func ValidSummaryPeriod(p SummaryPeriod) bool {
	switch p {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// CashFlowPoint is one bucket of the income/expense series.
type CashFlowPoint struct {
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// FieldExpense aggregates expenses by supplier field for the expenses chart.
type FieldExpense struct {
	FieldID   string  `json:"field_id"`
	FieldName string  `json:"field_name"`
	Amount    float64 `json:"amount"`
}

// DashboardSummary is the joined payload behind the treasury dashboard.
type DashboardSummary struct {
	Period          SummaryPeriod   `json:"period"`
	TotalBalance    float64         `json:"total_balance"`
	TotalIncome     float64         `json:"total_income"`
	TotalExpenses   float64         `json:"total_expenses"`
	CashFlow        []CashFlowPoint `json:"cash_flow"`
	ExpensesByField []FieldExpense  `json:"expenses_by_field"`
}

// AnnualCashFlow is the reports screen payload: one point per month of the
// requested year.
type AnnualCashFlow struct {
	Year   int             `json:"year"`
	Months []CashFlowPoint `json:"months"`
}
