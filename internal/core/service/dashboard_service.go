package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kibfin/supplier-portal/internal/core/domain"
	"github.com/kibfin/supplier-portal/internal/core/ports"
)

// DashboardService aggregates booked transactions into the summary and
// report payloads behind the treasury screens.
type DashboardService struct {
	transactions ports.TransactionRepository
	fields       ports.FieldRepository
}

func NewDashboardService(transactions ports.TransactionRepository, fields ports.FieldRepository) *DashboardService {
	return &DashboardService{transactions: transactions, fields: fields}
}

// Summary builds the dashboard payload for the requested aggregation window:
// the last 12 months, 4 quarters or 5 years. The balance is all-time.
func (s *DashboardService) Summary(ctx context.Context, period domain.SummaryPeriod) (*domain.DashboardSummary, error) {
	if !domain.ValidSummaryPeriod(period) {
		return nil, domain.ErrInvalidPeriod
	}

	now := time.Now().UTC()
	txs, err := s.transactions.ListBetween(ctx, 0, now.Unix())
	if err != nil {
		return nil, err
	}

	windowStart := periodStart(period, now)
	summary := &domain.DashboardSummary{
		Period:   period,
		CashFlow: emptyBuckets(period, now),
	}

	byField := map[string]float64{}
	for _, tx := range txs {
		switch tx.Type {
		case domain.TransactionIncome:
			summary.TotalBalance += tx.Amount
		case domain.TransactionExpense:
			summary.TotalBalance -= tx.Amount
		}

		if tx.BookedAt.Before(windowStart) {
			continue
		}

		label := bucketLabel(period, tx.BookedAt)
		for i := range summary.CashFlow {
			if summary.CashFlow[i].Label != label {
				continue
			}
			if tx.Type == domain.TransactionIncome {
				summary.CashFlow[i].Income += tx.Amount
				summary.TotalIncome += tx.Amount
			} else {
				summary.CashFlow[i].Expenses += tx.Amount
				summary.TotalExpenses += tx.Amount
				if tx.FieldID != "" {
					byField[tx.FieldID] += tx.Amount
				}
			}
			break
		}
	}

	summary.ExpensesByField, err = s.resolveFieldNames(ctx, byField)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// AnnualCashFlow returns one income/expense point per month of year.
func (s *DashboardService) AnnualCashFlow(ctx context.Context, year int) (*domain.AnnualCashFlow, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	txs, err := s.transactions.ListBetween(ctx, from.Unix(), to.Unix())
	if err != nil {
		return nil, err
	}

	report := &domain.AnnualCashFlow{
		Year:   year,
		Months: make([]domain.CashFlowPoint, 12),
	}
	for m := 0; m < 12; m++ {
		report.Months[m].Label = time.Month(m + 1).String()
	}

	for _, tx := range txs {
		if tx.BookedAt.Year() != year {
			continue
		}
		point := &report.Months[int(tx.BookedAt.Month())-1]
		if tx.Type == domain.TransactionIncome {
			point.Income += tx.Amount
		} else {
			point.Expenses += tx.Amount
		}
	}

	return report, nil
}

func (s *DashboardService) resolveFieldNames(ctx context.Context, byField map[string]float64) ([]domain.FieldExpense, error) {
	if len(byField) == 0 {
		return nil, nil
	}

	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(fields))
	for _, f := range fields {
		names[f.ID] = f.Name
	}

	out := make([]domain.FieldExpense, 0, len(byField))
	for _, f := range fields {
		amount, ok := byField[f.ID]
		if !ok {
			continue
		}
		out = append(out, domain.FieldExpense{FieldID: f.ID, FieldName: names[f.ID], Amount: amount})
	}
	return out, nil
}

func periodStart(period domain.SummaryPeriod, now time.Time) time.Time {
	switch period {
	case domain.PeriodQuarterly:
		q := (int(now.Month()) - 1) / 3
		thisQuarter := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
		return thisQuarter.AddDate(0, -9, 0)
	case domain.PeriodYearly:
		return time.Date(now.Year()-4, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return thisMonth.AddDate(0, -11, 0)
	}
}

func emptyBuckets(period domain.SummaryPeriod, now time.Time) []domain.CashFlowPoint {
	var points []domain.CashFlowPoint
	switch period {
	case domain.PeriodQuarterly:
		q := (int(now.Month()) - 1) / 3
		cursor := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -9, 0)
		for i := 0; i < 4; i++ {
			points = append(points, domain.CashFlowPoint{Label: bucketLabel(period, cursor)})
			cursor = cursor.AddDate(0, 3, 0)
		}
	case domain.PeriodYearly:
		for y := now.Year() - 4; y <= now.Year(); y++ {
			points = append(points, domain.CashFlowPoint{Label: fmt.Sprintf("%d", y)})
		}
	default:
		cursor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
		for i := 0; i < 12; i++ {
			points = append(points, domain.CashFlowPoint{Label: bucketLabel(period, cursor)})
			cursor = cursor.AddDate(0, 1, 0)
		}
	}
	return points
}

func bucketLabel(period domain.SummaryPeriod, t time.Time) string {
	switch period {
	case domain.PeriodQuarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case domain.PeriodYearly:
		return fmt.Sprintf("%d", t.Year())
	default:
		return t.Format("2006-01")
	}
}
