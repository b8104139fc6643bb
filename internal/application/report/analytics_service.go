package report

import (
	"context"
	"sort"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/report"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AnalyticsService derives the read-only financial views: the unified
// movement statement, the cash balance and the monthly goal summary.
// Nothing here is persisted; every answer is computed from the ledger.
type AnalyticsService struct {
	saleRepo    finance.SaleRepository
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(saleRepo finance.SaleRepository, expenseRepo finance.ExpenseRepository, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		saleRepo:    saleRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// Movements merges all sales and all paid expenses into a single statement
// ordered by date, newest first. Pending expenses never appear. The sort is
// stable so same-date entries keep the sales-then-expenses order.
func (s *AnalyticsService) Movements(ctx context.Context, ownerID uuid.UUID) ([]report.Movement, error) {
	// PageSize 0 disables pagination: the statement is the whole ledger.
	sales, err := s.saleRepo.FindAllForOwner(ctx, ownerID, shared.Filter{
		OrderBy:  "sale_date",
		OrderDir: "desc",
	})
	if err != nil {
		return nil, err
	}

	paid, err := s.expenseRepo.FindByStatusForOwner(ctx, ownerID, finance.ExpenseStatusPaid)
	if err != nil {
		return nil, err
	}

	movements := make([]report.Movement, 0, len(sales)+len(paid))
	for i := range sales {
		sale := &sales[i]
		movements = append(movements, report.Movement{
			ID:          "sale-" + sale.ID.String(),
			Direction:   report.MovementIn,
			Description: sale.Description,
			Amount:      sale.Amount,
			Date:        sale.SaleDate,
			OriginID:    sale.ID,
		})
	}
	for i := range paid {
		expense := &paid[i]
		date := expense.IssueDate
		if expense.PaidAt != nil {
			date = *expense.PaidAt
		}
		movements = append(movements, report.Movement{
			ID:          "expense-" + expense.ID.String(),
			Direction:   report.MovementOut,
			Description: expense.Description,
			Amount:      expense.Amount,
			Date:        date,
			OriginID:    expense.ID,
		})
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.After(movements[j].Date)
	})

	return movements, nil
}

// Balance computes the producer's cash position. The real balance counts
// only settled expenses; the projected balance assumes every pending
// payable will be paid. Either may be negative.
func (s *AnalyticsService) Balance(ctx context.Context, ownerID uuid.UUID) (*report.Balance, error) {
	totalSales, err := s.saleRepo.SumAmountForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	paidExpenses, err := s.expenseRepo.SumAmountByStatus(ctx, ownerID, finance.ExpenseStatusPaid)
	if err != nil {
		return nil, err
	}
	pendingExpenses, err := s.expenseRepo.SumAmountByStatus(ctx, ownerID, finance.ExpenseStatusPending)
	if err != nil {
		return nil, err
	}

	real := totalSales.Sub(paidExpenses)
	return &report.Balance{
		TotalSales:       totalSales,
		PaidExpenses:     paidExpenses,
		PendingExpenses:  pendingExpenses,
		RealBalance:      real,
		ProjectedBalance: real.Sub(pendingExpenses),
	}, nil
}

// GoalSummary compares the current calendar month's sales against a revenue
// goal. The window is half-open [first of month, first of next month) in
// local time. Percent is clamped at 100 and a non-positive goal always
// reads zero percent.
func (s *AnalyticsService) GoalSummary(ctx context.Context, ownerID uuid.UUID, goal decimal.Decimal) (*report.GoalSummary, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	realized, profit, err := s.saleRepo.SumByDateRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}

	percent := decimal.Zero
	if goal.IsPositive() {
		percent = realized.Div(goal).Mul(decimal.NewFromInt(100))
		hundred := decimal.NewFromInt(100)
		if percent.GreaterThan(hundred) {
			percent = hundred
		}
		percent = percent.Round(2)
	}

	return &report.GoalSummary{
		Goal:              goal,
		Realized:          realized,
		RealizedProfit:    profit,
		Percent:           percent,
		CashBoxAllocation: profit.Mul(report.CashBoxAllocationRate).Round(2),
	}, nil
}
