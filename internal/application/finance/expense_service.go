package finance

import (
	"context"
	"sort"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExpenseService manages the cash-out side of the ledger
type ExpenseService struct {
	expenseRepo finance.ExpenseRepository
	logger      *zap.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRepository, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

// Create records a payable, always starting pending
func (s *ExpenseService) Create(ctx context.Context, ownerID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	var issueDate time.Time
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	expense, err := finance.NewExpense(ownerID, req.Amount, finance.ExpenseCategory(req.Category), req.Description, issueDate, req.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// GetByID retrieves a payable
func (s *ExpenseService) GetByID(ctx context.Context, ownerID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}
	response := ToExpenseResponse(expense)
	return &response, nil
}

// List retrieves payables with filtering and pagination
func (s *ExpenseService) List(ctx context.Context, ownerID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "issue_date",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		status := finance.ExpenseStatus(*filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewValidationError("Invalid expense status")
		}
		domainFilter.Filters["status"] = status.String()
	}
	if filter.Category != nil {
		category := finance.ExpenseCategory(*filter.Category)
		if !category.IsValid() {
			return nil, 0, shared.NewValidationError("Invalid expense category")
		}
		domainFilter.Filters["category"] = category.String()
	}

	expenses, err := s.expenseRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.expenseRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToExpenseResponses(expenses), total, nil
}

// Update corrects a payable's fields
func (s *ExpenseService) Update(ctx context.Context, ownerID, expenseID uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	amount := expense.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	category := finance.ExpenseCategory("")
	if req.Category != nil {
		category = finance.ExpenseCategory(*req.Category)
	}
	if err := expense.Update(amount, category, req.Description, req.IssueDate, req.DueDate); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Pay settles a pending payable. Paying an already paid expense is an
// error, not a no-op.
func (s *ExpenseService) Pay(ctx context.Context, ownerID, expenseID uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := expense.Pay(); err != nil {
		return nil, err
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes a payable
func (s *ExpenseService) Delete(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	if _, err := s.expenseRepo.FindByIDForOwner(ctx, ownerID, expenseID); err != nil {
		return err
	}
	return s.expenseRepo.DeleteForOwner(ctx, ownerID, expenseID)
}

// MonthlySummary aggregates expense totals per month with a per-category
// breakdown, newest month first.
func (s *ExpenseService) MonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]MonthlyExpenseSummary, error) {
	buckets, err := s.expenseRepo.MonthlySummary(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyExpenseSummary)
	months := make([]string, 0)
	for _, b := range buckets {
		entry, ok := byMonth[b.Month]
		if !ok {
			entry = &MonthlyExpenseSummary{
				Month:      b.Month,
				Total:      decimal.Zero,
				ByCategory: make(map[string]decimal.Decimal),
			}
			byMonth[b.Month] = entry
			months = append(months, b.Month)
		}
		entry.Total = entry.Total.Add(b.Total)
		entry.ByCategory[b.Category.String()] = entry.ByCategory[b.Category.String()].Add(b.Total)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	out := make([]MonthlyExpenseSummary, 0, len(months))
	for _, m := range months {
		out = append(out, *byMonth[m])
	}
	return out, nil
}
