package finance

import (
	"context"
	"time"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for ledger entry persistence
type SaleRepository interface {
	// FindByIDForOwner finds a sale by ID for an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Sale, error)

	// FindByOrderID finds the sale derived from an order, if any.
	// Returns shared.ErrNotFound when the order was never transposed.
	// This lookup is what makes the transposition idempotent.
	FindByOrderID(ctx context.Context, ownerID, orderID uuid.UUID) (*Sale, error)

	// FindAllForOwner finds all sales for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// DeleteForOwner deletes a sale for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts sales for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// SumAmountForOwner sums sale amounts across the whole ledger
	SumAmountForOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error)

	// SumByDateRange sums amount and profit over [from, to)
	SumByDateRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (amount, profit decimal.Decimal, err error)
}

// MonthlyCategoryTotal is one aggregation bucket of the expense summary
type MonthlyCategoryTotal struct {
	Month    string          // YYYY-MM, extracted from the issue date
	Category ExpenseCategory
	Total    decimal.Decimal
}

// ExpenseRepository defines the interface for payable persistence
type ExpenseRepository interface {
	// FindByIDForOwner finds an expense by ID for an owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Expense, error)

	// FindAllForOwner finds all expenses for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Expense, error)

	// FindByStatusForOwner finds expenses in a given status
	FindByStatusForOwner(ctx context.Context, ownerID uuid.UUID, status ExpenseStatus) ([]Expense, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// DeleteForOwner deletes an expense for an owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts expenses for an owner with optional filters
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// SumAmountByStatus sums expense amounts in a given status
	SumAmountByStatus(ctx context.Context, ownerID uuid.UUID, status ExpenseStatus) (decimal.Decimal, error)

	// MonthlySummary aggregates expense totals grouped by (month, category)
	MonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]MonthlyCategoryTotal, error)
}
