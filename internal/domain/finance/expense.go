package finance

import (
	"time"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of a payable (closed enum)
type ExpenseCategory string

const (
	ExpenseCategoryIngredients ExpenseCategory = "ingredients"
	ExpenseCategoryPackaging   ExpenseCategory = "packaging"
	ExpenseCategoryEquipment   ExpenseCategory = "equipment"
	ExpenseCategoryTransport   ExpenseCategory = "transport"
	ExpenseCategoryMarketing   ExpenseCategory = "marketing"
	ExpenseCategoryFees        ExpenseCategory = "fees"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryIngredients, ExpenseCategoryPackaging, ExpenseCategoryEquipment,
		ExpenseCategoryTransport, ExpenseCategoryMarketing, ExpenseCategoryFees,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// ExpenseStatus represents the payable lifecycle
type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusPaid    ExpenseStatus = "paid"
)

// IsValid checks if the status is a valid ExpenseStatus
func (s ExpenseStatus) IsValid() bool {
	return s == ExpenseStatusPending || s == ExpenseStatusPaid
}

// String returns the string representation of ExpenseStatus
func (s ExpenseStatus) String() string {
	return string(s)
}

// Expense is a cash-out obligation (saída) with a one-way pending -> paid
// lifecycle. There is no reversal operation.
type Expense struct {
	shared.OwnedAggregateRoot
	Amount      decimal.Decimal
	Category    ExpenseCategory
	Description string
	IssueDate   time.Time
	DueDate     *time.Time
	Status      ExpenseStatus
	PaidAt      *time.Time
}

// NewExpense creates a new payable, always starting pending.
// The issue date defaults to now when omitted.
func NewExpense(ownerID uuid.UUID, amount decimal.Decimal, category ExpenseCategory, description string, issueDate time.Time, dueDate *time.Time) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Expense amount must be positive")
	}
	if !category.IsValid() {
		return nil, shared.NewValidationError("Invalid expense category")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Expense{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Amount:             amount,
		Category:           category,
		Description:        description,
		IssueDate:          issueDate,
		DueDate:            dueDate,
		Status:             ExpenseStatusPending,
	}, nil
}

// Pay marks the payable as paid. Paying twice is an error, not a no-op.
func (e *Expense) Pay() error {
	if e.Status == ExpenseStatusPaid {
		return shared.NewValidationError("Expense is already paid")
	}

	now := time.Now()
	e.Status = ExpenseStatusPaid
	e.PaidAt = &now
	e.Touch()

	return nil
}

// IsPaid returns true when the payable has been settled
func (e *Expense) IsPaid() bool {
	return e.Status == ExpenseStatusPaid
}

// Update corrects the payable fields. Status is not restricted here: a paid
// expense's amount can still be corrected.
func (e *Expense) Update(amount decimal.Decimal, category ExpenseCategory, description *string, issueDate *time.Time, dueDate *time.Time) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Expense amount must be positive")
	}
	if category != "" {
		if !category.IsValid() {
			return shared.NewValidationError("Invalid expense category")
		}
		e.Category = category
	}
	if description != nil {
		e.Description = *description
	}
	if issueDate != nil && !issueDate.IsZero() {
		e.IssueDate = *issueDate
	}
	if dueDate != nil {
		e.DueDate = dueDate
	}

	e.Amount = amount
	e.Touch()

	return nil
}
