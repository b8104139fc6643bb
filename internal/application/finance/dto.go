package finance

import (
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the payload for a manual ledger entry. Profit is a
// pointer so an explicit zero can be told apart from "not informed", which
// derives the default margin.
type CreateSaleRequest struct {
	ClientID      *uuid.UUID       `json:"client_id"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	Profit        *decimal.Decimal `json:"profit"`
	PaymentMethod string           `json:"payment_method"`
	SaleDate      *time.Time       `json:"sale_date"`
	Description   string           `json:"description"`
}

// UpdateSaleRequest is the payload to update a ledger entry
type UpdateSaleRequest struct {
	ClientID      *uuid.UUID       `json:"client_id"`
	Amount        *decimal.Decimal `json:"amount"`
	Profit        *decimal.Decimal `json:"profit"`
	PaymentMethod *string          `json:"payment_method"`
	SaleDate      *time.Time       `json:"sale_date"`
	Description   *string          `json:"description"`
}

// SaleListFilter carries list/pagination parameters for sales
type SaleListFilter struct {
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// SaleResponse is the API representation of a ledger entry
type SaleResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      *uuid.UUID      `json:"client_id,omitempty"`
	OrderID       *uuid.UUID      `json:"order_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Profit        decimal.Decimal `json:"profit"`
	PaymentMethod string          `json:"payment_method"`
	SaleDate      time.Time       `json:"sale_date"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToSaleResponse maps a domain sale to its API representation
func ToSaleResponse(sale *finance.Sale) SaleResponse {
	return SaleResponse{
		ID:            sale.ID,
		ClientID:      sale.ClientID,
		OrderID:       sale.OrderID,
		Amount:        sale.Amount,
		Profit:        sale.Profit,
		PaymentMethod: sale.PaymentMethod.String(),
		SaleDate:      sale.SaleDate,
		Description:   sale.Description,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}
}

// ToSaleResponses maps a slice of domain sales
func ToSaleResponses(sales []finance.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, ToSaleResponse(&sales[i]))
	}
	return out
}

// CreateExpenseRequest is the payload to create a payable
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	IssueDate   *time.Time      `json:"issue_date"`
	DueDate     *time.Time      `json:"due_date"`
}

// UpdateExpenseRequest is the payload to correct a payable
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	IssueDate   *time.Time       `json:"issue_date"`
	DueDate     *time.Time       `json:"due_date"`
}

// ExpenseListFilter carries list/pagination parameters for expenses
type ExpenseListFilter struct {
	Status   *string `form:"status"`
	Category *string `form:"category"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

// ExpenseResponse is the API representation of a payable
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	IssueDate   time.Time       `json:"issue_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Status      string          `json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToExpenseResponse maps a domain expense to its API representation
func ToExpenseResponse(expense *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          expense.ID,
		Amount:      expense.Amount,
		Category:    expense.Category.String(),
		Description: expense.Description,
		IssueDate:   expense.IssueDate,
		DueDate:     expense.DueDate,
		Status:      expense.Status.String(),
		PaidAt:      expense.PaidAt,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}

// ToExpenseResponses maps a slice of domain expenses
func ToExpenseResponses(expenses []finance.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ToExpenseResponse(&expenses[i]))
	}
	return out
}

// MonthlyExpenseSummary is one month of the expense summary: the total
// paid out plus a per-category breakdown.
type MonthlyExpenseSummary struct {
	Month      string                     `json:"month"`
	Total      decimal.Decimal            `json:"total"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}
