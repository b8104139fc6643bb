package finance

import (
	"context"
	"testing"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByStatusForOwner(ctx context.Context, ownerID uuid.UUID, status finance.ExpenseStatus) ([]finance.Expense, error) {
	args := m.Called(ctx, ownerID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockExpenseRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExpenseRepository) SumAmountByStatus(ctx context.Context, ownerID uuid.UUID, status finance.ExpenseStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) MonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]finance.MonthlyCategoryTotal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.MonthlyCategoryTotal), args.Error(1)
}

func newExpenseService() (*ExpenseService, *MockExpenseRepository) {
	repo := new(MockExpenseRepository)
	return NewExpenseService(repo, zap.NewNop()), repo
}

func pendingTestExpense(t *testing.T, ownerID uuid.UUID) *finance.Expense {
	expense, err := finance.NewExpense(ownerID, decimal.NewFromInt(80), finance.ExpenseCategoryIngredients, "Farinha", time.Now(), nil)
	require.NoError(t, err)
	return expense
}

func TestExpenseService_Create(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()

	repo.On("Save", ctx, mock.AnythingOfType("*finance.Expense")).Return(nil)

	resp, err := svc.Create(ctx, ownerID, CreateExpenseRequest{
		Amount:   decimal.NewFromInt(120),
		Category: "packaging",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "packaging", resp.Category)
	assert.False(t, resp.IssueDate.IsZero())
	repo.AssertExpectations(t)
}

func TestExpenseService_Create_InvalidCategory(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), CreateExpenseRequest{
		Amount:   decimal.NewFromInt(120),
		Category: "rent",
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExpenseService_List_InvalidFilters(t *testing.T) {
	svc, _ := newExpenseService()
	ctx := context.Background()

	badStatus := "overdue"
	_, _, err := svc.List(ctx, uuid.New(), ExpenseListFilter{Status: &badStatus})
	assert.Error(t, err)

	badCategory := "rent"
	_, _, err = svc.List(ctx, uuid.New(), ExpenseListFilter{Category: &badCategory})
	assert.Error(t, err)
}

func TestExpenseService_Pay(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()

	expense := pendingTestExpense(t, ownerID)

	repo.On("FindByIDForOwner", ctx, ownerID, expense.ID).Return(expense, nil)
	repo.On("Save", ctx, expense).Return(nil)

	resp, err := svc.Pay(ctx, ownerID, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	assert.NotNil(t, resp.PaidAt)
}

func TestExpenseService_Pay_AlreadyPaid(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()

	expense := pendingTestExpense(t, ownerID)
	require.NoError(t, expense.Pay())

	repo.On("FindByIDForOwner", ctx, ownerID, expense.ID).Return(expense, nil)

	_, err := svc.Pay(ctx, ownerID, expense.ID)
	require.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestExpenseService_Delete_NotFound(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()
	expenseID := uuid.New()

	repo.On("FindByIDForOwner", ctx, ownerID, expenseID).Return(nil, shared.ErrNotFound)

	err := svc.Delete(ctx, ownerID, expenseID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestExpenseService_MonthlySummary(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()

	buckets := []finance.MonthlyCategoryTotal{
		{Month: "2025-01", Category: finance.ExpenseCategoryIngredients, Total: decimal.NewFromInt(100)},
		{Month: "2025-02", Category: finance.ExpenseCategoryIngredients, Total: decimal.NewFromInt(40)},
		{Month: "2025-02", Category: finance.ExpenseCategoryTransport, Total: decimal.NewFromInt(25)},
	}
	repo.On("MonthlySummary", ctx, ownerID).Return(buckets, nil)

	summary, err := svc.MonthlySummary(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	// newest month first
	assert.Equal(t, "2025-02", summary[0].Month)
	assert.True(t, summary[0].Total.Equal(decimal.NewFromInt(65)), "total = %s", summary[0].Total)
	assert.True(t, summary[0].ByCategory["ingredients"].Equal(decimal.NewFromInt(40)))
	assert.True(t, summary[0].ByCategory["transport"].Equal(decimal.NewFromInt(25)))

	assert.Equal(t, "2025-01", summary[1].Month)
	assert.True(t, summary[1].Total.Equal(decimal.NewFromInt(100)))
}

func TestExpenseService_MonthlySummary_Empty(t *testing.T) {
	svc, repo := newExpenseService()
	ctx := context.Background()
	ownerID := uuid.New()

	repo.On("MonthlySummary", ctx, ownerID).Return([]finance.MonthlyCategoryTotal{}, nil)

	summary, err := svc.MonthlySummary(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, summary)
}
