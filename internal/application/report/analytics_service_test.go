package report

import (
	"context"
	"testing"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/report"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSaleRepository is a mock implementation of finance.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Sale, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByOrderID(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.Sale, error) {
	args := m.Called(ctx, ownerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]finance.Sale, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *finance.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockSaleRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) SumAmountForOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSaleRepository) SumByDateRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, ownerID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

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

func newAnalyticsService() (*AnalyticsService, *MockSaleRepository, *MockExpenseRepository) {
	saleRepo := new(MockSaleRepository)
	expenseRepo := new(MockExpenseRepository)
	return NewAnalyticsService(saleRepo, expenseRepo, zap.NewNop()), saleRepo, expenseRepo
}

func saleOn(t *testing.T, ownerID uuid.UUID, amount int64, date time.Time, desc string) finance.Sale {
	sale, err := finance.NewSale(ownerID, nil, decimal.NewFromInt(amount), nil, trade.PaymentMethodCash, date, desc)
	require.NoError(t, err)
	return *sale
}

func paidExpenseOn(t *testing.T, ownerID uuid.UUID, amount int64, paidAt time.Time, desc string) finance.Expense {
	expense, err := finance.NewExpense(ownerID, decimal.NewFromInt(amount), finance.ExpenseCategoryOther, desc, paidAt.AddDate(0, 0, -3), nil)
	require.NoError(t, err)
	require.NoError(t, expense.Pay())
	expense.PaidAt = &paidAt
	return *expense
}

// ============================================
// Movements Tests
// ============================================

func TestAnalyticsService_Movements(t *testing.T) {
	svc, saleRepo, expenseRepo := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	day1 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	day3 := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	sales := []finance.Sale{
		saleOn(t, ownerID, 100, day1, "venda 1"),
		saleOn(t, ownerID, 200, day3, "venda 2"),
	}
	expenses := []finance.Expense{
		paidExpenseOn(t, ownerID, 50, day2, "embalagens"),
	}

	saleRepo.On("FindAllForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(sales, nil)
	expenseRepo.On("FindByStatusForOwner", ctx, ownerID, finance.ExpenseStatusPaid).Return(expenses, nil)

	movements, err := svc.Movements(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, movements, 3)

	// newest first: day3 sale, day2 expense, day1 sale
	assert.Equal(t, report.MovementIn, movements[0].Direction)
	assert.Equal(t, "venda 2", movements[0].Description)
	assert.Equal(t, report.MovementOut, movements[1].Direction)
	assert.Equal(t, "embalagens", movements[1].Description)
	assert.Equal(t, report.MovementIn, movements[2].Direction)

	// ids carry the source kind prefix
	assert.Contains(t, movements[0].ID, "sale-")
	assert.Contains(t, movements[1].ID, "expense-")
}

func TestAnalyticsService_Movements_UnpaginatedRead(t *testing.T) {
	svc, saleRepo, expenseRepo := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("FindAllForOwner", ctx, ownerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 0 && f.PageSize == 0
	})).Return([]finance.Sale{}, nil)
	expenseRepo.On("FindByStatusForOwner", ctx, ownerID, finance.ExpenseStatusPaid).Return([]finance.Expense{}, nil)

	movements, err := svc.Movements(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, movements)
	saleRepo.AssertExpectations(t)
}

// ============================================
// Balance Tests
// ============================================

func TestAnalyticsService_Balance(t *testing.T) {
	svc, saleRepo, expenseRepo := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumAmountForOwner", ctx, ownerID).Return(decimal.NewFromInt(1000), nil)
	expenseRepo.On("SumAmountByStatus", ctx, ownerID, finance.ExpenseStatusPaid).Return(decimal.NewFromInt(300), nil)
	expenseRepo.On("SumAmountByStatus", ctx, ownerID, finance.ExpenseStatusPending).Return(decimal.NewFromInt(250), nil)

	balance, err := svc.Balance(ctx, ownerID)
	require.NoError(t, err)

	assert.True(t, balance.RealBalance.Equal(decimal.NewFromInt(700)))
	assert.True(t, balance.ProjectedBalance.Equal(decimal.NewFromInt(450)))
}

func TestAnalyticsService_Balance_Negative(t *testing.T) {
	svc, saleRepo, expenseRepo := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumAmountForOwner", ctx, ownerID).Return(decimal.NewFromInt(100), nil)
	expenseRepo.On("SumAmountByStatus", ctx, ownerID, finance.ExpenseStatusPaid).Return(decimal.NewFromInt(300), nil)
	expenseRepo.On("SumAmountByStatus", ctx, ownerID, finance.ExpenseStatusPending).Return(decimal.NewFromInt(50), nil)

	balance, err := svc.Balance(ctx, ownerID)
	require.NoError(t, err)

	// balances are reported as-is, never clamped
	assert.True(t, balance.RealBalance.Equal(decimal.NewFromInt(-200)))
	assert.True(t, balance.ProjectedBalance.Equal(decimal.NewFromInt(-250)))
}

// ============================================
// GoalSummary Tests
// ============================================

func TestAnalyticsService_GoalSummary(t *testing.T) {
	svc, saleRepo, _ := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumByDateRange", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(150), nil)

	summary, err := svc.GoalSummary(ctx, ownerID, decimal.NewFromInt(2000))
	require.NoError(t, err)

	assert.True(t, summary.Percent.Equal(decimal.NewFromInt(25)), "percent = %s", summary.Percent)
	assert.True(t, summary.Realized.Equal(decimal.NewFromInt(500)))
	// 10% of profit, rounded to cents
	assert.True(t, summary.CashBoxAllocation.Equal(decimal.NewFromInt(15)), "cashbox = %s", summary.CashBoxAllocation)
}

func TestAnalyticsService_GoalSummary_ClampedAtHundred(t *testing.T) {
	svc, saleRepo, _ := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumByDateRange", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(3000), decimal.NewFromInt(900), nil)

	summary, err := svc.GoalSummary(ctx, ownerID, decimal.NewFromInt(2000))
	require.NoError(t, err)
	assert.True(t, summary.Percent.Equal(decimal.NewFromInt(100)), "percent = %s", summary.Percent)
}

func TestAnalyticsService_GoalSummary_ZeroGoal(t *testing.T) {
	svc, saleRepo, _ := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumByDateRange", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(500), decimal.NewFromInt(150), nil)

	// a zero goal never divides; percent reads zero
	summary, err := svc.GoalSummary(ctx, ownerID, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, summary.Percent.IsZero())
}

func TestAnalyticsService_GoalSummary_MonthWindow(t *testing.T) {
	svc, saleRepo, _ := newAnalyticsService()
	ctx := context.Background()
	ownerID := uuid.New()

	saleRepo.On("SumByDateRange", ctx, ownerID, mock.MatchedBy(func(from time.Time) bool {
		now := time.Now()
		return from.Day() == 1 && from.Month() == now.Month() && from.Year() == now.Year() &&
			from.Hour() == 0 && from.Minute() == 0
	}), mock.MatchedBy(func(to time.Time) bool {
		return to.Day() == 1
	})).Return(decimal.Zero, decimal.Zero, nil)

	_, err := svc.GoalSummary(ctx, ownerID, decimal.NewFromInt(100))
	require.NoError(t, err)
	saleRepo.AssertExpectations(t)
}
