package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseCategory_IsValid(t *testing.T) {
	tests := []struct {
		category ExpenseCategory
		isValid  bool
	}{
		{ExpenseCategoryIngredients, true},
		{ExpenseCategoryPackaging, true},
		{ExpenseCategoryEquipment, true},
		{ExpenseCategoryTransport, true},
		{ExpenseCategoryMarketing, true},
		{ExpenseCategoryFees, true},
		{ExpenseCategoryOther, true},
		{ExpenseCategory("rent"), false},
		{ExpenseCategory(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.category.IsValid())
		})
	}
}

func TestNewExpense(t *testing.T) {
	ownerID := uuid.New()
	issueDate := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	dueDate := issueDate.AddDate(0, 0, 30)

	expense, err := NewExpense(ownerID, decimal.NewFromInt(80), ExpenseCategoryIngredients, "Farinha e açúcar", issueDate, &dueDate)
	require.NoError(t, err)

	assert.Equal(t, ownerID, expense.OwnerID)
	assert.Equal(t, ExpenseStatusPending, expense.Status)
	assert.Equal(t, issueDate, expense.IssueDate)
	assert.Equal(t, &dueDate, expense.DueDate)
	assert.Nil(t, expense.PaidAt)
	assert.False(t, expense.IsPaid())
}

func TestNewExpense_DefaultsIssueDate(t *testing.T) {
	before := time.Now()
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(10), ExpenseCategoryOther, "", time.Time{}, nil)
	require.NoError(t, err)
	assert.False(t, expense.IssueDate.Before(before))
}

func TestNewExpense_Validation(t *testing.T) {
	_, err := NewExpense(uuid.New(), decimal.Zero, ExpenseCategoryOther, "", time.Now(), nil)
	assert.Error(t, err)

	_, err = NewExpense(uuid.New(), decimal.NewFromInt(-5), ExpenseCategoryOther, "", time.Now(), nil)
	assert.Error(t, err)

	_, err = NewExpense(uuid.New(), decimal.NewFromInt(10), ExpenseCategory("rent"), "", time.Now(), nil)
	assert.Error(t, err)
}

func TestExpense_Pay(t *testing.T) {
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(50), ExpenseCategoryFees, "", time.Now(), nil)
	require.NoError(t, err)

	require.NoError(t, expense.Pay())
	assert.True(t, expense.IsPaid())
	require.NotNil(t, expense.PaidAt)

	// paying twice is an error, not a no-op
	assert.Error(t, expense.Pay())
}

func TestExpense_Update(t *testing.T) {
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(50), ExpenseCategoryFees, "old", time.Now(), nil)
	require.NoError(t, err)

	newDesc := "new"
	newIssue := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	newDue := newIssue.AddDate(0, 1, 0)

	err = expense.Update(decimal.NewFromInt(75), ExpenseCategoryTransport, &newDesc, &newIssue, &newDue)
	require.NoError(t, err)

	assert.True(t, expense.Amount.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, ExpenseCategoryTransport, expense.Category)
	assert.Equal(t, "new", expense.Description)
	assert.Equal(t, newIssue, expense.IssueDate)
	assert.Equal(t, &newDue, expense.DueDate)
}

func TestExpense_Update_EmptyCategoryKept(t *testing.T) {
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(50), ExpenseCategoryFees, "", time.Now(), nil)
	require.NoError(t, err)

	require.NoError(t, expense.Update(decimal.NewFromInt(60), "", nil, nil, nil))
	assert.Equal(t, ExpenseCategoryFees, expense.Category)
}

func TestExpense_Update_PaidExpenseStillEditable(t *testing.T) {
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(50), ExpenseCategoryFees, "", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, expense.Pay())

	// amount corrections remain possible after settlement
	assert.NoError(t, expense.Update(decimal.NewFromInt(55), "", nil, nil, nil))
	assert.True(t, expense.IsPaid())
}

func TestExpense_Update_Validation(t *testing.T) {
	expense, err := NewExpense(uuid.New(), decimal.NewFromInt(50), ExpenseCategoryFees, "", time.Now(), nil)
	require.NoError(t, err)

	assert.Error(t, expense.Update(decimal.Zero, "", nil, nil, nil))
	assert.Error(t, expense.Update(decimal.NewFromInt(10), ExpenseCategory("rent"), nil, nil, nil))
}
