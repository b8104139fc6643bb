package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByIDForOwner finds an expense within the owner boundary
func (r *GormExpenseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForOwner finds all expenses for an owner with filtering
func (r *GormExpenseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.Expense{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByStatusForOwner finds expenses in a given status
func (r *GormExpenseRepository) FindByStatusForOwner(ctx context.Context, ownerID uuid.UUID, status finance.ExpenseStatus) ([]finance.Expense, error) {
	var expenses []finance.Expense
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Order("issue_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// DeleteForOwner deletes an expense within the owner boundary
func (r *GormExpenseRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts expenses for an owner with optional filters
func (r *GormExpenseRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&finance.Expense{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumAmountByStatus sums expense amounts in a given status
func (r *GormExpenseRepository) SumAmountByStatus(ctx context.Context, ownerID uuid.UUID, status finance.ExpenseStatus) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.Expense{}).
		Where("owner_id = ? AND status = ?", ownerID, status).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// MonthlySummary aggregates expense totals grouped by (month, category).
// The month is extracted from the issue date as YYYY-MM.
func (r *GormExpenseRepository) MonthlySummary(ctx context.Context, ownerID uuid.UUID) ([]finance.MonthlyCategoryTotal, error) {
	var rows []struct {
		Month    string
		Category string
		Total    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.Expense{}).
		Where("owner_id = ?", ownerID).
		Select("to_char(issue_date, 'YYYY-MM') AS month, category, SUM(amount) AS total").
		Group("month, category").
		Order("month DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]finance.MonthlyCategoryTotal, 0, len(rows))
	for _, row := range rows {
		out = append(out, finance.MonthlyCategoryTotal{
			Month:    row.Month,
			Category: finance.ExpenseCategory(row.Category),
			Total:    row.Total,
		})
	}
	return out, nil
}

func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("issue_date DESC")
	}

	return query
}

func (r *GormExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("issue_date < ?", t)
			}
		}
	}

	return query
}
