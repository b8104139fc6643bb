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

// GormSaleRepository implements finance.SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForOwner finds a sale within the owner boundary
func (r *GormSaleRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*finance.Sale, error) {
	var sale finance.Sale
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByOrderID finds the sale derived from an order, if any
func (r *GormSaleRepository) FindByOrderID(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.Sale, error) {
	var sale finance.Sale
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND order_id = ?", ownerID, orderID).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForOwner finds all sales for an owner with filtering
func (r *GormSaleRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]finance.Sale, error) {
	var sales []finance.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.Sale{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Save creates or updates a sale
func (r *GormSaleRepository) Save(ctx context.Context, sale *finance.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

// DeleteForOwner deletes a sale within the owner boundary
func (r *GormSaleRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Sale{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts sales for an owner with optional filters
func (r *GormSaleRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&finance.Sale{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumAmountForOwner sums sale amounts across the whole ledger
func (r *GormSaleRepository) SumAmountForOwner(ctx context.Context, ownerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&finance.Sale{}).
		Where("owner_id = ?", ownerID).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumByDateRange sums amount and profit over [from, to)
func (r *GormSaleRepository) SumByDateRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Amount decimal.NullDecimal
		Profit decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.Sale{}).
		Where("owner_id = ? AND sale_date >= ? AND sale_date < ?", ownerID, from, to).
		Select("SUM(amount) AS amount, SUM(profit) AS profit").
		Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	amount, profit := decimal.Zero, decimal.Zero
	if row.Amount.Valid {
		amount = row.Amount.Decimal
	}
	if row.Profit.Valid {
		profit = row.Profit.Decimal
	}
	return amount, profit, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("sale_date DESC")
	}

	return query
}

func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date < ?", t)
			}
		}
	}

	return query
}
