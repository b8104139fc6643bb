package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSaleRepository creates a GormSaleRepository with a mocked SQL connection
func newMockSaleRepository(t *testing.T) (*GormSaleRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleRepository(gormDB), mock, mockDB
}

func TestGormSaleRepository_FindByIDForOwner(t *testing.T) {
	t.Run("finds sale within owner boundary", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "amount", "profit", "payment_method", "sale_date", "description"}).
			AddRow(saleID, ownerID, decimal.NewFromInt(100), decimal.NewFromInt(30), "pix", time.Now(), "venda")

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, saleID, 1).
			WillReturnRows(rows)

		sale, err := repo.FindByIDForOwner(context.Background(), ownerID, saleID)

		assert.NoError(t, err)
		require.NotNil(t, sale)
		assert.Equal(t, saleID, sale.ID)
		assert.Equal(t, ownerID, sale.OwnerID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for foreign sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE owner_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, saleID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sale, err := repo.FindByIDForOwner(context.Background(), ownerID, saleID)

		assert.Nil(t, sale)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_FindByOrderID(t *testing.T) {
	t.Run("finds derived sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()
		orderID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "owner_id", "order_id", "amount", "profit", "payment_method", "sale_date"}).
			AddRow(saleID, ownerID, orderID, decimal.NewFromInt(240), decimal.NewFromInt(120), "cash", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE owner_id = \$1 AND order_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, orderID, 1).
			WillReturnRows(rows)

		sale, err := repo.FindByOrderID(context.Background(), ownerID, orderID)

		assert.NoError(t, err)
		require.NotNil(t, sale)
		require.NotNil(t, sale.OrderID)
		assert.Equal(t, orderID, *sale.OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when order was never transposed", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "sales" WHERE owner_id = \$1 AND order_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(ownerID, orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sale, err := repo.FindByOrderID(context.Background(), ownerID, orderID)

		assert.Nil(t, sale)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_SumAmountForOwner(t *testing.T) {
	t.Run("sums existing ledger", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		rows := sqlmock.NewRows([]string{"sum"}).AddRow(decimal.NewFromInt(1250))
		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "sales" WHERE owner_id = \$1`).
			WithArgs(ownerID).
			WillReturnRows(rows)

		total, err := repo.SumAmountForOwner(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1250)), "total = %s", total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()

		// SUM over no rows is NULL, not zero
		rows := sqlmock.NewRows([]string{"sum"}).AddRow(nil)
		mock.ExpectQuery(`SELECT SUM\(amount\) FROM "sales" WHERE owner_id = \$1`).
			WithArgs(ownerID).
			WillReturnRows(rows)

		total, err := repo.SumAmountForOwner(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_SumByDateRange(t *testing.T) {
	t.Run("sums amount and profit over half-open window", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		rows := sqlmock.NewRows([]string{"amount", "profit"}).
			AddRow(decimal.NewFromInt(500), decimal.NewFromInt(150))

		mock.ExpectQuery(`SELECT SUM\(amount\) AS amount, SUM\(profit\) AS profit FROM "sales" WHERE owner_id = \$1 AND sale_date >= \$2 AND sale_date < \$3`).
			WithArgs(ownerID, from, to).
			WillReturnRows(rows)

		amount, profit, err := repo.SumByDateRange(context.Background(), ownerID, from, to)

		assert.NoError(t, err)
		assert.True(t, amount.Equal(decimal.NewFromInt(500)))
		assert.True(t, profit.Equal(decimal.NewFromInt(150)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window sums to zero", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		ownerID := uuid.New()
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 1, 0)

		rows := sqlmock.NewRows([]string{"amount", "profit"}).AddRow(nil, nil)
		mock.ExpectQuery(`SELECT SUM\(amount\) AS amount, SUM\(profit\) AS profit FROM "sales"`).
			WithArgs(ownerID, from, to).
			WillReturnRows(rows)

		amount, profit, err := repo.SumByDateRange(context.Background(), ownerID, from, to)

		assert.NoError(t, err)
		assert.True(t, amount.IsZero())
		assert.True(t, profit.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleRepository_DeleteForOwner(t *testing.T) {
	t.Run("deletes owned sale", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "sales" WHERE owner_id = \$1 AND id = \$2`).
			WithArgs(ownerID, saleID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteForOwner(context.Background(), ownerID, saleID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockSaleRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		ownerID := uuid.New()

		mock.ExpectExec(`DELETE FROM "sales" WHERE owner_id = \$1 AND id = \$2`).
			WithArgs(ownerID, saleID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForOwner(context.Background(), ownerID, saleID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
