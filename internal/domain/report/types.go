package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashBoxAllocationRate is the fixed share of realized profit set aside in
// the producer's cash box. Business constant, no configuration surface.
var CashBoxAllocationRate = decimal.NewFromFloat(0.10)

// MovementDirection tags a movement as cash-in or cash-out
type MovementDirection string

const (
	MovementIn  MovementDirection = "in"
	MovementOut MovementDirection = "out"
)

// Movement is a read-only projection of a sale or a paid expense for the
// unified statement view. It is never persisted. The ID prefixes the origin
// row id with the source kind so in and out entries never collide.
type Movement struct {
	ID          string            `json:"id"`
	Direction   MovementDirection `json:"direction"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Date        time.Time         `json:"date"`
	OriginID    uuid.UUID         `json:"origin_id"`
}

// Balance is the derived cash position of a producer. Values may be
// negative; no clamping is applied.
type Balance struct {
	TotalSales       decimal.Decimal `json:"total_sales"`
	PaidExpenses     decimal.Decimal `json:"paid_expenses"`
	PendingExpenses  decimal.Decimal `json:"pending_expenses"`
	RealBalance      decimal.Decimal `json:"real_balance"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
}

// GoalSummary compares the current calendar month's realized sales with a
// revenue goal.
type GoalSummary struct {
	Goal              decimal.Decimal `json:"goal"`
	Realized          decimal.Decimal `json:"realized"`
	RealizedProfit    decimal.Decimal `json:"realized_profit"`
	Percent           decimal.Decimal `json:"percent"`
	CashBoxAllocation decimal.Decimal `json:"cash_box_allocation"`
}
