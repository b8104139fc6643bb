package finance

import (
	"fmt"
	"time"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultProfitMarginRate is the margin assumed for quick point-of-sale
// entries when no profit is informed. Fixed business constant, no
// configuration surface.
var DefaultProfitMarginRate = decimal.NewFromFloat(0.30)

// Sale is a cash-in ledger entry (entrada). A sale with a non-nil OrderID
// was derived from a paid order by the ledger transposition; a sale with a
// nil OrderID is a manual point-of-sale entry and may be freely edited.
type Sale struct {
	shared.OwnedAggregateRoot
	ClientID      *uuid.UUID
	OrderID       *uuid.UUID
	Amount        decimal.Decimal
	Profit        decimal.Decimal
	PaymentMethod trade.PaymentMethod
	SaleDate      time.Time
	Description   string
}

// NewSale creates a manual ledger entry. A nil profit derives the default
// margin from the amount; an explicit zero is honored as zero.
func NewSale(ownerID uuid.UUID, clientID *uuid.UUID, amount decimal.Decimal, profit *decimal.Decimal, method trade.PaymentMethod, saleDate time.Time, description string) (*Sale, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("Sale amount must be positive")
	}
	if method == "" {
		method = trade.DefaultPaymentMethod
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("Invalid payment method")
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	saleProfit := amount.Mul(DefaultProfitMarginRate)
	if profit != nil {
		if profit.IsNegative() {
			return nil, shared.NewValidationError("Sale profit cannot be negative")
		}
		saleProfit = *profit
	}

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ClientID:           clientID,
		OrderID:            nil,
		Amount:             amount,
		Profit:             saleProfit,
		PaymentMethod:      method,
		SaleDate:           saleDate,
		Description:        description,
	}, nil
}

// NewSaleFromOrder transposes a paid order into a derived ledger entry.
// The sale date is the transposition time, not the order creation time.
func NewSaleFromOrder(order *trade.Order) (*Sale, error) {
	if order == nil {
		return nil, shared.NewValidationError("Order cannot be nil")
	}

	method := order.PaymentMethod
	if method == "" {
		method = trade.DefaultPaymentMethod
	}

	orderID := order.ID
	clientID := order.ClientID

	return &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(order.OwnerID),
		ClientID:           &clientID,
		OrderID:            &orderID,
		Amount:             order.Total,
		Profit:             order.TotalProfit,
		PaymentMethod:      method,
		SaleDate:           time.Now(),
		Description:        fmt.Sprintf("Encomenda %s", orderID),
	}, nil
}

// IsDerived returns true when the sale was transposed from an order
func (s *Sale) IsDerived() bool {
	return s.OrderID != nil
}

// Update changes the editable fields of the entry
func (s *Sale) Update(amount decimal.Decimal, profit *decimal.Decimal, method trade.PaymentMethod, saleDate *time.Time, description *string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("Sale amount must be positive")
	}
	if method != "" {
		if !method.IsValid() {
			return shared.NewValidationError("Invalid payment method")
		}
		s.PaymentMethod = method
	}
	if profit != nil {
		if profit.IsNegative() {
			return shared.NewValidationError("Sale profit cannot be negative")
		}
		s.Profit = *profit
	}
	if saleDate != nil {
		s.SaleDate = *saleDate
	}
	if description != nil {
		s.Description = *description
	}

	s.Amount = amount
	s.Touch()

	return nil
}

// AssignClient points the entry at a different client (already validated
// against the owner by the caller)
func (s *Sale) AssignClient(clientID *uuid.UUID) {
	s.ClientID = clientID
	s.Touch()
}
