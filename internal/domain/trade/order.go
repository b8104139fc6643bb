package trade

import (
	"fmt"
	"time"

	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the delivery status of an order (encomenda)
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusReady        OrderStatus = "ready"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCanceled     OrderStatus = "canceled"
)

// statusRank orders the happy-path statuses so transitions stay monotonic
var statusRank = map[OrderStatus]int{
	OrderStatusPending:      0,
	OrderStatusInProduction: 1,
	OrderStatusReady:        2,
	OrderStatusDelivered:    3,
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProduction, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for delivered and canceled, which admit no
// further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// The happy path pending -> in_production -> ready -> delivered only moves
// forward; cancel is reachable from any non-terminal status.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCanceled {
		return true
	}
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	return to > from
}

// PaymentStatus represents how much of the order has been paid
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusPartial:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod represents how a payment was (or will be) made
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodTransfer   PaymentMethod = "transfer"
)

// DefaultPaymentMethod is assumed when no method is supplied
const DefaultPaymentMethod = PaymentMethodCash

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodCreditCard,
		PaymentMethodDebitCard, PaymentMethodTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// DeliveryType represents how the order reaches the client
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// IsValid checks if the type is a valid DeliveryType
func (d DeliveryType) IsValid() bool {
	return d == DeliveryTypePickup || d == DeliveryTypeDelivery
}

// OrderItem is an immutable price snapshot of one product line.
// Unit prices are copied from the product at order time so later product
// edits never retroactively alter an existing order.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	UnitSalePrice decimal.Decimal
	UnitCostPrice decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrderItem creates a new order item snapshot
func NewOrderItem(orderID, productID uuid.UUID, quantity int, unitSalePrice, unitCostPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("Quantity must be positive")
	}
	if unitSalePrice.IsNegative() {
		return nil, shared.NewValidationError("Unit sale price cannot be negative")
	}
	if unitCostPrice.IsNegative() {
		return nil, shared.NewValidationError("Unit cost price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     productID,
		Quantity:      quantity,
		UnitSalePrice: unitSalePrice,
		UnitCostPrice: unitCostPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// LineTotal returns unit sale price times quantity
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitSalePrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineCost returns unit cost price times quantity
func (i *OrderItem) LineCost() decimal.Decimal {
	return i.UnitCostPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a custom order (encomenda) aggregate root.
// It owns its item snapshots and governs the delivery status state machine.
type Order struct {
	shared.OwnedAggregateRoot
	ClientID      uuid.UUID
	Status        OrderStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod
	DeliveryType  DeliveryType
	DeliveryFee   decimal.Decimal
	Discount      decimal.Decimal
	Subtotal      decimal.Decimal
	TotalCost     decimal.Decimal
	Total         decimal.Decimal
	TotalProfit   decimal.Decimal
	DeliveryDate  *time.Time
	Notes         string
	Items         []OrderItem `gorm:"foreignKey:OrderID"`
}

// NewOrder creates a new order in the initial pending/pending state
func NewOrder(ownerID, clientID uuid.UUID, deliveryType DeliveryType) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("Client ID cannot be empty")
	}
	if !deliveryType.IsValid() {
		return nil, shared.NewValidationError("Invalid delivery type")
	}

	return &Order{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ClientID:           clientID,
		Status:             OrderStatusPending,
		PaymentStatus:      PaymentStatusPending,
		PaymentMethod:      DefaultPaymentMethod,
		DeliveryType:       deliveryType,
		DeliveryFee:        decimal.Zero,
		Discount:           decimal.Zero,
		Subtotal:           decimal.Zero,
		TotalCost:          decimal.Zero,
		Total:              decimal.Zero,
		TotalProfit:        decimal.Zero,
		Items:              make([]OrderItem, 0),
	}, nil
}

// AddItem appends a price snapshot line and recalculates the totals
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitSalePrice, unitCostPrice decimal.Decimal) (*OrderItem, error) {
	if !o.CanModify() {
		return nil, shared.NewValidationError("Cannot add items to a delivered or canceled order")
	}

	item, err := NewOrderItem(o.ID, productID, quantity, unitSalePrice, unitCostPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()

	return item, nil
}

// ReplaceItems swaps the entire item set for a new snapshot set.
// Used on update so the items are never left half-patched.
func (o *Order) ReplaceItems(items []OrderItem) error {
	if !o.CanModify() {
		return shared.NewValidationError("Cannot replace items of a delivered or canceled order")
	}
	if len(items) == 0 {
		return shared.NewValidationError("Order must have at least one item")
	}

	for i := range items {
		items[i].OrderID = o.ID
	}
	o.Items = items
	o.recalculateTotals()
	o.Touch()

	return nil
}

// ApplyCharges sets the delivery fee and discount, enforcing that the
// discount never exceeds subtotal plus fee
func (o *Order) ApplyCharges(deliveryFee, discount decimal.Decimal) error {
	if !o.CanModify() {
		return shared.NewValidationError("Cannot change charges of a delivered or canceled order")
	}
	if deliveryFee.IsNegative() {
		return shared.NewValidationError("Delivery fee cannot be negative")
	}
	if discount.IsNegative() {
		return shared.NewValidationError("Discount cannot be negative")
	}
	if discount.GreaterThan(o.Subtotal.Add(deliveryFee)) {
		return shared.NewValidationError("Discount cannot exceed subtotal plus delivery fee")
	}

	o.DeliveryFee = deliveryFee
	o.Discount = discount
	o.recalculateTotals()
	o.Touch()

	return nil
}

// SetPaymentMethod sets how the client intends to pay
func (o *Order) SetPaymentMethod(method PaymentMethod) error {
	if !method.IsValid() {
		return shared.NewValidationError("Invalid payment method")
	}
	o.PaymentMethod = method
	o.Touch()
	return nil
}

// SetDeliveryDate sets the agreed delivery date
func (o *Order) SetDeliveryDate(date *time.Time) {
	o.DeliveryDate = date
	o.Touch()
}

// SetNotes sets free-form notes on the order
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
}

// ChangeStatus advances the status state machine. Transitions out of a
// terminal status are rejected, never silently ignored.
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("Invalid order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewValidationError(fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}

	o.Status = target
	o.Touch()

	return nil
}

// ChangePaymentStatus sets the payment status. Unlike the delivery status,
// every value is reachable at any time: a canceled order can still need
// payment reconciliation.
func (o *Order) ChangePaymentStatus(target PaymentStatus) error {
	if !target.IsValid() {
		return shared.NewValidationError("Invalid payment status")
	}

	o.PaymentStatus = target
	o.Touch()

	return nil
}

// recalculateTotals recomputes the derived amounts from the item snapshots:
//
//	subtotal     = sum(unit_sale_price * quantity)
//	total_cost   = sum(unit_cost_price * quantity)
//	total        = max(subtotal + delivery_fee - discount, 0)
//	total_profit = (subtotal - total_cost) - discount
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	totalCost := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal())
		totalCost = totalCost.Add(item.LineCost())
	}

	o.Subtotal = subtotal
	o.TotalCost = totalCost

	total := subtotal.Add(o.DeliveryFee).Sub(o.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Total = total
	o.TotalProfit = subtotal.Sub(totalCost).Sub(o.Discount)
}

// CanModify returns true while the order is not in a terminal status
func (o *Order) CanModify() bool {
	return !o.Status.IsTerminal()
}

// IsTerminal returns true if the order is delivered or canceled
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// IsPaid returns true if the full amount has been received
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}
