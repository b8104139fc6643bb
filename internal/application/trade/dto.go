package trade

import (
	"time"

	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one product line of an order request
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest is the payload to create an order
type CreateOrderRequest struct {
	ClientID      uuid.UUID          `json:"client_id" binding:"required"`
	DeliveryType  string             `json:"delivery_type" binding:"required,oneof=pickup delivery"`
	DeliveryFee   *decimal.Decimal   `json:"delivery_fee"`
	Discount      *decimal.Decimal   `json:"discount"`
	DeliveryDate  *time.Time         `json:"delivery_date"`
	PaymentMethod *string            `json:"payment_method"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest is the payload to partially update an order.
// A nil Items slice leaves the item set unchanged; a non-nil slice
// replaces it entirely.
type UpdateOrderRequest struct {
	DeliveryType  *string            `json:"delivery_type" binding:"omitempty,oneof=pickup delivery"`
	DeliveryFee   *decimal.Decimal   `json:"delivery_fee"`
	Discount      *decimal.Decimal   `json:"discount"`
	DeliveryDate  *time.Time         `json:"delivery_date"`
	PaymentMethod *string            `json:"payment_method"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
}

// UpdateOrderStatusRequest advances the delivery status state machine
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest sets the payment status
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// OrderListFilter carries list/pagination parameters for orders
type OrderListFilter struct {
	Status        *string `form:"status"`
	PaymentStatus *string `form:"payment_status"`
	ClientID      *string `form:"client_id"`
	Page          int     `form:"page"`
	PageSize      int     `form:"page_size"`
}

// OrderItemResponse is one snapshot line in an order response
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitSalePrice decimal.Decimal `json:"unit_sale_price"`
	UnitCostPrice decimal.Decimal `json:"unit_cost_price"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	ClientID      uuid.UUID           `json:"client_id"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	DeliveryType  string              `json:"delivery_type"`
	DeliveryFee   decimal.Decimal     `json:"delivery_fee"`
	Discount      decimal.Decimal     `json:"discount"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Total         decimal.Decimal     `json:"total"`
	TotalProfit   decimal.Decimal     `json:"total_profit"`
	DeliveryDate  *time.Time          `json:"delivery_date,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// ToOrderItemResponse maps a domain order item to its API representation
func ToOrderItemResponse(item *trade.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		UnitSalePrice: item.UnitSalePrice,
		UnitCostPrice: item.UnitCostPrice,
	}
}

// ToOrderResponse maps a domain order to its API representation
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, ToOrderItemResponse(&order.Items[i]))
	}

	return OrderResponse{
		ID:            order.ID,
		ClientID:      order.ClientID,
		Status:        order.Status.String(),
		PaymentStatus: order.PaymentStatus.String(),
		PaymentMethod: order.PaymentMethod.String(),
		DeliveryType:  string(order.DeliveryType),
		DeliveryFee:   order.DeliveryFee,
		Discount:      order.Discount,
		Subtotal:      order.Subtotal,
		Total:         order.Total,
		TotalProfit:   order.TotalProfit,
		DeliveryDate:  order.DeliveryDate,
		Notes:         order.Notes,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// ToOrderResponses maps a slice of domain orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, ToOrderResponse(&orders[i]))
	}
	return out
}
