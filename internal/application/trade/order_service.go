package trade

import (
	"context"

	"github.com/atelie/backend/internal/domain/catalog"
	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/partner"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerTransposer turns a paid order into exactly one ledger entry.
// Implemented by the finance sale service; the indirection keeps the
// order engine testable without the ledger.
type LedgerTransposer interface {
	CreateFromOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.Sale, error)
}

// OrderService is the order engine: it validates ownership of the client
// and products, takes the immutable price snapshot per line, computes the
// totals and governs the delivery status state machine.
type OrderService struct {
	orderRepo   trade.OrderRepository
	clientRepo  partner.ClientRepository
	productRepo catalog.ProductRepository
	transposer  LedgerTransposer
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, clientRepo partner.ClientRepository, productRepo catalog.ProductRepository, transposer LedgerTransposer, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		transposer:  transposer,
		logger:      logger,
	}
}

// snapshotItems resolves each requested line against the owner's catalog
// and freezes the current sale/cost prices into item snapshots.
func (s *OrderService) snapshotItems(ctx context.Context, ownerID, orderID uuid.UUID, reqs []OrderItemRequest) ([]trade.OrderItem, error) {
	items := make([]trade.OrderItem, 0, len(reqs))
	for _, req := range reqs {
		product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, req.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Active {
			return nil, shared.NewValidationError("Product is inactive and cannot be ordered")
		}

		item, err := trade.NewOrderItem(orderID, product.ID, req.Quantity, product.SalePrice, product.UnitCost())
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Create creates a new order as an atomic snapshot of the current catalog
// pricing. The order and its items are persisted all-or-nothing.
func (s *OrderService) Create(ctx context.Context, ownerID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	// Ownership of the client is reported as not-found on mismatch so
	// foreign resources cannot be probed.
	if _, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, req.ClientID); err != nil {
		return nil, err
	}

	order, err := trade.NewOrder(ownerID, req.ClientID, trade.DeliveryType(req.DeliveryType))
	if err != nil {
		return nil, err
	}

	items, err := s.snapshotItems(ctx, ownerID, order.ID, req.Items)
	if err != nil {
		return nil, err
	}
	if err := order.ReplaceItems(items); err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	}
	discount := decimal.Zero
	if req.Discount != nil {
		discount = *req.Discount
	}
	if err := order.ApplyCharges(fee, discount); err != nil {
		return nil, err
	}

	if req.PaymentMethod != nil {
		if err := order.SetPaymentMethod(trade.PaymentMethod(*req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.DeliveryDate != nil {
		order.SetDeliveryDate(req.DeliveryDate)
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with its items
func (s *OrderService) GetByID(ctx context.Context, ownerID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetItems retrieves the snapshot items of an order
func (s *OrderService) GetItems(ctx context.Context, ownerID, orderID uuid.UUID) ([]OrderItemResponse, error) {
	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, ToOrderItemResponse(&order.Items[i]))
	}
	return items, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, ownerID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}
	if filter.ClientID != nil {
		domainFilter.Filters["client_id"] = *filter.ClientID
	}

	orders, err := s.orderRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// Update partially updates an order. When new items are supplied the full
// item set is re-validated, re-snapshotted and atomically replaced.
func (s *OrderService) Update(ctx context.Context, ownerID, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanModify() {
		return nil, shared.NewValidationError("Delivered and canceled orders are immutable")
	}

	if req.Items != nil {
		items, err := s.snapshotItems(ctx, ownerID, order.ID, req.Items)
		if err != nil {
			return nil, err
		}
		if err := order.ReplaceItems(items); err != nil {
			return nil, err
		}
	}

	fee := order.DeliveryFee
	if req.DeliveryFee != nil {
		fee = *req.DeliveryFee
	}
	discount := order.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}
	if err := order.ApplyCharges(fee, discount); err != nil {
		return nil, err
	}

	if req.DeliveryType != nil {
		dt := trade.DeliveryType(*req.DeliveryType)
		if !dt.IsValid() {
			return nil, shared.NewValidationError("Invalid delivery type")
		}
		order.DeliveryType = dt
	}
	if req.PaymentMethod != nil {
		if err := order.SetPaymentMethod(trade.PaymentMethod(*req.PaymentMethod)); err != nil {
			return nil, err
		}
	}
	if req.DeliveryDate != nil {
		order.SetDeliveryDate(req.DeliveryDate)
	}
	if req.Notes != nil {
		order.SetNotes(*req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus advances the delivery status state machine
func (s *OrderService) UpdateStatus(ctx context.Context, ownerID, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.ChangeStatus(trade.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdatePaymentStatus persists the new payment status and, on a transition
// to paid, attempts the ledger transposition. The transposition is
// fire-and-forget: its failure is logged and the payment status update is
// still returned as successful.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, ownerID, orderID uuid.UUID, req UpdatePaymentStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	target := trade.PaymentStatus(req.PaymentStatus)
	if err := order.ChangePaymentStatus(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	if target == trade.PaymentStatusPaid && s.transposer != nil {
		if _, err := s.transposer.CreateFromOrder(ctx, ownerID, orderID); err != nil {
			s.logger.Warn("ledger transposition failed",
				zap.String("order_id", orderID.String()),
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete deletes an order and its items atomically
func (s *OrderService) Delete(ctx context.Context, ownerID, orderID uuid.UUID) error {
	if _, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID); err != nil {
		return err
	}
	return s.orderRepo.DeleteForOwner(ctx, ownerID, orderID)
}
