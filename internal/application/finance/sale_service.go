package finance

import (
	"context"
	"errors"
	"time"

	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/partner"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaleService manages the cash-in side of the ledger. It also implements
// the order engine's LedgerTransposer: CreateFromOrder is the idempotent
// transposition of a paid order into a derived sale.
type SaleService struct {
	saleRepo   finance.SaleRepository
	orderRepo  trade.OrderRepository
	clientRepo partner.ClientRepository
	logger     *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(saleRepo finance.SaleRepository, orderRepo trade.OrderRepository, clientRepo partner.ClientRepository, logger *zap.Logger) *SaleService {
	return &SaleService{
		saleRepo:   saleRepo,
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create records a manual point-of-sale ledger entry
func (s *SaleService) Create(ctx context.Context, ownerID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, *req.ClientID); err != nil {
			return nil, err
		}
	}

	var saleDate time.Time
	if req.SaleDate != nil {
		saleDate = *req.SaleDate
	}
	sale, err := finance.NewSale(ownerID, req.ClientID, req.Amount, req.Profit, trade.PaymentMethod(req.PaymentMethod), saleDate, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// CreateFromOrder transposes a paid order into its derived ledger entry.
// At most one sale ever exists per order: when the order was already
// transposed the existing sale is returned unchanged.
func (s *SaleService) CreateFromOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.Sale, error) {
	existing, err := s.saleRepo.FindByOrderID(ctx, ownerID, orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	order, err := s.orderRepo.FindByIDForOwner(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}

	sale, err := finance.NewSaleFromOrder(order)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("order transposed to ledger",
		zap.String("order_id", orderID.String()),
		zap.String("sale_id", sale.ID.String()))

	return sale, nil
}

// GetByID retrieves a ledger entry
func (s *SaleService) GetByID(ctx context.Context, ownerID, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves ledger entries with filtering and pagination, newest first
func (s *SaleService) List(ctx context.Context, ownerID uuid.UUID, filter SaleListFilter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "sale_date",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
	if filter.From != nil {
		domainFilter.Filters["start_date"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["end_date"] = *filter.To
	}

	sales, err := s.saleRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleResponses(sales), total, nil
}

// Update edits a ledger entry. Derived entries accept edits too; the link
// back to the order is never touched.
func (s *SaleService) Update(ctx context.Context, ownerID, saleID uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID)
	if err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForOwner(ctx, ownerID, *req.ClientID); err != nil {
			return nil, err
		}
		sale.AssignClient(req.ClientID)
	}

	amount := sale.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	method := trade.PaymentMethod("")
	if req.PaymentMethod != nil {
		method = trade.PaymentMethod(*req.PaymentMethod)
	}
	if err := sale.Update(amount, req.Profit, method, req.SaleDate, req.Description); err != nil {
		return nil, err
	}

	if err := s.saleRepo.Save(ctx, sale); err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// Delete removes a ledger entry. Deleting a derived entry does not reopen
// the order; re-marking the order paid afterwards creates a fresh one.
func (s *SaleService) Delete(ctx context.Context, ownerID, saleID uuid.UUID) error {
	if _, err := s.saleRepo.FindByIDForOwner(ctx, ownerID, saleID); err != nil {
		return err
	}
	return s.saleRepo.DeleteForOwner(ctx, ownerID, saleID)
}
