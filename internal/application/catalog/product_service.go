package catalog

import (
	"context"
	"time"

	"github.com/atelie/backend/internal/domain/catalog"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest is the payload to add a catalog item
type CreateProductRequest struct {
	Name               string           `json:"name" binding:"required"`
	SalePrice          decimal.Decimal  `json:"sale_price" binding:"required"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	StockQuantity      int              `json:"stock_quantity"`
	ProductionTimeDays int              `json:"production_time_days"`
}

// UpdateProductRequest is the payload to update a catalog item
type UpdateProductRequest struct {
	Name               *string          `json:"name"`
	SalePrice          *decimal.Decimal `json:"sale_price"`
	CostPrice          *decimal.Decimal `json:"cost_price"`
	StockQuantity      *int             `json:"stock_quantity"`
	ProductionTimeDays *int             `json:"production_time_days"`
}

// ProductListFilter carries list/pagination parameters for products
type ProductListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ProductResponse is the API representation of a catalog item
type ProductResponse struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	SalePrice          decimal.Decimal  `json:"sale_price"`
	CostPrice          *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity      int              `json:"stock_quantity"`
	ProductionTimeDays int              `json:"production_time_days"`
	Active             bool             `json:"active"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ToProductResponse maps a domain product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 product.ID,
		Name:               product.Name,
		SalePrice:          product.SalePrice,
		CostPrice:          product.CostPrice,
		StockQuantity:      product.StockQuantity,
		ProductionTimeDays: product.ProductionTimeDays,
		Active:             product.Active,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
}

// ToProductResponses maps a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}

// ProductService manages the producer's catalog
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create adds a product to the producer's catalog
func (s *ProductService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(ownerID, req.Name, req.SalePrice, req.CostPrice, req.StockQuantity, req.ProductionTimeDays)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product
func (s *ProductService) GetByID(ctx context.Context, ownerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with search and pagination
func (s *ProductService) List(ctx context.Context, ownerID uuid.UUID, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	products, err := s.productRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update changes a product's catalog values. Existing order snapshots keep
// the prices they were created with.
func (s *ProductService) Update(ctx context.Context, ownerID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.SalePrice, req.CostPrice, req.StockQuantity, req.ProductionTimeDays); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Deactivate soft-deletes a product so it cannot enter new orders
func (s *ProductService) Deactivate(ctx context.Context, ownerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	product.Deactivate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Activate re-enables a product for new orders
func (s *ProductService) Activate(ctx context.Context, ownerID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForOwner(ctx, ownerID, productID)
	if err != nil {
		return nil, err
	}

	product.Activate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
