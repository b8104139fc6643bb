package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/atelie/backend/internal/domain/catalog"
	"github.com/atelie/backend/internal/domain/finance"
	"github.com/atelie/backend/internal/domain/partner"
	"github.com/atelie/backend/internal/domain/shared"
	"github.com/atelie/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockClientRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerTransposer is a mock implementation of LedgerTransposer
type MockLedgerTransposer struct {
	mock.Mock
}

func (m *MockLedgerTransposer) CreateFromOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*finance.Sale, error) {
	args := m.Called(ctx, ownerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Sale), args.Error(1)
}

type orderServiceMocks struct {
	orderRepo   *MockOrderRepository
	clientRepo  *MockClientRepository
	productRepo *MockProductRepository
	transposer  *MockLedgerTransposer
}

func newOrderService() (*OrderService, *orderServiceMocks) {
	m := &orderServiceMocks{
		orderRepo:   new(MockOrderRepository),
		clientRepo:  new(MockClientRepository),
		productRepo: new(MockProductRepository),
		transposer:  new(MockLedgerTransposer),
	}
	svc := NewOrderService(m.orderRepo, m.clientRepo, m.productRepo, m.transposer, zap.NewNop())
	return svc, m
}

func testClient(t *testing.T, ownerID uuid.UUID) *partner.Client {
	client, err := partner.NewClient(ownerID, "Maria", "11987654321", "", "")
	require.NoError(t, err)
	return client
}

func testProduct(t *testing.T, ownerID uuid.UUID, salePrice, costPrice int64) *catalog.Product {
	cost := decimal.NewFromInt(costPrice)
	product, err := catalog.NewProduct(ownerID, "Bolo", decimal.NewFromInt(salePrice), &cost, 10, 1)
	require.NoError(t, err)
	return product
}

func testOrder(t *testing.T, ownerID uuid.UUID) *trade.Order {
	order, err := trade.NewOrder(ownerID, uuid.New(), trade.DeliveryTypePickup)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), 2, decimal.NewFromInt(100), decimal.NewFromInt(40))
	require.NoError(t, err)
	return order
}

func TestOrderService_Create(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	client := testClient(t, ownerID)
	product := testProduct(t, ownerID, 100, 40)

	m.clientRepo.On("FindByIDForOwner", ctx, ownerID, client.ID).Return(client, nil)
	m.productRepo.On("FindByIDForOwner", ctx, ownerID, product.ID).Return(product, nil)
	m.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)

	fee := decimal.NewFromInt(10)
	discount := decimal.NewFromInt(20)
	resp, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		ClientID:     client.ID,
		DeliveryType: "delivery",
		DeliveryFee:  &fee,
		Discount:     &discount,
		Items: []OrderItemRequest{
			{ProductID: product.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)

	// 2 x 100 + fee 10 - discount 20
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(190)), "total = %s", resp.Total)
	assert.Equal(t, string(trade.OrderStatusPending), resp.Status)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitSalePrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.Items[0].UnitCostPrice.Equal(decimal.NewFromInt(40)))
	m.orderRepo.AssertExpectations(t)
}

func TestOrderService_Create_ForeignClient(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()
	clientID := uuid.New()

	// a client owned by someone else surfaces as not found
	m.clientRepo.On("FindByIDForOwner", ctx, ownerID, clientID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		ClientID:     clientID,
		DeliveryType: "pickup",
		Items:        []OrderItemRequest{{ProductID: uuid.New(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	m.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Create_InactiveProduct(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	client := testClient(t, ownerID)
	product := testProduct(t, ownerID, 100, 40)
	product.Deactivate()

	m.clientRepo.On("FindByIDForOwner", ctx, ownerID, client.ID).Return(client, nil)
	m.productRepo.On("FindByIDForOwner", ctx, ownerID, product.ID).Return(product, nil)

	_, err := svc.Create(ctx, ownerID, CreateOrderRequest{
		ClientID:     client.ID,
		DeliveryType: "pickup",
		Items:        []OrderItemRequest{{ProductID: product.ID, Quantity: 1}},
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	m.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_UpdatePaymentStatus_PaidTriggersTransposition(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)
	sale, err := finance.NewSaleFromOrder(order)
	require.NoError(t, err)

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)
	m.orderRepo.On("Save", ctx, order).Return(nil)
	m.transposer.On("CreateFromOrder", ctx, ownerID, order.ID).Return(sale, nil)

	resp, err := svc.UpdatePaymentStatus(ctx, ownerID, order.ID, UpdatePaymentStatusRequest{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	m.transposer.AssertExpectations(t)
}

func TestOrderService_UpdatePaymentStatus_TranspositionFailureIsSwallowed(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)
	m.orderRepo.On("Save", ctx, order).Return(nil)
	m.transposer.On("CreateFromOrder", ctx, ownerID, order.ID).Return(nil, errors.New("ledger unavailable"))

	// the payment status update still succeeds
	resp, err := svc.UpdatePaymentStatus(ctx, ownerID, order.ID, UpdatePaymentStatusRequest{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
}

func TestOrderService_UpdatePaymentStatus_NonPaidSkipsTransposition(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)
	m.orderRepo.On("Save", ctx, order).Return(nil)

	_, err := svc.UpdatePaymentStatus(ctx, ownerID, order.ID, UpdatePaymentStatusRequest{PaymentStatus: "partial"})
	require.NoError(t, err)
	m.transposer.AssertNotCalled(t, "CreateFromOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_InvalidTransition(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)
	require.NoError(t, order.ChangeStatus(trade.OrderStatusDelivered))

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)

	_, err := svc.UpdateStatus(ctx, ownerID, order.ID, UpdateOrderStatusRequest{Status: "canceled"})
	require.Error(t, err)
	m.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Update_TerminalOrder(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)
	require.NoError(t, order.ChangeStatus(trade.OrderStatusCanceled))

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)

	notes := "late change"
	_, err := svc.Update(ctx, ownerID, order.ID, UpdateOrderRequest{Notes: &notes})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestOrderService_Update_ReplacesItemsWithFreshSnapshot(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)
	product := testProduct(t, ownerID, 55, 25)

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)
	m.productRepo.On("FindByIDForOwner", ctx, ownerID, product.ID).Return(product, nil)
	m.orderRepo.On("Save", ctx, order).Return(nil)

	resp, err := svc.Update(ctx, ownerID, order.ID, UpdateOrderRequest{
		Items: []OrderItemRequest{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitSalePrice.Equal(decimal.NewFromInt(55)))
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(165)))
}

func TestOrderService_GetByID_NotFound(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, orderID).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(ctx, ownerID, orderID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_Delete(t *testing.T) {
	svc, m := newOrderService()
	ctx := context.Background()
	ownerID := uuid.New()

	order := testOrder(t, ownerID)

	m.orderRepo.On("FindByIDForOwner", ctx, ownerID, order.ID).Return(order, nil)
	m.orderRepo.On("DeleteForOwner", ctx, ownerID, order.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, ownerID, order.ID))
	m.orderRepo.AssertExpectations(t)
}
