package market

import (
	"context"
	"testing"

	"github.com/chicktrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductStore) List(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.([]domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderStore struct{ mock.Mock }

func (m *mockOrderStore) Put(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderStore) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if o := args.Get(0); o != nil {
		return o.(*domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]domain.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderStore) Update(ctx context.Context, orderID string, updates map[string]interface{}) error {
	return m.Called(ctx, orderID, updates).Error(0)
}

func TestCreateOrder_SnapshotsUnitPrice(t *testing.T) {
	products := new(mockProductStore)
	products.On("Get", mock.Anything, "p1").
		Return(&domain.Product{ProductID: "p1", Price: 450}, nil)

	orders := new(mockOrderStore)
	var stored *domain.Order
	orders.On("Put", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Order) }).
		Return(nil)

	svc := NewService(products, orders)
	o, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{
		ProductID: "p1", Quantity: 3,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 450.0, o.UnitPrice)
	assert.Equal(t, 3, o.Quantity)
	assert.Equal(t, "pending", o.Status)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	products := new(mockProductStore)
	products.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(products, new(mockOrderStore))
	_, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_QuantityFloorsAtOne(t *testing.T) {
	products := new(mockProductStore)
	products.On("Get", mock.Anything, mock.Anything).
		Return(&domain.Product{ProductID: "p1", Price: 100}, nil)
	orders := new(mockOrderStore)
	orders.On("Put", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(products, orders)
	o, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{ProductID: "p1", Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, o.Quantity)
}

func TestCreateProduct_Defaults(t *testing.T) {
	products := new(mockProductStore)
	products.On("Put", mock.Anything, mock.Anything).Return(nil)

	price := 250.0
	svc := NewService(products, new(mockOrderStore))
	p, err := svc.CreateProduct(context.Background(), "u1", domain.CreateProductRequest{
		Name: "Layers mash", Price: &price,
	})
	require.NoError(t, err)
	assert.True(t, p.InStock)
	assert.Equal(t, 250.0, p.Price)
	require.NotNil(t, p.UserID)
	assert.Equal(t, "u1", *p.UserID)
}

func TestUpdateOrder_StatusOnly(t *testing.T) {
	orders := new(mockOrderStore)
	orders.On("Get", mock.Anything, "o1").Return(&domain.Order{OrderID: "o1"}, nil)
	orders.On("Update", mock.Anything, "o1", map[string]interface{}{
		"status": "completed",
	}).Return(nil)

	svc := NewService(new(mockProductStore), orders)
	status := "completed"
	_, err := svc.UpdateOrder(context.Background(), "o1", domain.UpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	orders.AssertExpectations(t)
}
