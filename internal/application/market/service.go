// Package market manages marketplace products and orders.
package market

import (
	"context"
	"time"

	"github.com/chicktrack-api/internal/domain"
	"github.com/chicktrack-api/internal/pkg/id"
)

const (
	fieldStatus       = "status"
	fieldBuyerContact = "buyer_contact"
)

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

type Service interface {
	CreateProduct(ctx context.Context, userID string, req domain.CreateProductRequest) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, req domain.UpdateOrderRequest) (*domain.Order, error)
}

type service struct {
	products productStore
	orders   orderStore
}

func NewService(products productStore, orders orderStore) Service {
	return &service{products: products, orders: orders}
}

func (s *service) CreateProduct(ctx context.Context, userID string, req domain.CreateProductRequest) (*domain.Product, error) {
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	var price float64
	if req.Price != nil {
		price = *req.Price
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   id.New(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       price,
		Unit:        req.Unit,
		InStock:     inStock,
		Seller:      req.Seller,
		Location:    req.Location,
		Description: req.Description,
		Type:        req.Type,
		Contact:     req.Contact,
		Details:     req.Details,
		Images:      req.Images,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if userID != "" {
		p.UserID = &userID
	}
	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.products.Get(ctx, productID)
}

// CreateOrder snapshots the product's current price as the order unit price.
func (s *service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	p, err := s.products.Get(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	now := time.Now().UTC()
	o := &domain.Order{
		OrderID:      id.New(),
		ProductID:    p.ProductID,
		Quantity:     qty,
		UnitPrice:    p.Price,
		BuyerContact: req.BuyerContact,
		Status:       "pending",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orders.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *service) UpdateOrder(ctx context.Context, orderID string, req domain.UpdateOrderRequest) (*domain.Order, error) {
	updates := map[string]interface{}{}
	if req.Status != nil {
		updates[fieldStatus] = *req.Status
	}
	if req.BuyerContact != nil {
		updates[fieldBuyerContact] = *req.BuyerContact
	}
	if len(updates) == 0 {
		return s.orders.Get(ctx, orderID)
	}
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, orderID, updates); err != nil {
		return nil, err
	}
	return s.orders.Get(ctx, orderID)
}
