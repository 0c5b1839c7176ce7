package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	catalog "github.com/MoolaPravalesh19/PrintDukan/internal/catalog/repository"
	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
	"github.com/MoolaPravalesh19/PrintDukan/internal/orders/publisher"
	"github.com/MoolaPravalesh19/PrintDukan/internal/orders/repository"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to order")
	ErrInvalidCustomer = errors.New("customer name, email, phone and shipping address are required")
)

const defaultCurrency = "INR"

// CartReader is the slice of the cart service the assembler needs.
type CartReader interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	ClearCart(ctx context.Context, cartID string) error
}

// PriceResolver resolves a product's current sale price.
// A missing product returns catalog.ErrProductNotFound, never panics.
type PriceResolver interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type OrderService struct {
	cart    CartReader
	catalog PriceResolver
	repo    repository.OrderRepository
	events  publisher.OrderPublisher

	newID func() string
	now   func() time.Time
}

func NewOrderService(cart CartReader, cat PriceResolver, repo repository.OrderRepository, events publisher.OrderPublisher) *OrderService {
	return &OrderService{
		cart:    cart,
		catalog: cat,
		repo:    repo,
		events:  events,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// CreateOrder turns the current cart snapshot into an immutable priced
// order, appends it to the order log and clears the cart.
//
// The append and the clear are separate stores: if the clear fails after
// the append succeeded, the order stands and the stale cart is logged.
// The cart's TTL index bounds how long the divergence can live.
func (s *OrderService) CreateOrder(ctx context.Context, cartID string, customer domain.CustomerInfo) (*domain.Order, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	cart, err := s.cart.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	snapshot := cart.Clone()
	total, err := s.priceSnapshot(ctx, snapshot.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              s.newID(),
		CartID:          cartID,
		CustomerName:    customer.CustomerName,
		CustomerEmail:   customer.CustomerEmail,
		CustomerPhone:   customer.CustomerPhone,
		ShippingAddress: customer.ShippingAddress,
		Items:           snapshot.Items,
		TotalAmount:     total,
		Currency:        defaultCurrency,
		CreatedAt:       s.now(),
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to append order: %w", err)
	}

	if s.events != nil {
		if errPublish := s.events.PublishOrderCreated(ctx, order); errPublish != nil {
			log.Printf("failed to publish order-created for %s: %v \n", order.ID, errPublish)
		}
	}

	if errClear := s.cart.ClearCart(ctx, cartID); errClear != nil {
		log.Printf("order %s created but cart %s not cleared: %v \n", order.ID, cartID, errClear)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

// priceSnapshot sums sale price x quantity over the snapshot. A line
// whose product the catalog no longer resolves contributes zero; any
// other catalog failure fails the whole order.
func (s *OrderService) priceSnapshot(ctx context.Context, items []domain.CartItem) (float64, error) {
	var total float64
	for _, item := range items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				log.Printf("product %s no longer in catalog, pricing line at zero \n", item.ProductID)
				continue
			}
			return 0, fmt.Errorf("failed to resolve product %s: %w", item.ProductID, err)
		}
		total += product.SalePrice * float64(item.Quantity)
	}
	return total, nil
}

func validateCustomer(c domain.CustomerInfo) error {
	if strings.TrimSpace(c.CustomerName) == "" ||
		strings.TrimSpace(c.CustomerEmail) == "" ||
		strings.TrimSpace(c.CustomerPhone) == "" ||
		strings.TrimSpace(c.ShippingAddress) == "" {
		return ErrInvalidCustomer
	}
	return nil
}
