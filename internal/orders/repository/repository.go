package repository

import (
	"context"
	"errors"

	"github.com/MoolaPravalesh19/PrintDukan/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// OrderRepository is the append-only order log. Orders are never
// updated or deleted once written.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	RunMigrations(*Credentials) error
	Close() error
}
