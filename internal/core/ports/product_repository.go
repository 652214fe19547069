package ports

import (
	"context"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// ProductRepository gives access to the catalog collection.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// MessageRepository gives access to the message board collection.
type MessageRepository interface {
	List(ctx context.Context) ([]domain.Message, error)
	Insert(ctx context.Context, message *domain.Message) error
}
