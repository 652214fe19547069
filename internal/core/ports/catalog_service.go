package ports

import (
	"context"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

// ProductInput carries the mutable fields of a catalog entry.
type ProductInput struct {
	Name  string
	Price float64
	Photo string
}

// ProductService owns catalog reads and mutations. Every successful mutation
// publishes the matching mutation signal.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// MessageService owns the message board.
type MessageService interface {
	List(ctx context.Context) ([]domain.Message, error)
	Create(ctx context.Context, email, text string) (*domain.Message, error)
}
