package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
	"github.com/aleramosAR/Autenticacion-1/internal/core/ports"
)

// ProductService owns catalog mutations. The repository is the source of
// truth; after every successful write the matching mutation signal goes out
// so connected clients get a fresh broadcast.
type ProductService struct {
	repo    ports.ProductRepository
	signals ports.SignalPublisher
	logger  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, signals ports.SignalPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, signals: signals, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Price: input.Price,
		Photo: input.Photo,
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info().Str("product_id", product.ID).Str("nombre", product.Name).Msg("product created")
	s.signal(ctx, domain.ProductCreated)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Photo = input.Photo
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.signal(ctx, domain.ProductUpdated)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.signal(ctx, domain.ProductDeleted)
	return nil
}

// signal never fails the mutation: a lost signal costs one broadcast cycle,
// the next mutation re-syncs everyone.
func (s *ProductService) signal(ctx context.Context, kind domain.MutationKind) {
	if err := s.signals.Publish(ctx, kind); err != nil {
		s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("mutation signal not published")
	}
}

