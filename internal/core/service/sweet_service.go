package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-system/internal/core/domain"
	"github.com/sweetshop/inventory-system/internal/core/ports"
)

// CatalogCache abstracts the read cache for full catalog listings (Redis).
// A (nil, nil) return from Get means a cache miss.
type CatalogCache interface {
	Get(ctx context.Context) ([]*domain.Sweet, error)
	Set(ctx context.Context, sweets []*domain.Sweet) error
	Invalidate(ctx context.Context) error
}

// SweetService implements catalog use cases. Stock atomicity lives in the
// repository (conditional updates); this layer owns input validation,
// cache maintenance and logging.
type SweetService struct {
	repo   ports.SweetRepository
	cache  CatalogCache
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache CatalogCache, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, logger: logger}
}

// List returns the full catalog in insertion order, serving from the cache
// when a fresh snapshot exists.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
	} else if cached != nil {
		return cached, nil
	}

	sweets, err := s.repo.FindMany(ctx, ports.SearchFilter{})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, sweets); err != nil {
		s.logger.Warn().Err(err).Msg("failed to populate catalog cache")
	}
	return sweets, nil
}

// Search applies the optional filters. An empty filter is equivalent to List.
func (s *SweetService) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Sweet, error) {
	if filter.IsEmpty() {
		return s.List(ctx)
	}
	return s.repo.FindMany(ctx, filter)
}

// Add inserts a new catalog item after validating the catalog invariants.
func (s *SweetService) Add(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if input.Category == "" {
		return nil, fmt.Errorf("%w: category is required", domain.ErrInvalidInput)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	created, err := s.repo.Insert(ctx, &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet added")
	return created, nil
}

// Purchase atomically decrements stock. Concurrent purchases of the same item
// never overdraw it: the decrement is conditional on sufficient quantity.
func (s *SweetService) Purchase(ctx context.Context, id string, quantity int64) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: purchase quantity must be positive", domain.ErrInvalidInput)
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, -quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("sweet_id", id).Int64("quantity", quantity).Int64("remaining", sweet.Quantity).Msg("purchase completed")
	return sweet, nil
}

// Restock atomically increments stock.
func (s *SweetService) Restock(ctx context.Context, id string, quantity int64) (*domain.Sweet, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: restock quantity must be positive", domain.ErrInvalidInput)
	}

	sweet, err := s.repo.AdjustQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("sweet_id", id).Int64("quantity", quantity).Int64("stock", sweet.Quantity).Msg("restock completed")
	return sweet, nil
}

// Update applies a partial merge of the provided fields, re-checking the same
// invariants Add enforces on each one.
func (s *SweetService) Update(ctx context.Context, id string, fields ports.UpdateFields) (*domain.Sweet, error) {
	if fields.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	if fields.Name != nil && *fields.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
	}
	if fields.Category != nil && *fields.Category == "" {
		return nil, fmt.Errorf("%w: category must not be empty", domain.ErrInvalidInput)
	}
	if fields.Price != nil && *fields.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be greater than zero", domain.ErrInvalidInput)
	}
	if fields.Quantity != nil && *fields.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidInput)
	}

	updated, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("sweet_id", id).Msg("sweet updated")
	return updated, nil
}

// Delete removes an item and returns its pre-deletion snapshot.
func (s *SweetService) Delete(ctx context.Context, id string) (*domain.Sweet, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.logger.Info().Str("sweet_id", id).Str("name", deleted.Name).Msg("sweet deleted")
	return deleted, nil
}

// invalidateCatalog drops the cached listing after any mutation. Failures are
// logged, not propagated: the cache entry expires on its own TTL anyway.
func (s *SweetService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}
