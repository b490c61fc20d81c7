package app

import (
	"context"
	"time"

	"github.com/solowear/storefront/internal/cart/domain"
)

// Service owns cart state for the storefront. Every mutation is persisted
// through the repo before it returns, so a page reload always sees the
// latest cart.
type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.repo.Get(ctx, sessionID)
}

func (s *Service) Add(ctx context.Context, sessionID string, snapshot domain.Line) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Add(snapshot)
	return s.save(ctx, cart)
}

func (s *Service) SetQuantity(ctx context.Context, sessionID string, key domain.Key, quantity int) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.SetQuantity(key, quantity)
	return s.save(ctx, cart)
}

func (s *Service) Remove(ctx context.Context, sessionID string, key domain.Key) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Remove(key)
	return s.save(ctx, cart)
}

func (s *Service) Clear(ctx context.Context, sessionID string) (domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Clear()
	return s.save(ctx, cart)
}

func (s *Service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return cart.ItemCount(), nil
}

func (s *Service) save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	cart.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, cart)
}
