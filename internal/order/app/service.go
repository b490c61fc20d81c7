package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/solowear/storefront/internal/order/domain"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Service covers the admin side of orders: listing, status management,
// deletion, and the dashboard summary. The storefront itself never
// mutates an order after checkout.
type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// List returns all orders, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, next domain.Status) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, ErrInvalidInput
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return domain.Order{}, ErrInvalidTransition
	}

	order.Status = next
	if err := s.repo.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, next domain.PaymentStatus) (domain.Order, error) {
	if !next.Valid() {
		return domain.Order{}, ErrInvalidInput
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	order.PaymentStatus = next
	if err := s.repo.Update(ctx, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// DashboardStats is the admin home summary: order volume, revenue across
// all orders, and the most recent few.
type DashboardStats struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	Recent       []domain.Order `json:"recent"`
}

func (s *Service) Dashboard(ctx context.Context, recentN int) (DashboardStats, error) {
	if recentN <= 0 {
		recentN = 5
	}

	orders, err := s.List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{TotalOrders: len(orders)}
	for _, o := range orders {
		stats.TotalRevenue += o.Totals.Total
	}

	if len(orders) > recentN {
		orders = orders[:recentN]
	}
	stats.Recent = orders
	return stats, nil
}
