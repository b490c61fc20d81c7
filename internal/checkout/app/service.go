package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	cartapp "github.com/solowear/storefront/internal/cart/app"
	cartdomain "github.com/solowear/storefront/internal/cart/domain"
	catalogapp "github.com/solowear/storefront/internal/catalog/app"
	catalogdomain "github.com/solowear/storefront/internal/catalog/domain"
	orderapp "github.com/solowear/storefront/internal/order/app"
	orderdomain "github.com/solowear/storefront/internal/order/domain"
	"github.com/solowear/storefront/internal/pricing"
)

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (catalogdomain.Product, error)
}

// Quote is what the checkout page renders: the cart lines with current
// prices and the totals breakdown.
type Quote struct {
	Lines  []cartdomain.Line `json:"lines"`
	Totals pricing.Breakdown `json:"totals"`
}

// Service drives checkout: quoting the cart against current catalog
// prices, and turning a submission into exactly one persisted order.
type Service struct {
	cart    *cartapp.Service
	catalog CatalogReader
	builder *orderapp.Builder
	orders  orderapp.OrderRepo
	policy  pricing.Policy

	maxConcurrent int
}

func NewService(cart *cartapp.Service, catalog CatalogReader, builder *orderapp.Builder, orders orderapp.OrderRepo, policy pricing.Policy, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		builder:       builder,
		orders:        orders,
		policy:        policy,
		maxConcurrent: maxConcurrent,
	}
}

func (s *Service) Quote(ctx context.Context, sessionID string) (Quote, error) {
	cart, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	if cart.IsEmpty() {
		return Quote{}, orderapp.ErrEmptyCart
	}

	lines, err := s.refresh(ctx, cart.Lines)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Lines:  lines,
		Totals: pricing.ComputeTotals(lines, s.policy),
	}, nil
}

// PlaceOrder runs the checkout pipeline: build, persist, clear cart.
// Every failure before the order is stored leaves the cart untouched, so
// a submission creates at most one order.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, customer orderdomain.Customer, method orderdomain.PaymentMethod) (orderdomain.Order, error) {
	cart, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return orderdomain.Order{}, err
	}

	if !cart.IsEmpty() {
		lines, err := s.refresh(ctx, cart.Lines)
		if err != nil {
			return orderdomain.Order{}, err
		}
		cart.Lines = lines
	}

	order, err := s.builder.Build(ctx, cart, customer, method)
	if err != nil {
		return orderdomain.Order{}, err
	}

	if _, err := s.orders.Add(ctx, order); err != nil {
		return orderdomain.Order{}, fmt.Errorf("persist order: %w", err)
	}

	if _, err := s.cart.Clear(ctx, sessionID); err != nil {
		// The order is stored; a lingering cart is a cosmetic problem,
		// re-submitting it must not be forced on the customer.
		slog.Warn("order placed but cart not cleared",
			slog.String("orderId", order.ID), slog.Any("err", err))
	}

	return order, nil
}

// refresh re-reads each line's product so checkout charges current
// prices, not the prices captured when the line was added. Lines whose
// product no longer resolves keep their snapshot.
func (s *Service) refresh(ctx context.Context, lines []cartdomain.Line) ([]cartdomain.Line, error) {
	out := make([]cartdomain.Line, len(lines))
	copy(out, lines)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range out {
		g.Go(func() error {
			product, err := s.catalog.GetProduct(ctx, out[idx].ProductID)
			if errors.Is(err, catalogapp.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("refresh product %s: %w", out[idx].ProductID, err)
			}

			out[idx].Name = product.Name
			out[idx].Price = product.Price
			out[idx].SalePrice = product.SalePrice
			out[idx].Image = product.Image
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
