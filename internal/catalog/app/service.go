package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/solowear/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Sort orders accepted by List.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

// Filter narrows and orders a product listing. Zero values mean "no
// constraint". MaxPrice and size/color sets compare against what the
// storefront actually shows: the effective (sale) price and the
// available option lists.
type Filter struct {
	Category string
	MaxPrice float64
	Sizes    []string
	Colors   []string
	Sort     string
}

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if err := validate(&p); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	if err := validate(&p); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.Get(ctx, p.ID)
	if err != nil {
		return domain.Product{}, err
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matches(p, f) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, f.Sort)
	return filtered, nil
}

// Featured returns the newest n products for the home page.
func (s *Service) Featured(ctx context.Context, n int) ([]domain.Product, error) {
	if n <= 0 {
		n = 4
	}

	products, err := s.List(ctx, Filter{Sort: SortNewest})
	if err != nil {
		return nil, err
	}
	if len(products) > n {
		products = products[:n]
	}
	return products, nil
}

func validate(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return ErrInvalidInput
	}
	if p.SalePrice < 0 || p.SalePrice > p.Price {
		return ErrInvalidInput
	}
	return nil
}

func matches(p domain.Product, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.MaxPrice > 0 && p.EffectivePrice() > f.MaxPrice {
		return false
	}
	if len(f.Sizes) > 0 && !hasAny(f.Sizes, p.HasSize) {
		return false
	}
	if len(f.Colors) > 0 && !hasAny(f.Colors, p.HasColor) {
		return false
	}
	return true
}

func hasAny(wanted []string, has func(string) bool) bool {
	for _, w := range wanted {
		if has(w) {
			return true
		}
	}
	return false
}

func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() < products[j].EffectivePrice()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].EffectivePrice() > products[j].EffectivePrice()
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
