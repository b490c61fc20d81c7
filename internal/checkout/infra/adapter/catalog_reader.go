package adapter

import (
	"context"

	catalogapp "github.com/solowear/storefront/internal/catalog/app"
	catalogdomain "github.com/solowear/storefront/internal/catalog/domain"
)

// CatalogServiceReader adapts the catalog service to the checkout
// service's reader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID string) (catalogdomain.Product, error) {
	return r.svc.Get(ctx, productID)
}
