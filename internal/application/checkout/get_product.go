package checkout

import (
	"context"

	domainErrors "github.com/davidrico/checkout/internal/domain/errors"
	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/domain/stock"
)

// ProductWithStock is a product joined with its available units.
type ProductWithStock struct {
	Product *product.Product
	Stock   int64
}

// GetProductUseCase composes the product and stock ports. A product with no
// stock record is treated as not found.
type GetProductUseCase struct {
	productRepo product.Repository
	stockRepo   stock.Repository
}

// NewGetProductUseCase creates a new GetProductUseCase.
func NewGetProductUseCase(productRepo product.Repository, stockRepo stock.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// Execute returns the product and its current stock level.
func (uc *GetProductUseCase) Execute(ctx context.Context, productID string) (*ProductWithStock, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, domainErrors.NewDomainError("product_lookup", "look up product", domainErrors.ErrDatabase)
	}
	if p == nil {
		return nil, domainErrors.ErrProductNotFound
	}

	units, found, err := uc.stockRepo.GetUnits(ctx, productID)
	if err != nil {
		return nil, domainErrors.NewDomainError("stock_lookup", "look up stock", domainErrors.ErrDatabase)
	}
	if !found {
		return nil, domainErrors.ErrProductNotFound
	}

	return &ProductWithStock{Product: p, Stock: units}, nil
}
