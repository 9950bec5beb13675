package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/davidrico/checkout/internal/domain/product"
	"github.com/davidrico/checkout/internal/infrastructure/config"
	"github.com/davidrico/checkout/internal/repository/postgres"
)

// Demo catalog loaded into the database for local development. The seed
// runs inside one transaction so a partial catalog never lands.
var catalog = []struct {
	product product.Product
	units   int64
}{
	{
		product: product.Product{
			ID:          "product-1",
			Name:        "Demo Product",
			Description: "A demo product for checkout",
			Price:       20000,
		},
		units: 12,
	},
	{
		product: product.Product{
			ID:          "product-2",
			Name:        "Second Demo Product",
			Description: "Another demo product for checkout",
			Price:       45000,
		},
		units: 5,
	},
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txManager := postgres.NewTxManager(pool)

	err = txManager.WithTransaction(ctx, func(ctx context.Context) error {
		for _, entry := range catalog {
			if err := productRepo.Upsert(ctx, &entry.product); err != nil {
				return err
			}
			if err := stockRepo.Upsert(ctx, entry.product.ID, entry.units); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d products\n", len(catalog))
}
