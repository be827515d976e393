package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/transport/http/catalog"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Products      contracts.ProductRepository
	Categories    contracts.CategoryRepository
	Handler       *catalog.Handler
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	coord := committer.NewCoordinator(spannerClient)

	products := repo.NewProductRepo(spannerClient, coord, clk)
	categories := repo.NewCategoryRepo(spannerClient, coord, clk)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Products:      products,
		Categories:    categories,
		Handler:       catalog.NewHandler(products, categories),
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
