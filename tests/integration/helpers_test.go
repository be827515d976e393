//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

// testRepos bundles both repositories over a shared client and mock clock.
type testRepos struct {
	client     *spanner.Client
	clock      *clock.MockClock
	products   contracts.ProductRepository
	categories contracts.CategoryRepository
}

func setupRepos(t *testing.T) (*testRepos, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	coord := committer.NewCoordinator(client)

	return &testRepos{
		client:     client,
		clock:      clk,
		products:   repo.NewProductRepo(client, coord, clk),
		categories: repo.NewCategoryRepo(client, coord, clk),
	}, cleanup
}

func (r *testRepos) createCategory(t *testing.T, name string) *domain.Category {
	t.Helper()

	category, err := r.categories.Create(context.Background(), contracts.CreateCategory{Name: name})
	require.NoError(t, err)
	return category
}

func (r *testRepos) createProduct(t *testing.T, name, price string, categoryIDs ...int64) *domain.ProductWithCategories {
	t.Helper()

	product, err := r.products.Create(context.Background(), contracts.CreateProduct{
		Name:        name,
		Price:       mustMoney(t, price),
		InStock:     true,
		CategoryIDs: categoryIDs,
	})
	require.NoError(t, err)
	return product
}

func mustMoney(t *testing.T, literal string) *domain.Money {
	t.Helper()

	price, err := domain.ParseMoney(literal)
	require.NoError(t, err)
	return price
}

func strPtr(s string) *string { return &s }

func categoryIDsOf(p *domain.ProductWithCategories) []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

func uniqueName(prefix string, i int) string {
	return fmt.Sprintf("%s-%03d", prefix, i)
}
