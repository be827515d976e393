//go:build integration

package integration

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/optional"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

func TestCategoryRepo_CreateAndGet(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repos.categories.Create(ctx, contracts.CreateCategory{
		Name:        "tools",
		Description: strPtr("things that fix things"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repos.categories.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "tools", got.Name)
	assert.Equal(t, "things that fix things", *got.Description)

	_, err = repos.categories.Get(ctx, 424242)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCategoryRepo_DuplicateNameConflicts(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	repos.createCategory(t, "tools")

	_, err := repos.categories.Create(ctx, contracts.CreateCategory{Name: "tools"})
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	// Names are case-sensitive; a different casing is a different category.
	_, err = repos.categories.Create(ctx, contracts.CreateCategory{Name: "Tools"})
	require.NoError(t, err)
}

func TestCategoryRepo_Update(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repos.categories.Create(ctx, contracts.CreateCategory{
		Name:        "tools",
		Description: strPtr("original"),
	})
	require.NoError(t, err)

	name := "hardware"
	updated, err := repos.categories.Update(ctx, created.ID, contracts.UpdateCategory{
		Name:        &name,
		Description: optional.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "hardware", updated.Name)
	assert.Nil(t, updated.Description)

	got, err := repos.categories.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hardware", got.Name)
	assert.Nil(t, got.Description)

	_, err = repos.categories.Update(ctx, 424242, contracts.UpdateCategory{Name: &name})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCategoryRepo_List_OrderedByName(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	widgets := repos.createCategory(t, "widgets")
	repos.createCategory(t, "appliances")
	repos.createCategory(t, "tools")

	repos.createProduct(t, "widget-a", "1.00", widgets.ID)
	repos.createProduct(t, "widget-b", "2.00", widgets.ID)

	categories, err := repos.categories.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.True(t, sort.StringsAreSorted(names), "categories not ordered by name: %v", names)

	withCounts, err := repos.categories.List(ctx, true)
	require.NoError(t, err)
	for _, c := range withCounts {
		if c.ID == widgets.ID {
			assert.Equal(t, int64(2), c.ProductCount)
		} else {
			assert.Zero(t, c.ProductCount)
		}
	}
}

func TestCategoryRepo_Delete_LeavesProducts(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	tools := repos.createCategory(t, "tools")
	widgets := repos.createCategory(t, "widgets")
	product := repos.createProduct(t, "widget", "1.00", tools.ID, widgets.ID)

	require.NoError(t, repos.categories.Delete(ctx, tools.ID))

	// Association rows are gone, the product itself survives.
	testutil.AssertRowCount(t, repos.client, "categories", 1)
	testutil.AssertRowCount(t, repos.client, "product_categories", 1)

	got, err := repos.products.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{widgets.ID}, categoryIDsOf(got))

	err = repos.categories.Delete(ctx, tools.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCategoryRepo_ListProducts(t *testing.T) {
	repos, cleanup := setupRepos(t)
	defer cleanup()
	ctx := context.Background()

	tools := repos.createCategory(t, "tools")
	widgets := repos.createCategory(t, "widgets")

	for i := 0; i < 12; i++ {
		repos.createProduct(t, uniqueName("tool", i), "1.00", tools.ID)
	}
	repos.createProduct(t, "widget", "2.00", widgets.ID)

	page, err := pagination.New(1, 10)
	require.NoError(t, err)
	list, err := repos.categories.ListProducts(ctx, tools.ID, page)
	require.NoError(t, err)
	assert.Equal(t, int64(12), list.Total)
	assert.Len(t, list.Items, 10)

	page, err = pagination.New(2, 10)
	require.NoError(t, err)
	list, err = repos.categories.ListProducts(ctx, tools.ID, page)
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	// An existing but empty category lists cleanly.
	empty := repos.createCategory(t, "empty")
	page, err = pagination.New(1, 10)
	require.NoError(t, err)
	list, err = repos.categories.ListProducts(ctx, empty.ID, page)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Total)

	// A missing category is NotFound, not an empty page.
	_, err = repos.categories.ListProducts(ctx, 424242, page)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
