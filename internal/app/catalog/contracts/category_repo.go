package contracts

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/optional"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// CreateCategory is a normalized, validated create request.
type CreateCategory struct {
	Name        string
	Description *string
}

// UpdateCategory is a normalized partial-update request.
type UpdateCategory struct {
	Name        *string
	Description optional.Field[string]
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateCategory) IsEmpty() bool {
	return u.Name == nil && !u.Description.Present()
}

// CategoryRepository owns the category lifecycle and category-to-product
// lookups. Name uniqueness violations surface as ConflictError.
type CategoryRepository interface {
	Create(ctx context.Context, req CreateCategory) (*domain.Category, error)

	Get(ctx context.Context, id int64) (*domain.Category, error)

	// List returns all categories ordered by name ascending. When
	// includeProductCount is set each entry carries a live count of
	// associated products; otherwise the count is zero.
	List(ctx context.Context, includeProductCount bool) ([]*domain.CategoryWithProductCount, error)

	Update(ctx context.Context, id int64, req UpdateCategory) (*domain.Category, error)

	// Delete removes the category and, via cascade, its association rows.
	// Associated products survive with one fewer category.
	Delete(ctx context.Context, id int64) error

	// ListProducts returns one page of the category's products ordered by
	// product id ascending. NotFoundError when the category is absent.
	ListProducts(ctx context.Context, categoryID int64, page pagination.Page) (*ProductList, error)
}
