package contracts

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/optional"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// CreateProduct is a normalized, validated create request. CategoryIDs are
// deduplicated and sorted ascending by the validation layer.
type CreateProduct struct {
	Name        string
	Description *string
	Price       *domain.Money
	SKU         *string
	InStock     bool
	CategoryIDs []int64
}

// UpdateProduct is a normalized partial-update request. Nil pointer fields
// and absent optional fields leave the stored value untouched; a present-null
// optional field clears it. A non-nil empty CategoryIDs clears every
// association.
type UpdateProduct struct {
	Name        *string
	Description optional.Field[string]
	Price       *domain.Money
	SKU         optional.Field[string]
	InStock     *bool
	CategoryIDs *[]int64
}

// IsEmpty reports whether the update changes nothing.
func (u UpdateProduct) IsEmpty() bool {
	return u.Name == nil &&
		!u.Description.Present() &&
		u.Price == nil &&
		!u.SKU.Present() &&
		u.InStock == nil &&
		u.CategoryIDs == nil
}

// ListFilter restricts and paginates a product listing.
type ListFilter struct {
	CategoryID *int64
	InStock    *bool
	Page       pagination.Page
}

// ProductList is one page of products plus the total count matching the
// filter across all pages.
type ProductList struct {
	Items []*domain.ProductWithCategories
	Total int64
}

// ProductRepository owns the product lifecycle and the atomic management of
// its category associations. Every multi-statement write runs in a single
// transaction; no partial state is ever visible to other callers.
type ProductRepository interface {
	// Create inserts a product and its association rows atomically. Every
	// category id must exist; a missing one aborts the whole transaction
	// with a NotFoundError and no product row survives.
	Create(ctx context.Context, req CreateProduct) (*domain.ProductWithCategories, error)

	// Get returns a product with its category summaries ordered by
	// category id ascending.
	Get(ctx context.Context, id int64) (*domain.ProductWithCategories, error)

	// List returns one page of products matching the filter, ordered by
	// product id ascending, plus the total match count.
	List(ctx context.Context, filter ListFilter) (*ProductList, error)

	// Update applies the present fields and bumps updated_at. When
	// CategoryIDs is non-nil the entire association set is replaced
	// atomically under the same all-or-nothing rule as Create.
	Update(ctx context.Context, id int64, req UpdateProduct) (*domain.ProductWithCategories, error)

	// Delete removes the product and, via cascade, its association rows.
	Delete(ctx context.Context, id int64) error
}
