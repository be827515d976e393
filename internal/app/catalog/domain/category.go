package domain

import "time"

// Category is a catalog category row.
type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryWithProductCount augments a category with a live count of associated
// products. The count is computed per query, never stored.
type CategoryWithProductCount struct {
	Category
	ProductCount int64
}
