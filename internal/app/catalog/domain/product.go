package domain

import "time"

// Product is a catalog product row. It is a plain record: repositories take
// and return these values explicitly, nothing here holds a live connection.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       *Money
	SKU         *string
	InStock     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategorySummary is the (id, name) pair attached to a product response.
type CategorySummary struct {
	ID   int64
	Name string
}

// ProductWithCategories joins a product with its resolved category summaries,
// ordered by category id ascending.
type ProductWithCategories struct {
	Product
	Categories []CategorySummary
}
