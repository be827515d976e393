package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the row model for the products table.
type Data struct {
	ID          int64              `spanner:"id"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	Price       big.Rat            `spanner:"price"`
	SKU         spanner.NullString `spanner:"sku"`
	InStock     bool               `spanner:"in_stock"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
}
