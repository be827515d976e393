package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ID          = "id"
	Name        = "name"
	Description = "description"
	Price       = "price"
	SKU         = "sku"
	InStock     = "in_stock"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// ReadColumns lists every column in select order.
func ReadColumns() []string {
	return []string{ID, Name, Description, Price, SKU, InStock, CreatedAt, UpdatedAt}
}
