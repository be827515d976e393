package m_product_category

// Field name constants for the product_categories association table.
const (
	TableName = "product_categories"

	ProductID  = "product_id"
	CategoryID = "category_id"
)
