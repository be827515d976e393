package m_category

// Field name constants for the categories table.
const (
	TableName = "categories"

	ID          = "id"
	Name        = "name"
	Description = "description"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// ReadColumns lists every column in select order.
func ReadColumns() []string {
	return []string{ID, Name, Description, CreatedAt, UpdatedAt}
}
