package m_product

import "cloud.google.com/go/spanner"

// Model provides type-safe mutation helpers for the products table.
// Inserts go through DML (to get the generated id back), so only update and
// delete mutations live here.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpdateMut creates a mutation updating specific product columns.
func (m *Model) UpdateMut(id int64, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, ID)
	values = append(values, id)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}
	return spanner.Update(TableName, columns, values)
}

// DeleteMut creates a mutation deleting a product row. Association rows go
// with it via the schema's ON DELETE CASCADE.
func (m *Model) DeleteMut(id int64) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{id})
}
