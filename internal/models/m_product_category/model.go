package m_product_category

import "cloud.google.com/go/spanner"

// Model provides mutation helpers for the product_categories table. An
// association row has no identity of its own; it only ever exists while both
// referenced rows do.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting one association row.
func (m *Model) InsertMut(productID, categoryID int64) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{ProductID, CategoryID},
		[]interface{}{productID, categoryID},
	)
}

// InsertAllMut creates one insert mutation per category id.
func (m *Model) InsertAllMut(productID int64, categoryIDs []int64) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		muts = append(muts, m.InsertMut(productID, categoryID))
	}
	return muts
}
