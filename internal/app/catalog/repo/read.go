package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// queryer is satisfied by both read-only and read-write Spanner transactions.
type queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// productFromData maps a row model to the domain record.
func productFromData(data *m_product.Data) domain.Product {
	p := domain.Product{
		ID:        data.ID,
		Name:      data.Name,
		Price:     domain.NewMoneyFromRat(&data.Price),
		InStock:   data.InStock,
		CreatedAt: data.CreatedAt.UTC(),
		UpdatedAt: data.UpdatedAt.UTC(),
	}
	if data.Description.Valid {
		desc := data.Description.StringVal
		p.Description = &desc
	}
	if data.SKU.Valid {
		sku := data.SKU.StringVal
		p.SKU = &sku
	}
	return p
}

// categoryFromData maps a row model to the domain record.
func categoryFromData(data *m_category.Data) domain.Category {
	c := domain.Category{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt.UTC(),
		UpdatedAt: data.UpdatedAt.UTC(),
	}
	if data.Description.Valid {
		desc := data.Description.StringVal
		c.Description = &desc
	}
	return c
}

// resolveCategories batch-checks that every id references a live category and
// returns the (id, name) summaries ordered by id ascending. The first missing
// id aborts with a NotFoundError, which rolls back any enclosing transaction.
func resolveCategories(ctx context.Context, q queryer, ids []int64) ([]domain.CategorySummary, error) {
	if len(ids) == 0 {
		return []domain.CategorySummary{}, nil
	}

	stmt := query.From(m_category.TableName).
		Select(m_category.ID, m_category.Name).
		Where(query.In(m_category.ID, ids)).
		OrderBy(m_category.ID, query.Asc).
		Build()

	found := make(map[int64]struct{}, len(ids))
	summaries := make([]domain.CategorySummary, 0, len(ids))

	iter := q.Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}
		var s domain.CategorySummary
		if err := row.Columns(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("parse category summary: %w", err)
		}
		found[s.ID] = struct{}{}
		summaries = append(summaries, s)
	}

	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return nil, domain.NotFound("category", id)
		}
	}
	return summaries, nil
}

// loadCategorySummaries fetches the category summaries for a batch of
// products in one join query, keyed by product id and ordered by category id
// within each product. One statement regardless of page size.
func loadCategorySummaries(ctx context.Context, q queryer, productIDs []int64) (map[int64][]domain.CategorySummary, error) {
	out := make(map[int64][]domain.CategorySummary, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	stmt := spanner.Statement{
		SQL: "SELECT pc.product_id, c.id, c.name " +
			"FROM product_categories pc " +
			"JOIN categories c ON c.id = pc.category_id " +
			"WHERE pc.product_id IN UNNEST(@product_ids) " +
			"ORDER BY pc.product_id, c.id",
		Params: map[string]interface{}{"product_ids": productIDs},
	}

	iter := q.Query(ctx, stmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load category summaries: %w", err)
		}
		var productID int64
		var s domain.CategorySummary
		if err := row.Columns(&productID, &s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("parse category summary: %w", err)
		}
		out[productID] = append(out[productID], s)
	}
	return out, nil
}

// queryCount runs a COUNT(*) statement and returns the single value.
func queryCount(ctx context.Context, q queryer, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return count, nil
}
