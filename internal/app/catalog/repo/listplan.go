package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_product_category"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// buildProductListStatements turns a list filter into its query plan: one
// statement for the page of rows and one for the total count sharing the same
// restrictions. Ordering is id ascending so pagination over unmodified data
// is deterministic and non-overlapping. Pure; nothing here runs a query.
func buildProductListStatements(filter contracts.ListFilter) (page, count spanner.Statement) {
	b := query.From(m_product.TableName).
		Select(m_product.ReadColumns()...)

	if filter.CategoryID != nil {
		b = b.Where(query.Exists(m_product_category.TableName,
			query.ColEq(
				m_product_category.TableName+"."+m_product_category.ProductID,
				m_product.TableName+"."+m_product.ID,
			),
			query.Eq(m_product_category.TableName+"."+m_product_category.CategoryID, *filter.CategoryID),
		))
	}
	if filter.InStock != nil {
		b = b.Where(query.Eq(m_product.InStock, *filter.InStock))
	}

	page = b.OrderBy(m_product.ID, query.Asc).
		Limit(filter.Page.Limit()).
		Offset(filter.Page.Offset()).
		Build()
	count = b.Count().Build()
	return page, count
}
