package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_category"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

const nameConflictMsg = "a category with this name already exists"

// CategoryRepo implements contracts.CategoryRepository on Spanner.
type CategoryRepo struct {
	client *spanner.Client
	coord  *committer.Coordinator
	model  *m_category.Model
	clock  clock.Clock
}

// NewCategoryRepo creates a CategoryRepo.
func NewCategoryRepo(client *spanner.Client, coord *committer.Coordinator, clk clock.Clock) contracts.CategoryRepository {
	return &CategoryRepo{
		client: client,
		coord:  coord,
		model:  m_category.NewModel(),
		clock:  clk,
	}
}

// Create inserts a category. A duplicate name trips the unique index and
// surfaces as ConflictError.
func (r *CategoryRepo) Create(ctx context.Context, req contracts.CreateCategory) (*domain.Category, error) {
	var result *domain.Category

	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		now := r.clock.Now()

		stmt := spanner.Statement{
			SQL: "INSERT INTO categories (name, description, created_at, updated_at) " +
				"VALUES (@name, @description, @now, @now) " +
				"THEN RETURN id",
			Params: map[string]interface{}{
				"name":        req.Name,
				"description": nullString(req.Description),
				"now":         now,
			},
		}

		id, err := queryReturnedID(ctx, txn, stmt)
		if err != nil {
			return fmt.Errorf("insert category: %w", err)
		}

		result = &domain.Category{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, nameConflictMsg)
	}
	return result, nil
}

// Get reads a single category row.
func (r *CategoryRepo) Get(ctx context.Context, id int64) (*domain.Category, error) {
	row, err := r.client.Single().ReadRow(ctx, m_category.TableName, spanner.Key{id}, m_category.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NotFound("category", id)
		}
		return nil, domain.Internal(fmt.Errorf("read category: %w", err))
	}

	var data m_category.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, domain.Internal(fmt.Errorf("parse category: %w", err))
	}
	category := categoryFromData(&data)
	return &category, nil
}

// List returns all categories ordered by name ascending. With
// includeProductCount set, each row carries a live count over the
// association table; counting per query avoids drift from a stored counter.
func (r *CategoryRepo) List(ctx context.Context, includeProductCount bool) ([]*domain.CategoryWithProductCount, error) {
	sql := "SELECT c.id, c.name, c.description, c.created_at, c.updated_at"
	if includeProductCount {
		sql += ", (SELECT COUNT(*) FROM product_categories pc WHERE pc.category_id = c.id) AS product_count"
	}
	sql += " FROM categories c ORDER BY c.name"

	iter := r.client.Single().Query(ctx, spanner.Statement{SQL: sql})
	defer iter.Stop()

	categories := make([]*domain.CategoryWithProductCount, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.Internal(fmt.Errorf("list categories: %w", err))
		}

		var data m_category.Data
		var count int64
		if includeProductCount {
			var desc spanner.NullString
			if err := row.Columns(&data.ID, &data.Name, &desc, &data.CreatedAt, &data.UpdatedAt, &count); err != nil {
				return nil, domain.Internal(fmt.Errorf("parse category: %w", err))
			}
			data.Description = desc
		} else {
			if err := row.Columns(&data.ID, &data.Name, &data.Description, &data.CreatedAt, &data.UpdatedAt); err != nil {
				return nil, domain.Internal(fmt.Errorf("parse category: %w", err))
			}
		}

		categories = append(categories, &domain.CategoryWithProductCount{
			Category:     categoryFromData(&data),
			ProductCount: count,
		})
	}
	return categories, nil
}

// Update applies the present fields and bumps updated_at.
func (r *CategoryRepo) Update(ctx context.Context, id int64, req contracts.UpdateCategory) (*domain.Category, error) {
	var result *domain.Category

	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_category.TableName, spanner.Key{id}, m_category.ReadColumns())
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NotFound("category", id)
			}
			return fmt.Errorf("read category: %w", err)
		}
		var data m_category.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("parse category: %w", err)
		}
		current := categoryFromData(&data)

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates[m_category.Name] = *req.Name
			current.Name = *req.Name
		}
		if req.Description.Present() {
			if desc, ok := req.Description.Value(); ok {
				updates[m_category.Description] = spanner.NullString{StringVal: desc, Valid: true}
				current.Description = &desc
			} else {
				updates[m_category.Description] = spanner.NullString{}
				current.Description = nil
			}
		}

		if len(updates) > 0 {
			now := r.clock.Now()
			updates[m_category.UpdatedAt] = now
			current.UpdatedAt = now
			if err := txn.BufferWrite([]*spanner.Mutation{r.model.UpdateMut(id, updates)}); err != nil {
				return fmt.Errorf("apply update: %w", err)
			}
		}

		result = &current
		return nil
	})
	if err != nil {
		return nil, classify(err, nameConflictMsg)
	}
	return result, nil
}

// Delete removes the category row. Association rows cascade away with it;
// product rows are never deleted as a side effect. The existence read and the
// delete mutation share one transaction.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if _, err := txn.ReadRow(ctx, m_category.TableName, spanner.Key{id}, []string{m_category.ID}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NotFound("category", id)
			}
			return fmt.Errorf("read category: %w", err)
		}

		plan := committer.NewPlan()
		plan.Add(r.model.DeleteMut(id))
		if err := plan.BufferTo(txn); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	return classify(err, nameConflictMsg)
}

// ListProducts pages through the category's products ordered by product id
// ascending, reusing the product list plan with a category restriction.
func (r *CategoryRepo) ListProducts(ctx context.Context, categoryID int64, page pagination.Page) (*contracts.ProductList, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	// Existence first so an empty category and a missing one stay
	// distinguishable.
	if _, err := txn.ReadRow(ctx, m_category.TableName, spanner.Key{categoryID}, []string{m_category.ID}); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NotFound("category", categoryID)
		}
		return nil, domain.Internal(fmt.Errorf("read category: %w", err))
	}

	pageStmt, countStmt := buildProductListStatements(contracts.ListFilter{
		CategoryID: &categoryID,
		Page:       page,
	})

	total, err := queryCount(ctx, txn, countStmt)
	if err != nil {
		return nil, domain.Internal(err)
	}

	items := make([]*domain.ProductWithCategories, 0, page.Limit())
	productIDs := make([]int64, 0, page.Limit())

	iter := txn.Query(ctx, pageStmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.Internal(fmt.Errorf("list category products: %w", err))
		}
		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, domain.Internal(fmt.Errorf("parse product: %w", err))
		}
		items = append(items, &domain.ProductWithCategories{Product: productFromData(&data)})
		productIDs = append(productIDs, data.ID)
	}

	summaries, err := loadCategorySummaries(ctx, txn, productIDs)
	if err != nil {
		return nil, domain.Internal(err)
	}
	for _, item := range items {
		item.Categories = summariesOrEmpty(summaries[item.ID])
	}

	return &contracts.ProductList{Items: items, Total: total}, nil
}
