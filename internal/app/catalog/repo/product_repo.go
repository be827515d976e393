package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/models/m_product_category"
	"github.com/light-bringer/catalog-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

const skuConflictMsg = "a product with this sku already exists"

// ProductRepo implements contracts.ProductRepository on Spanner. It holds no
// state beyond its collaborators; every call scopes its own transaction.
type ProductRepo struct {
	client *spanner.Client
	coord  *committer.Coordinator
	model  *m_product.Model
	assoc  *m_product_category.Model
	clock  clock.Clock
}

// NewProductRepo creates a ProductRepo.
func NewProductRepo(client *spanner.Client, coord *committer.Coordinator, clk clock.Clock) contracts.ProductRepository {
	return &ProductRepo{
		client: client,
		coord:  coord,
		model:  m_product.NewModel(),
		assoc:  m_product_category.NewModel(),
		clock:  clk,
	}
}

// Create inserts the product row and one association row per category id in
// a single transaction. A category id that does not reference a live row
// aborts the whole transaction; no product row survives a partial failure.
func (r *ProductRepo) Create(ctx context.Context, req contracts.CreateProduct) (*domain.ProductWithCategories, error) {
	var result *domain.ProductWithCategories

	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		now := r.clock.Now()

		stmt := spanner.Statement{
			SQL: "INSERT INTO products (name, description, price, sku, in_stock, created_at, updated_at) " +
				"VALUES (@name, @description, @price, @sku, @in_stock, @now, @now) " +
				"THEN RETURN id",
			Params: map[string]interface{}{
				"name":        req.Name,
				"description": nullString(req.Description),
				"price":       req.Price.Rat(),
				"sku":         nullString(req.SKU),
				"in_stock":    req.InStock,
				"now":         now,
			},
		}

		id, err := queryReturnedID(ctx, txn, stmt)
		if err != nil {
			return fmt.Errorf("insert product: %w", err)
		}

		// Verify every category id up front so a bad id surfaces as
		// NotFound rather than a late FK violation.
		categories, err := resolveCategories(ctx, txn, req.CategoryIDs)
		if err != nil {
			return err
		}

		plan := committer.NewPlan()
		plan.AddMultiple(r.assoc.InsertAllMut(id, req.CategoryIDs))
		if err := plan.BufferTo(txn); err != nil {
			return fmt.Errorf("insert associations: %w", err)
		}

		result = &domain.ProductWithCategories{
			Product: domain.Product{
				ID:          id,
				Name:        req.Name,
				Description: req.Description,
				Price:       req.Price.Copy(),
				SKU:         req.SKU,
				InStock:     req.InStock,
				CreatedAt:   now,
				UpdatedAt:   now,
			},
			Categories: categories,
		}
		return nil
	})
	if err != nil {
		return nil, classify(err, skuConflictMsg)
	}
	return result, nil
}

// Get reads the product row and its category summaries, ordered by category
// id ascending, in one read-only transaction.
func (r *ProductRepo) Get(ctx context.Context, id int64) (*domain.ProductWithCategories, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.NotFound("product", id)
		}
		return nil, classify(fmt.Errorf("read product: %w", err), skuConflictMsg)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, domain.Internal(fmt.Errorf("parse product: %w", err))
	}

	summaries, err := loadCategorySummaries(ctx, txn, []int64{id})
	if err != nil {
		return nil, domain.Internal(err)
	}

	return &domain.ProductWithCategories{
		Product:    productFromData(&data),
		Categories: summariesOrEmpty(summaries[id]),
	}, nil
}

// List runs the filter's query plan: a count, a page of rows ordered by id
// ascending, then one batched join for the page's category summaries.
func (r *ProductRepo) List(ctx context.Context, filter contracts.ListFilter) (*contracts.ProductList, error) {
	pageStmt, countStmt := buildProductListStatements(filter)

	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := queryCount(ctx, txn, countStmt)
	if err != nil {
		return nil, domain.Internal(err)
	}

	items := make([]*domain.ProductWithCategories, 0, filter.Page.Limit())
	productIDs := make([]int64, 0, filter.Page.Limit())

	iter := txn.Query(ctx, pageStmt)
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, domain.Internal(fmt.Errorf("list products: %w", err))
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

// Update applies the present fields and bumps updated_at. A present
// CategoryIDs (even empty) replaces the whole association set atomically:
// existing rows are deleted and the new set verified and inserted in the same
// transaction that updates the product row.
func (r *ProductRepo) Update(ctx context.Context, id int64, req contracts.UpdateProduct) (*domain.ProductWithCategories, error) {
	var result *domain.ProductWithCategories

	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.ReadColumns())
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NotFound("product", id)
			}
			return fmt.Errorf("read product: %w", err)
		}
		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("parse product: %w", err)
		}
		current := productFromData(&data)

		now := r.clock.Now()
		updates := make(map[string]interface{})

		if req.Name != nil {
			updates[m_product.Name] = *req.Name
			current.Name = *req.Name
		}
		if req.Description.Present() {
			if desc, ok := req.Description.Value(); ok {
				updates[m_product.Description] = spanner.NullString{StringVal: desc, Valid: true}
				current.Description = &desc
			} else {
				updates[m_product.Description] = spanner.NullString{}
				current.Description = nil
			}
		}
		if req.Price != nil {
			updates[m_product.Price] = req.Price.Rat()
			current.Price = req.Price.Copy()
		}
		if req.SKU.Present() {
			if sku, ok := req.SKU.Value(); ok {
				updates[m_product.SKU] = spanner.NullString{StringVal: sku, Valid: true}
				current.SKU = &sku
			} else {
				updates[m_product.SKU] = spanner.NullString{}
				current.SKU = nil
			}
		}
		if req.InStock != nil {
			updates[m_product.InStock] = *req.InStock
			current.InStock = *req.InStock
		}

		plan := committer.NewPlan()
		var categories []domain.CategorySummary

		if req.CategoryIDs != nil {
			if _, err := txn.Update(ctx, spanner.Statement{
				SQL:    "DELETE FROM product_categories WHERE product_id = @product_id",
				Params: map[string]interface{}{"product_id": id},
			}); err != nil {
				return fmt.Errorf("clear associations: %w", err)
			}
			categories, err = resolveCategories(ctx, txn, *req.CategoryIDs)
			if err != nil {
				return err
			}
			plan.AddMultiple(r.assoc.InsertAllMut(id, *req.CategoryIDs))
		} else {
			summaries, err := loadCategorySummaries(ctx, txn, []int64{id})
			if err != nil {
				return err
			}
			categories = summariesOrEmpty(summaries[id])
		}

		// Association-only changes still count as a product mutation.
		if len(updates) > 0 || req.CategoryIDs != nil {
			updates[m_product.UpdatedAt] = now
			current.UpdatedAt = now
			plan.Add(r.model.UpdateMut(id, updates))
		}

		if err := plan.BufferTo(txn); err != nil {
			return fmt.Errorf("apply update: %w", err)
		}

		result = &domain.ProductWithCategories{Product: current, Categories: categories}
		return nil
	})
	if err != nil {
		return nil, classify(err, skuConflictMsg)
	}
	return result, nil
}

// Delete removes the product row; association rows go with it via the
// schema's ON DELETE CASCADE. The existence read and the delete mutation
// share one transaction, so a concurrent delete still surfaces as NotFound.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	err := r.coord.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if _, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, []string{m_product.ID}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.NotFound("product", id)
			}
			return fmt.Errorf("read product: %w", err)
		}

		plan := committer.NewPlan()
		plan.Add(r.model.DeleteMut(id))
		if err := plan.BufferTo(txn); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	return classify(err, skuConflictMsg)
}

// queryReturnedID executes an insert with THEN RETURN id and reads back the
// generated key.
func queryReturnedID(ctx context.Context, txn *spanner.ReadWriteTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := row.Columns(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

// summariesOrEmpty keeps "no categories" as an empty slice rather than nil so
// responses serialize as [] and comparisons stay simple.
func summariesOrEmpty(s []domain.CategorySummary) []domain.CategorySummary {
	if s == nil {
		return []domain.CategorySummary{}
	}
	return s
}
