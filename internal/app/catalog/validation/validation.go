// Package validation checks and normalizes catalog requests before any write
// reaches storage. Everything here is a pure function: inputs come in,
// normalized contract requests or field-level violations come out, storage is
// never touched. Validation failures short-circuit before a transaction opens.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/optional"
)

const (
	maxProductNameLen  = 255
	maxCategoryNameLen = 100
	maxSKULen          = 50
)

// ProductCreateInput is the raw shape of a product create request. Price is
// the untouched decimal literal from the wire so precision is preserved.
type ProductCreateInput struct {
	Name        string
	Description *string
	Price       string
	SKU         *string
	InStock     *bool
	CategoryIDs []int64
}

// ProductUpdateInput is the raw shape of a product partial update. Absent
// fields are no-ops; the optional wrapper distinguishes absent from null.
type ProductUpdateInput struct {
	Name        optional.Field[string]
	Description optional.Field[string]
	Price       optional.Field[string]
	SKU         optional.Field[string]
	InStock     optional.Field[bool]
	CategoryIDs optional.Field[[]int64]
}

// CategoryCreateInput is the raw shape of a category create request.
type CategoryCreateInput struct {
	Name        string
	Description *string
}

// CategoryUpdateInput is the raw shape of a category partial update.
type CategoryUpdateInput struct {
	Name        optional.Field[string]
	Description optional.Field[string]
}

// ProductCreate validates and normalizes a product create request.
func ProductCreate(in ProductCreateInput) (contracts.CreateProduct, error) {
	var v violations
	out := contracts.CreateProduct{}

	out.Name = checkName(&v, in.Name, maxProductNameLen)
	out.Description = in.Description

	if in.Price == "" {
		v.add("price", "required")
	} else if price := checkPrice(&v, in.Price); price != nil {
		out.Price = price
	}

	if in.SKU != nil {
		checkSKU(&v, *in.SKU)
		out.SKU = in.SKU
	}

	if in.InStock != nil {
		out.InStock = *in.InStock
	}

	if len(in.CategoryIDs) == 0 {
		v.add("category_ids", "must contain at least one category id")
	} else {
		out.CategoryIDs = normalizeCategoryIDs(&v, in.CategoryIDs)
	}

	return out, v.err()
}

// ProductUpdate validates and normalizes a product partial update. Only
// present fields are validated; name, price, in_stock and category_ids reject
// explicit null, while description and sku treat null as "clear".
func ProductUpdate(in ProductUpdateInput) (contracts.UpdateProduct, error) {
	var v violations
	out := contracts.UpdateProduct{}

	if in.Name.Present() {
		if in.Name.Null() {
			v.add("name", "must not be null")
		} else {
			name, _ := in.Name.Value()
			normalized := checkName(&v, name, maxProductNameLen)
			out.Name = &normalized
		}
	}

	out.Description = in.Description

	if in.Price.Present() {
		if in.Price.Null() {
			v.add("price", "must not be null")
		} else {
			raw, _ := in.Price.Value()
			if price := checkPrice(&v, raw); price != nil {
				out.Price = price
			}
		}
	}

	if in.SKU.Present() && !in.SKU.Null() {
		sku, _ := in.SKU.Value()
		checkSKU(&v, sku)
	}
	out.SKU = in.SKU

	if in.InStock.Present() {
		if in.InStock.Null() {
			v.add("in_stock", "must not be null")
		} else {
			inStock, _ := in.InStock.Value()
			out.InStock = &inStock
		}
	}

	if in.CategoryIDs.Present() {
		if in.CategoryIDs.Null() {
			v.add("category_ids", "must not be null; use [] to clear associations")
		} else {
			ids, _ := in.CategoryIDs.Value()
			normalized := normalizeCategoryIDs(&v, ids)
			out.CategoryIDs = &normalized
		}
	}

	return out, v.err()
}

// CategoryCreate validates and normalizes a category create request.
func CategoryCreate(in CategoryCreateInput) (contracts.CreateCategory, error) {
	var v violations
	out := contracts.CreateCategory{
		Name:        checkName(&v, in.Name, maxCategoryNameLen),
		Description: in.Description,
	}
	return out, v.err()
}

// CategoryUpdate validates and normalizes a category partial update.
func CategoryUpdate(in CategoryUpdateInput) (contracts.UpdateCategory, error) {
	var v violations
	out := contracts.UpdateCategory{Description: in.Description}

	if in.Name.Present() {
		if in.Name.Null() {
			v.add("name", "must not be null")
		} else {
			name, _ := in.Name.Value()
			normalized := checkName(&v, name, maxCategoryNameLen)
			out.Name = &normalized
		}
	}

	return out, v.err()
}

func checkName(v *violations, name string, maxLen int) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		v.add("name", "required")
		return trimmed
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		v.add("name", fmt.Sprintf("must be at most %d characters", maxLen))
	}
	return trimmed
}

func checkPrice(v *violations, raw string) *domain.Money {
	price, err := domain.ParseMoney(raw)
	if err != nil {
		v.add("price", "must be a decimal number")
		return nil
	}
	if price.IsNegative() {
		v.add("price", "must not be negative")
		return nil
	}
	if !price.IsWholeCents() {
		v.add("price", "must have at most 2 decimal places")
		return nil
	}
	return price
}

func checkSKU(v *violations, sku string) {
	if utf8.RuneCountInString(sku) > maxSKULen {
		v.add("sku", fmt.Sprintf("must be at most %d characters", maxSKULen))
	}
}

// normalizeCategoryIDs deduplicates and sorts ascending. Duplicates are not
// an error; responses list each category once in id order either way.
func normalizeCategoryIDs(v *violations, ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id < 1 {
			v.add("category_ids", fmt.Sprintf("invalid category id %d", id))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type violations struct {
	list []domain.Violation
}

func (v *violations) add(field, message string) {
	v.list = append(v.list, domain.Violation{Field: field, Message: message})
}

func (v *violations) err() error {
	if len(v.list) == 0 {
		return nil
	}
	return &domain.ValidationError{Violations: v.list}
}
