package catalog

import (
	"time"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

type productResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Price       string            `json:"price"`
	SKU         *string           `json:"sku"`
	InStock     bool              `json:"in_stock"`
	Categories  []categorySummary `json:"categories"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type categorySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type categoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ProductCount *int64    `json:"product_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type productListResponse struct {
	Items      []productResponse `json:"items"`
	Page       int64             `json:"page"`
	PageSize   int64             `json:"page_size"`
	Total      int64             `json:"total"`
	TotalPages int64             `json:"total_pages"`
}

type categoryListResponse struct {
	Items []categoryResponse `json:"items"`
}

func toProductResponse(p *domain.ProductWithCategories) productResponse {
	price := ""
	if p.Price != nil {
		price = p.Price.String()
	}

	categories := make([]categorySummary, 0, len(p.Categories))
	for _, c := range p.Categories {
		categories = append(categories, categorySummary{ID: c.ID, Name: c.Name})
	}

	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		SKU:         p.SKU,
		InStock:     p.InStock,
		Categories:  categories,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductListResponse(list *contracts.ProductList, page pagination.Page) productListResponse {
	items := make([]productResponse, 0, len(list.Items))
	for _, p := range list.Items {
		items = append(items, toProductResponse(p))
	}
	return productListResponse{
		Items:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      list.Total,
		TotalPages: page.TotalPages(list.Total),
	}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCategoryListResponse(categories []*domain.CategoryWithProductCount, includeCounts bool) categoryListResponse {
	items := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp := toCategoryResponse(&c.Category)
		if includeCounts {
			count := c.ProductCount
			resp.ProductCount = &count
		}
		items = append(items, resp)
	}
	return categoryListResponse{Items: items}
}
