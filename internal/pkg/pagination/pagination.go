// Package pagination normalizes caller-supplied page parameters into a
// bounded offset/limit pair. It never executes queries.
package pagination

import "fmt"

const (
	// DefaultPage is used when the caller omits the page number.
	DefaultPage = 1
	// DefaultPageSize is used when the caller omits the page size.
	DefaultPageSize = 10
	// MaxPageSize bounds response size regardless of what the caller asks for.
	MaxPageSize = 100
)

// Page is a validated pagination window.
type Page struct {
	Number int64
	Size   int64
}

// New validates page parameters. Zero values select the defaults, negative
// values are rejected, and sizes above MaxPageSize are clamped.
func New(page, size int64) (Page, error) {
	if page == 0 {
		page = DefaultPage
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return Page{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if size < 1 {
		return Page{}, fmt.Errorf("page_size must be >= 1, got %d", size)
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: page, Size: size}, nil
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int64 {
	return (p.Number - 1) * p.Size
}

// Limit returns the maximum number of rows to return.
func (p Page) Limit() int64 {
	return p.Size
}

// TotalPages computes the page count for a given total row count.
func (p Page) TotalPages(total int64) int64 {
	if total <= 0 {
		return 0
	}
	return (total + p.Size - 1) / p.Size
}
