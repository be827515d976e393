package m_category

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data is the row model for the categories table.
type Data struct {
	ID          int64              `spanner:"id"`
	Name        string             `spanner:"name"`
	Description spanner.NullString `spanner:"description"`
	CreatedAt   time.Time          `spanner:"created_at"`
	UpdatedAt   time.Time          `spanner:"updated_at"`
}
