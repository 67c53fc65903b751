package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/vendora-backend/pkg/pagination"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// CursorWindow applies the keyset predicate shared by every cursor-paginated
// list. Rows are ordered newest first on (created_at, id).
func CursorWindow(q *gorm.DB, cursor *pagination.Cursor) *gorm.DB {
	q = q.Order("created_at DESC, id DESC")
	if cursor == nil {
		return q
	}
	return q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
}
