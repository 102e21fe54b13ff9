package repo

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/fleetdesk-backend/pkg/pagination"
	"gorm.io/gorm"
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

// Page counts the filtered rows, then loads one ordered page into dest.
// Ordering and preloads are applied to the page query only.
func Page(query *gorm.DB, params pagination.Params, order string, dest any, preloads ...string) (pagination.Meta, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return pagination.Meta{}, err
	}
	n := params.Normalize()
	q := query.Session(&gorm.Session{})
	if order != "" {
		q = q.Order(order)
	}
	for _, assoc := range preloads {
		q = q.Preload(assoc)
	}
	if err := q.Offset(n.Offset()).Limit(n.Limit).Find(dest).Error; err != nil {
		return pagination.Meta{}, err
	}
	return pagination.NewMeta(n, total), nil
}

// Within restricts column to [start, end]. Either bound may be nil.
func Within(query *gorm.DB, column string, start, end *time.Time) *gorm.DB {
	if start != nil {
		query = query.Where(column+" >= ?", *start)
	}
	if end != nil {
		query = query.Where(column+" <= ?", *end)
	}
	return query
}

// Search adds a case-insensitive LIKE across columns for a free-text term.
func Search(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(term) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]any, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, "LOWER("+col+") LIKE ?")
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}
