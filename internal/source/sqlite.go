package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/recyclerview/recycler/internal/feed"
)

// SQLite pages through the feed_items table in insertion order.
type SQLite struct {
	db       *sql.DB
	pageSize int
}

func NewSQLite(db *sql.DB, pageSize int) *SQLite {
	return &SQLite{db: db, pageSize: pageSize}
}

func (s *SQLite) FetchPage(ctx context.Context, page int) ([]feed.Item, error) {
	if page < 0 {
		return nil, fmt.Errorf("source: negative page index %d", page)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, body, created_at
		FROM feed_items
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`,
		s.pageSize, page*s.pageSize,
	)
	if err != nil {
		return nil, fmt.Errorf("source: query page %d: %w", page, err)
	}
	defer rows.Close()

	var items []feed.Item
	for rows.Next() {
		var (
			item    feed.Item
			created int64
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &created); err != nil {
			return nil, fmt.Errorf("source: scan page %d: %w", page, err)
		}
		item.CreatedAt = time.Unix(created, 0).UTC()
		items = append(items, item)
	}
	return items, rows.Err()
}
