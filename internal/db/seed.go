package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var seedSentences = []string{
	"Scrolling should feel endless even when the dataset is not.",
	"The widget keeps a fixed pool of views and rebinds them in place.",
	"Every page fetch is driven by a sentinel entering the viewport.",
	"Recycled views carry their last position until the next layout pass.",
	"Margins are applied per edge, so neighbours sit two margins apart.",
	"The database only ever sees limit and offset.",
}

// Seed inserts demo records into an empty feed_items table. A table that
// already has rows is left alone.
func Seed(ctx context.Context, db *sql.DB, rows int) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_items`).Scan(&count); err != nil {
		return fmt.Errorf("db: count feed items: %w", err)
	}
	if count > 0 || rows <= 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO feed_items (id, title, body, created_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("db: prepare seed: %w", err)
	}
	defer stmt.Close()

	base := time.Now().Add(-time.Duration(rows) * time.Minute).Unix()
	for i := range rows {
		n := i%3 + 1
		parts := make([]string, 0, n)
		for j := range n {
			parts = append(parts, seedSentences[(i+j)%len(seedSentences)])
		}
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			fmt.Sprintf("Entry %d", i+1),
			strings.Join(parts, " "),
			base+int64(i)*60,
		)
		if err != nil {
			return fmt.Errorf("db: seed row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit seed: %w", err)
	}
	slog.Info("seeded feed items", "rows", rows)
	return nil
}
