// Package source provides paged data sources for the pager: a SQLite-backed
// one for real data and a deterministic generated one for demos and tests.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recyclerview/recycler/internal/feed"
)

// Source is the paged-fetch capability consumed by the window manager.
type Source[T any] interface {
	FetchPage(ctx context.Context, page int) ([]T, error)
}

var sentences = []string{
	"The pool never grows past twice the page size.",
	"Views that scroll out of reach are rebound, not rebuilt.",
	"Each layout pass measures every view exactly once.",
	"Positions are bookkeeping; the terminal is never queried back.",
	"A short page marks the end of the data.",
	"Sentinels bracket the pool and drive every fetch.",
}

// Generated is an in-memory source producing a fixed number of
// deterministic items. Item bodies vary in length so view heights differ.
type Generated struct {
	pageSize int
	total    int
	base     time.Time
}

// NewGenerated returns a source with total items split into pageSize pages.
// A non-positive total means unbounded.
func NewGenerated(pageSize, total int) *Generated {
	return &Generated{
		pageSize: pageSize,
		total:    total,
		base:     time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (g *Generated) FetchPage(ctx context.Context, page int) ([]feed.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 {
		return nil, fmt.Errorf("source: negative page index %d", page)
	}
	first := page * g.pageSize
	last := first + g.pageSize
	if g.total > 0 {
		last = min(last, g.total)
	}
	if first >= last {
		return nil, nil
	}
	items := make([]feed.Item, 0, last-first)
	for i := first; i < last; i++ {
		items = append(items, feed.Item{
			ID:        fmt.Sprintf("gen-%06d", i),
			Title:     fmt.Sprintf("Entry %d", i+1),
			Body:      bodyFor(i),
			CreatedAt: g.base.Add(time.Duration(i) * time.Minute),
		})
	}
	return items, nil
}

// bodyFor composes 1..3 sentences, cycling through the corpus.
func bodyFor(i int) string {
	n := i%3 + 1
	parts := make([]string, 0, n)
	for j := range n {
		parts = append(parts, sentences[(i+j)%len(sentences)])
	}
	return strings.Join(parts, " ")
}
