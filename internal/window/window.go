// Package window implements the windowed view pool behind the pager widget.
// It decides which data pages to fetch, which views to recycle versus
// create, and where every pooled view sits in the virtual canvas. The
// rendering substrate and the data source are supplied by the host through
// Config; the manager never touches the terminal itself.
package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss/v2"
)

// View is a single recyclable UI element. The manager only ever measures it;
// drawing is the widget's job.
type View interface {
	View() string
}

// Boundary identifies one of the two scroll sentinels.
type Boundary int

const (
	Top Boundary = iota
	Bottom
)

func (b Boundary) String() string {
	if b == Top {
		return "top"
	}
	return "bottom"
}

// Configuration errors, reported by New before any scroll event can happen.
var (
	ErrNoFetcher     = errors.New("window: config is missing FetchPage")
	ErrNoViewFactory = errors.New("window: config is missing CreateView or BindView")
	ErrBadPageSize   = errors.New("window: PageSize must be a positive integer")
)

// Config supplies the capabilities the manager consumes: a paged data
// source and a view factory. PageSize is fixed for the manager's lifetime.
type Config[T any] struct {
	// FetchPage returns the records of a single page. It may block; the
	// manager calls it with the caller's context.
	FetchPage func(ctx context.Context, page int) ([]T, error)
	// CreateView builds a brand-new view for a record (append phase).
	CreateView func(record T) View
	// BindView rebinds an existing view to a new record (recycle phase).
	BindView func(record T, view View) View
	// PageSize is the number of records per page. The pool is bounded by
	// twice this value.
	PageSize int
}

func (c Config[T]) validate() error {
	if c.FetchPage == nil {
		return ErrNoFetcher
	}
	if c.CreateView == nil || c.BindView == nil {
		return ErrNoViewFactory
	}
	if c.PageSize <= 0 {
		return ErrBadPageSize
	}
	return nil
}

// slot is the pool's bookkeeping for one live view. The vertical position
// lives here, not on the rendered element, so recycle passes can read the
// last computed layout without querying the substrate.
type slot[T any] struct {
	view   View
	record T
	pos    int
	placed bool
}

// Placed is a render-ready snapshot of one pooled view.
type Placed struct {
	View View
	Pos  int
}

// Manager owns the pool and the page-range cursors. Boundary reactions run
// inside tea commands, so all state is guarded by a mutex; the per-boundary
// in-flight flags additionally serialize each boundary's fetches.
type Manager[T any] struct {
	mu  sync.Mutex
	cfg Config[T]

	pool []*slot[T]

	// start is the earliest page currently represented, end the next page
	// to fetch when scrolling down. start never goes below zero.
	start, end int

	// inflight drops re-triggers for a boundary whose fetch is pending.
	inflight [2]bool

	// exhausted is set when the source returns an empty or short page going
	// down; cleared by a successful recycle up.
	exhausted bool

	topSentinel, bottomSentinel int

	// measure reports a view's height. Replaceable in tests.
	measure func(View) int
}

// New validates the configuration and returns a manager with an empty pool.
func New[T any](cfg Config[T]) (*Manager[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Manager[T]{
		cfg:     cfg,
		measure: func(v View) int { return lipgloss.Height(v.View()) },
	}, nil
}

// limit is the pool bound: 2 x PageSize.
func (m *Manager[T]) limit() int { return 2 * m.cfg.PageSize }

// OnBoundaryVisible reacts to a sentinel entering the viewport. It fetches
// the page for that direction, mutates the pool, and re-runs layout.
// Cursors only advance after a successful fetch, so an error leaves the
// manager exactly as it was. A trigger for a boundary whose fetch is still
// pending is dropped, as is a top trigger when there is nothing earlier to
// load.
func (m *Manager[T]) OnBoundaryVisible(ctx context.Context, which Boundary) error {
	m.mu.Lock()
	if m.inflight[which] {
		m.mu.Unlock()
		return nil
	}
	var page int
	switch which {
	case Top:
		if m.start == 0 {
			m.mu.Unlock()
			return nil
		}
		page = m.start - 1
	case Bottom:
		if m.exhausted {
			m.mu.Unlock()
			return nil
		}
		page = m.end
	}
	m.inflight[which] = true
	m.mu.Unlock()

	records, err := m.cfg.FetchPage(ctx, page)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.inflight[which] = false
	if err != nil {
		return fmt.Errorf("window: fetch page %d: %w", page, err)
	}
	if len(records) > m.cfg.PageSize {
		// Oversized pages are truncated to keep the recycle math aligned.
		records = records[:m.cfg.PageSize]
	}
	if which == Top {
		m.recycleUp(page, records)
		return nil
	}
	m.growDown(page, records)
	return nil
}

// growDown handles a bottom-boundary fetch result: append while the pool is
// below its limit, recycle the oldest PageSize views once at it.
func (m *Manager[T]) growDown(page int, records []T) {
	if page != m.end {
		// A recycle up completed while this fetch was pending; the page no
		// longer lines up with the cursor.
		return
	}
	switch {
	case len(records) == 0:
		m.exhausted = true

	case len(m.pool) < m.limit():
		if len(records) < m.cfg.PageSize {
			m.exhausted = true
		}
		if free := m.limit() - len(m.pool); len(records) > free {
			records = records[:free]
		}
		for _, r := range records {
			m.pool = append(m.pool, &slot[T]{view: m.cfg.CreateView(r), record: r})
		}
		m.end++

	default:
		if len(records) < m.cfg.PageSize {
			// A short page cannot rebind a full recycle set; treat it as
			// the end of the data instead of leaving half-stale views.
			m.exhausted = true
			return
		}
		size := m.cfg.PageSize
		recycled := make([]*slot[T], size)
		copy(recycled, m.pool[:size])
		next := make([]*slot[T], 0, len(m.pool))
		next = append(next, m.pool[size:]...)
		next = append(next, recycled...)
		m.pool = next
		for i, r := range records {
			s := recycled[i]
			s.record = r
			s.view = m.cfg.BindView(r, s.view)
		}
		m.start++
		m.end++
	}
	m.layoutDown()
}

// recycleUp handles a top-boundary fetch result: the newest PageSize views
// move to the head of the pool and are rebound to the earlier page.
func (m *Manager[T]) recycleUp(page int, records []T) {
	if m.start == 0 || page != m.start-1 {
		return
	}
	if len(records) < m.cfg.PageSize {
		// Earlier pages are expected to be full; reject anything else.
		return
	}
	size := m.cfg.PageSize
	kept := make([]*slot[T], size)
	copy(kept, m.pool[:size])
	moved := make([]*slot[T], len(m.pool)-size)
	copy(moved, m.pool[size:])
	next := make([]*slot[T], 0, len(m.pool))
	next = append(next, moved...)
	next = append(next, kept...)
	m.pool = next
	for i, r := range records {
		s := moved[i]
		s.record = r
		s.view = m.cfg.BindView(r, s.view)
	}
	m.start--
	m.end--
	m.exhausted = false
	m.layoutTop()
}

// Slots returns a snapshot of the pool in top-to-bottom order.
func (m *Manager[T]) Slots() []Placed {
	m.mu.Lock()
	defer m.mu.Unlock()
	placed := make([]Placed, len(m.pool))
	for i, s := range m.pool {
		placed[i] = Placed{View: s.view, Pos: s.pos}
	}
	return placed
}

// Records returns the records currently bound to the pool, in pool order.
func (m *Manager[T]) Records() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	records := make([]T, len(m.pool))
	for i, s := range m.pool {
		records[i] = s.record
	}
	return records
}

// Sentinels returns the positions of the top and bottom boundary markers.
func (m *Manager[T]) Sentinels() (top, bottom int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.topSentinel, m.bottomSentinel
}

// Extent is the rendered height of the content, sentinels included.
func (m *Manager[T]) Extent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bottomSentinel + SentinelHeight - m.topSentinel
}

// Range returns the current page cursors.
func (m *Manager[T]) Range() (start, end int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start, m.end
}

// Len is the number of live views in the pool.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pool)
}

// PageSize returns the configured page size.
func (m *Manager[T]) PageSize() int { return m.cfg.PageSize }
