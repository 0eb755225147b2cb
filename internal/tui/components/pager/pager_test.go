package pager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recyclerview/recycler/internal/window"
)

type testRecord struct {
	page int
	seq  int
}

type testView struct {
	record testRecord
}

func (v *testView) View() string {
	line := fmt.Sprintf("p%d-%d", v.record.page, v.record.seq)
	return line + "\n" + line // every view is two rows tall
}

type testSource struct {
	mu    sync.Mutex
	calls []int
	fail  error
	total int
}

func (s *testSource) fetch(_ context.Context, page int) ([]testRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, page)
	if s.fail != nil {
		return nil, s.fail
	}
	const pageSize = 3
	records := make([]testRecord, 0, pageSize)
	for i := range pageSize {
		if s.total > 0 && page*pageSize+i >= s.total {
			break
		}
		records = append(records, testRecord{page: page, seq: i})
	}
	return records, nil
}

func (s *testSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func newTestPager(t *testing.T, src *testSource) *Model[testRecord] {
	t.Helper()
	m, err := New(window.Config[testRecord]{
		FetchPage:  src.fetch,
		CreateView: func(r testRecord) window.View { return &testView{record: r} },
		BindView: func(r testRecord, v window.View) window.View {
			v.(*testView).record = r
			return v
		},
		PageSize: 3,
	})
	require.NoError(t, err)
	return m
}

// drain executes a command tree to quiescence, feeding every produced
// message back into the model.
func drain(m *Model[testRecord], cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if msg == nil {
		return
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(m, c)
		}
		return
	}
	_, next := m.Update(msg)
	drain(m, next)
}

func resize(m *Model[testRecord], width, height int) {
	_, cmd := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	drain(m, cmd)
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	_, err := New(window.Config[testRecord]{})
	assert.ErrorIs(t, err, window.ErrNoFetcher)
}

func TestMountLoadsFirstPage(t *testing.T) {
	t.Parallel()
	src := &testSource{}
	m := newTestPager(t, src)

	// No dimensions yet: nothing intersects, nothing is fetched.
	drain(m, m.Init())
	assert.Equal(t, 0, src.callCount())

	resize(m, 40, 12)
	assert.Equal(t, 3, m.mgr.Len())
	start, end := m.mgr.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)
	// The top sentinel fired too, but page zero has nothing earlier.
	assert.Equal(t, []int{0}, src.calls)
}

func TestScrollingRecyclesDownward(t *testing.T) {
	t.Parallel()
	src := &testSource{}
	m := newTestPager(t, src)
	resize(m, 40, 12)

	for range 12 {
		drain(m, m.scrollBy(4))
	}

	assert.Equal(t, 6, m.mgr.Len(), "pool capped at twice the page size")
	start, _ := m.mgr.Range()
	assert.Greater(t, start, 0, "scrolling far enough recycles the head")
	assert.GreaterOrEqual(t, m.offset, 0)
}

func TestScrollingBackRecyclesUpward(t *testing.T) {
	t.Parallel()
	src := &testSource{}
	m := newTestPager(t, src)
	resize(m, 40, 12)

	for range 12 {
		drain(m, m.scrollBy(4))
	}
	start, _ := m.mgr.Range()
	require.Greater(t, start, 0)

	for range 30 {
		drain(m, m.scrollBy(-4))
	}
	start, _ = m.mgr.Range()
	assert.Equal(t, 0, start, "scrolling back to the top rewinds the window")
	assert.GreaterOrEqual(t, m.offset, 0)
}

func TestViewPlacesPooledViews(t *testing.T) {
	t.Parallel()
	src := &testSource{}
	m := newTestPager(t, src)
	resize(m, 40, 12)

	view := m.View()
	assert.Contains(t, view, "p0-0")
	assert.Contains(t, view, "pages 0–1 · 3 views pooled")
	assert.Equal(t, 12, strings.Count(view, "\n")+1, "view fills the window height")
}

func TestTallViewportFillStaysBounded(t *testing.T) {
	t.Parallel()
	src := &testSource{}
	m := newTestPager(t, src)

	// A viewport far taller than a full pool's rendered content keeps the
	// bottom sentinel permanently visible. The fill must stop at the pool
	// bound instead of fetching and recycling forever on its own.
	resize(m, 40, 80)
	assert.Equal(t, 2, src.callCount(), "fill stops once the pool is full")
	assert.Equal(t, 6, m.mgr.Len())
	start, _ := m.mgr.Range()
	assert.Equal(t, 0, start, "no recycling without user input")

	// Scrolling re-arms the boundary: one more fetch per movement.
	drain(m, m.scrollBy(4))
	assert.Equal(t, 3, src.callCount())
}

func TestFetchErrorSurfacesAndRetries(t *testing.T) {
	t.Parallel()
	src := &testSource{fail: errors.New("boom")}
	m := newTestPager(t, src)
	resize(m, 40, 12)

	assert.Equal(t, 1, src.callCount(), "no automatic retry loop")
	assert.Equal(t, 0, m.mgr.Len())
	assert.Contains(t, m.View(), "fetch page 0")

	// The source recovers; the next scroll retries the boundary.
	src.fail = nil
	drain(m, m.scrollBy(1))
	assert.Equal(t, 3, m.mgr.Len())
	assert.NotContains(t, m.View(), "fetch page 0")
}

func TestExhaustedSourceStopsFetching(t *testing.T) {
	t.Parallel()
	src := &testSource{total: 4} // page 1 is short, page 2 would be empty
	m := newTestPager(t, src)
	resize(m, 40, 12)

	for range 12 {
		drain(m, m.scrollBy(4))
	}
	calls := src.callCount()
	for range 6 {
		drain(m, m.scrollBy(4))
	}
	assert.Equal(t, calls, src.callCount(), "an exhausted bottom stays quiet")
	assert.Equal(t, 4, m.mgr.Len())
}
