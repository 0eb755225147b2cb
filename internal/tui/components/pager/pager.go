// Package pager is the self-driving widget over the window manager: it
// mounts the skeleton (top sentinel, content region, bottom sentinel),
// translates scroll input into visibility events, and paints the pool at
// the positions the layout engine computed.
package pager

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/recyclerview/recycler/internal/observe"
	"github.com/recyclerview/recycler/internal/window"
)

const (
	topSentinelID    = "top"
	bottomSentinelID = "bottom"

	wheelScrollSize = 2
)

// BoundaryMsg reports a finished boundary reaction back to the update loop.
type BoundaryMsg struct {
	Which window.Boundary
	Err   error
}

type Option func(*options)

type options struct {
	threshold float64
	keyMap    KeyMap
}

// WithThreshold overrides the observer's visible-fraction threshold.
func WithThreshold(threshold float64) Option {
	return func(o *options) { o.threshold = threshold }
}

func WithKeyMap(keyMap KeyMap) Option {
	return func(o *options) { o.keyMap = keyMap }
}

// Model is the pager widget. It owns the window manager and the observer
// and is entirely reactive: after Init the first observe pass sees the
// bottom sentinel and loads the first page, and every later fetch is driven
// by scrolling.
type Model[T any] struct {
	mgr    *window.Manager[T]
	obs    *observe.Viewport
	keyMap KeyMap

	width, height int

	// offset is lines scrolled below the content origin; origin is the
	// content-space position of the top sentinel. Layout may move the
	// origin (content grows upward), offset is re-anchored so the viewport
	// appears stationary.
	offset int
	origin int

	// lastLen is the pool size as of the last observe pass; a boundary
	// reaction that grew the pool is part of the initial fill and may fire
	// again without user input.
	lastLen int

	status  string
	pending []window.Boundary
}

var (
	sentinelStyle = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Bold(true)
)

// New validates the configuration and mounts the widget skeleton. A broken
// config fails here, not at the first scroll event.
func New[T any](cfg window.Config[T], opts ...Option) (*Model[T], error) {
	mgr, err := window.New(cfg)
	if err != nil {
		return nil, err
	}
	o := options{
		threshold: observe.DefaultThreshold,
		keyMap:    DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	m := &Model[T]{mgr: mgr, keyMap: o.keyMap}
	m.obs = observe.New(o.threshold, m.onVisibility)
	return m, nil
}

func (m *Model[T]) Init() tea.Cmd {
	return m.react()
}

func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.react()

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelDown:
			return m, m.scrollBy(wheelScrollSize)
		case tea.MouseWheelUp:
			return m, m.scrollBy(-wheelScrollSize)
		}
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Down):
			return m, m.scrollBy(1)
		case key.Matches(msg, m.keyMap.Up):
			return m, m.scrollBy(-1)
		case key.Matches(msg, m.keyMap.HalfPageDown):
			return m, m.scrollBy(m.viewportHeight() / 2)
		case key.Matches(msg, m.keyMap.HalfPageUp):
			return m, m.scrollBy(-m.viewportHeight() / 2)
		case key.Matches(msg, m.keyMap.PageDown):
			return m, m.scrollBy(m.viewportHeight())
		case key.Matches(msg, m.keyMap.PageUp):
			return m, m.scrollBy(-m.viewportHeight())
		case key.Matches(msg, m.keyMap.Home):
			return m, m.scrollBy(-m.offset)
		case key.Matches(msg, m.keyMap.End):
			return m, m.scrollBy(m.maxOffset() - m.offset)
		}
		return m, nil

	case BoundaryMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			return m, nil
		}
		m.status = ""
		if m.mgr.Len() > m.lastLen && m.mgr.Len() < 2*m.mgr.PageSize() {
			// Still filling an oversized viewport: the pool grew and has
			// room left, so the sentinel may fire again without input.
			// Once the pool is at its bound, only scrolling re-arms it.
			m.obs.Reset(sentinelID(msg.Which))
		}
		return m, m.react()
	}
	return m, nil
}

// react re-anchors the viewport, runs one observe pass, and turns any newly
// visible boundaries into fetch commands. Both boundaries reported in one
// pass are handled independently, top first.
func (m *Model[T]) react() tea.Cmd {
	m.anchor()
	m.syncTargets()
	m.obs.Observe(m.origin+m.offset, m.viewportHeight())
	if len(m.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, b := range m.pending {
		cmds = append(cmds, m.load(b))
	}
	m.pending = m.pending[:0]
	return tea.Batch(cmds...)
}

// onVisibility is the observer callback; only entries currently
// intersecting are acted on.
func (m *Model[T]) onVisibility(entries []observe.Entry) {
	for _, e := range entries {
		if !e.Intersecting {
			continue
		}
		switch e.ID {
		case topSentinelID:
			m.pending = append(m.pending, window.Top)
		case bottomSentinelID:
			m.pending = append(m.pending, window.Bottom)
		}
	}
}

func (m *Model[T]) load(which window.Boundary) tea.Cmd {
	return func() tea.Msg {
		return BoundaryMsg{
			Which: which,
			Err:   m.mgr.OnBoundaryVisible(context.Background(), which),
		}
	}
}

func (m *Model[T]) scrollBy(n int) tea.Cmd {
	if n == 0 {
		return nil
	}
	// A scroll re-arms both boundaries: a sentinel that never leaves the
	// viewport fires at most once per user movement, never on its own.
	m.obs.Reset(topSentinelID)
	m.obs.Reset(bottomSentinelID)
	m.offset = clamp(m.offset+n, 0, m.maxOffset())
	return m.react()
}

// anchor compensates for origin shifts: when a recycle moves the top
// sentinel, the first visible content line keeps its content-space
// position.
func (m *Model[T]) anchor() {
	top, _ := m.mgr.Sentinels()
	if top != m.origin {
		m.offset += m.origin - top
		m.origin = top
	}
	m.offset = clamp(m.offset, 0, m.maxOffset())
}

func (m *Model[T]) syncTargets() {
	top, bottom := m.mgr.Sentinels()
	m.lastLen = m.mgr.Len()
	m.obs.SetTargets(
		observe.Target{ID: topSentinelID, Top: top, Height: window.SentinelHeight},
		observe.Target{ID: bottomSentinelID, Top: bottom, Height: window.SentinelHeight},
	)
}

func (m *Model[T]) viewportHeight() int {
	return max(0, m.height-1) // one row reserved for the status bar
}

func (m *Model[T]) maxOffset() int {
	return max(0, m.mgr.Extent()-m.viewportHeight())
}

func (m *Model[T]) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	vh := m.viewportHeight()
	rows := make([]string, vh)
	bandTop := m.origin + m.offset

	place := func(pos int, lines []string) {
		for i, line := range lines {
			if row := pos + i - bandTop; row >= 0 && row < vh {
				rows[row] = line
			}
		}
	}

	topPos, bottomPos := m.mgr.Sentinels()
	marker := sentinelStyle.Render(strings.Repeat("┄", min(m.width, 12)))
	place(topPos, []string{marker})
	place(bottomPos, []string{marker})

	for _, s := range m.mgr.Slots() {
		lines := strings.Split(s.View.View(), "\n")
		if s.Pos+len(lines) <= bandTop || s.Pos >= bandTop+vh {
			continue
		}
		place(s.Pos, lines)
	}

	return strings.Join(rows, "\n") + "\n" + m.statusBar()
}

func (m *Model[T]) statusBar() string {
	if m.status != "" {
		return errorStyle.Width(m.width).Render(m.status)
	}
	start, end := m.mgr.Range()
	bar := fmt.Sprintf("pages %d–%d · %d views pooled", start, end, m.mgr.Len())
	return statusStyle.Width(m.width).Render(bar)
}

func sentinelID(b window.Boundary) string {
	if b == window.Top {
		return topSentinelID
	}
	return bottomSentinelID
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
