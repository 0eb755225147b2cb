// Package feed holds the demo record type and its view factory. Views are
// lipgloss cards of varying height, which keeps the position engine honest.
package feed

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"github.com/recyclerview/recycler/internal/window"
)

// DefaultCardWidth is the fixed rendered width of an item card. Cards keep
// their width across terminal resizes so measured heights stay stable.
const DefaultCardWidth = 64

// Item is one feed record.
type Item struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

// Factory builds and rebinds item views for the window manager.
type Factory struct {
	width int
}

func NewFactory(width int) Factory {
	if width <= 0 {
		width = DefaultCardWidth
	}
	return Factory{width: width}
}

// Create builds a brand-new view bound to item.
func (f Factory) Create(item Item) window.View {
	v := &view{width: f.width}
	v.bind(item)
	return v
}

// Bind rebinds an existing view to item, falling back to Create when handed
// a view it does not own.
func (f Factory) Bind(item Item, w window.View) window.View {
	v, ok := w.(*view)
	if !ok {
		return f.Create(item)
	}
	v.bind(item)
	return v
}

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Faint(true)
)

// view renders one item as a bordered card. The rendered string is cached
// until the next bind so a layout pass measures each view only once.
type view struct {
	width    int
	item     Item
	rendered string
}

func (v *view) bind(item Item) {
	v.item = item
	v.rendered = ""
}

func (v *view) View() string {
	if v.rendered == "" {
		v.rendered = v.render()
	}
	return v.rendered
}

func (v *view) render() string {
	inner := v.width - 4 // border and padding
	var b strings.Builder
	b.WriteString(titleStyle.Width(inner).Render(v.item.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(v.item.Body))
	b.WriteString("\n")
	b.WriteString(metaStyle.Width(inner).Render(v.item.CreatedAt.Format("2006-01-02 15:04")))
	return cardStyle.Width(v.width - 2).Render(b.String())
}
