package window

// The position engine. Both passes are pure functions of the pool plus the
// measured view heights: running one twice in a row computes the same
// positions. Heights are taken from the substrate exactly once per pass.

const (
	// Margin is the vertical gap each edge contributes between two stacked
	// views; neighbours end up 2*Margin apart.
	Margin = 1

	// SentinelHeight is the height of a boundary marker row.
	SentinelHeight = 1
)

// layoutDown walks the pool front to back. The first slot anchors the pass:
// it keeps its last position, or position zero on its very first placement,
// and every later slot sits below its predecessor plus the gap. Used after
// appends and downward recycles so the freshly bound tail flows from the
// untouched head.
func (m *Manager[T]) layoutDown() {
	if len(m.pool) == 0 {
		m.topSentinel, m.bottomSentinel = 0, 0
		return
	}
	heights := m.measureAll()

	first := m.pool[0]
	if !first.placed {
		first.pos = 0
		first.placed = true
	}
	for i := 1; i < len(m.pool); i++ {
		prev := m.pool[i-1]
		m.pool[i].pos = prev.pos + heights[i-1] + 2*Margin
		m.pool[i].placed = true
	}
	m.placeSentinels(heights)
}

// layoutTop walks the first PageSize slots back to front, anchoring on the
// slot just after them, which kept its position through the recycle. The
// rebound head views stack upward from that anchor; positions may go
// negative, the widget normalizes against the top sentinel.
func (m *Manager[T]) layoutTop() {
	if len(m.pool) == 0 {
		m.topSentinel, m.bottomSentinel = 0, 0
		return
	}
	heights := m.measureAll()

	for i := min(m.cfg.PageSize, len(m.pool)) - 1; i >= 0; i-- {
		if i+1 < len(m.pool) {
			m.pool[i].pos = m.pool[i+1].pos - heights[i] - 2*Margin
		}
		m.pool[i].placed = true
	}
	m.placeSentinels(heights)
}

// placeSentinels brackets the pool: the top sentinel sits on the first
// view's position, the bottom sentinel one gap below the last view.
func (m *Manager[T]) placeSentinels(heights []int) {
	last := len(m.pool) - 1
	m.topSentinel = m.pool[0].pos
	m.bottomSentinel = m.pool[last].pos + heights[last] + 2*Margin
}

func (m *Manager[T]) measureAll() []int {
	heights := make([]int, len(m.pool))
	for i, s := range m.pool {
		heights[i] = m.measure(s.view)
	}
	return heights
}
