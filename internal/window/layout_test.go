package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(m *Manager[testRecord]) []int {
	pos := make([]int, len(m.pool))
	for i, s := range m.pool {
		pos[i] = s.pos
	}
	return pos
}

func heights(m *Manager[testRecord]) []int {
	hs := make([]int, len(m.pool))
	for i, s := range m.pool {
		hs[i] = m.measure(s.view)
	}
	return hs
}

func TestLayoutDownMonotonicity(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, 3)

	trigger(t, m, Bottom)
	trigger(t, m, Bottom)

	pos := positions(m)
	hs := heights(m)
	assert.Equal(t, 0, pos[0], "first placement anchors at zero")
	for i := 1; i < len(pos); i++ {
		assert.Equal(t, pos[i-1]+hs[i-1]+2*Margin, pos[i],
			"slot %d sits one gap below its predecessor", i)
	}
}

func TestLayoutDownIdempotent(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, 3)

	trigger(t, m, Bottom)
	trigger(t, m, Bottom)

	before := positions(m)
	m.layoutDown()
	assert.Equal(t, before, positions(m))
	m.layoutDown()
	assert.Equal(t, before, positions(m))
}

func TestSentinelBracketing(t *testing.T) {
	t.Parallel()

	check := func(t *testing.T, m *Manager[testRecord]) {
		t.Helper()
		pos := positions(m)
		hs := heights(m)
		last := len(pos) - 1
		top, bottom := m.Sentinels()
		assert.Equal(t, pos[0], top, "top sentinel on the first view")
		assert.Equal(t, pos[last]+hs[last]+2*Margin, bottom,
			"bottom sentinel one gap below the last view")
	}

	t.Run("after down passes", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestManager(t, 2)
		trigger(t, m, Bottom)
		check(t, m)
		trigger(t, m, Bottom)
		trigger(t, m, Bottom)
		check(t, m)
	})

	t.Run("after a top pass", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestManager(t, 2)
		trigger(t, m, Bottom)
		trigger(t, m, Bottom)
		trigger(t, m, Bottom)
		trigger(t, m, Top)
		check(t, m)
	})

	t.Run("empty pool", func(t *testing.T) {
		t.Parallel()
		m, _ := newTestManager(t, 2)
		top, bottom := m.Sentinels()
		assert.Equal(t, 0, top)
		assert.Equal(t, 0, bottom)
		assert.Equal(t, SentinelHeight, m.Extent())
	})
}

func TestRecycleDownKeepsAnchor(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, 2)

	trigger(t, m, Bottom)
	trigger(t, m, Bottom)
	anchor := m.pool[2].pos // becomes the head after the recycle

	trigger(t, m, Bottom)
	assert.Equal(t, anchor, m.pool[0].pos,
		"the surviving head keeps its position, no visual jump")
}

func TestLayoutTopWalk(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, 2)

	trigger(t, m, Bottom)
	trigger(t, m, Bottom)
	trigger(t, m, Bottom) // pool [c d a b], start=1
	keptPos := []int{m.pool[0].pos, m.pool[1].pos}

	trigger(t, m, Top) // pool [a b c d], a b rebound to page 0
	require.Equal(t, 4, m.Len())

	pos := positions(m)
	hs := heights(m)
	// Rebound head views stack upward from the kept anchor.
	for i := m.cfg.PageSize - 1; i >= 0; i-- {
		assert.Equal(t, pos[i+1]-hs[i]-2*Margin, pos[i], "slot %d", i)
	}
	// Kept views did not move.
	assert.Equal(t, keptPos[0], pos[2])
	assert.Equal(t, keptPos[1], pos[3])
}

func TestExtentTracksContent(t *testing.T) {
	t.Parallel()
	m, _ := newTestManager(t, 3)

	trigger(t, m, Bottom)
	top, bottom := m.Sentinels()
	assert.Equal(t, bottom+SentinelHeight-top, m.Extent())

	trigger(t, m, Bottom)
	top, bottom = m.Sentinels()
	assert.Equal(t, bottom+SentinelHeight-top, m.Extent())
	assert.Greater(t, m.Extent(), 0)
}
