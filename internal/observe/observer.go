// Package observe provides the visibility-detection capability the pager
// consumes: it watches a set of target rows in content space and reports
// which of them crossed the visible-fraction threshold since the last pass.
package observe

// DefaultThreshold is the minimum visible fraction of a target that counts
// as intersecting.
const DefaultThreshold = 0.2

// Target is a watched element: an identity plus its extent in content space.
type Target struct {
	ID     string
	Top    int
	Height int
}

// Entry reports one target whose intersection state changed.
type Entry struct {
	ID           string
	Intersecting bool
}

// Callback receives the changed entries of a single pass, in target
// registration order.
type Callback func(entries []Entry)

// Viewport tracks intersection state between registered targets and a
// scrolling window. It is driven explicitly through Observe; there is no
// background machinery.
type Viewport struct {
	threshold float64
	cb        Callback
	targets   []Target
	state     map[string]bool
}

// New returns an observer with the given threshold; values outside (0, 1]
// fall back to DefaultThreshold.
func New(threshold float64, cb Callback) *Viewport {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Viewport{
		threshold: threshold,
		cb:        cb,
		state:     make(map[string]bool),
	}
}

// SetTargets replaces the watched set. Intersection state carries over by
// ID, so moving a known target does not re-fire an unchanged state.
func (v *Viewport) SetTargets(targets ...Target) {
	v.targets = targets
}

// Observe runs one pass over the targets for a viewport spanning
// [viewTop, viewTop+viewHeight) and invokes the callback with the entries
// whose state changed. Nothing changed means no callback.
func (v *Viewport) Observe(viewTop, viewHeight int) {
	var changed []Entry
	for _, t := range v.targets {
		now := v.fraction(t, viewTop, viewHeight) >= v.threshold
		if now != v.state[t.ID] {
			v.state[t.ID] = now
			changed = append(changed, Entry{ID: t.ID, Intersecting: now})
		}
	}
	if len(changed) > 0 && v.cb != nil {
		v.cb(changed)
	}
}

// Reset forgets the recorded state for id. The next pass reports the target
// again even if it never left the viewport; callers use this after mutating
// content under a still-visible target.
func (v *Viewport) Reset(id string) {
	delete(v.state, id)
}

func (v *Viewport) fraction(t Target, viewTop, viewHeight int) float64 {
	height := max(t.Height, 1)
	top := max(t.Top, viewTop)
	bottom := min(t.Top+height, viewTop+viewHeight)
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(height)
}
