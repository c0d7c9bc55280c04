package search

import (
	"sort"

	"lookout/internal/domain"
)

// DefaultShortcutSlots is the number of positional shortcuts (1..5)
const DefaultShortcutSlots = 5

// Renderer is the UI side of the result list. Every call happens on the
// event loop.
type Renderer interface {
	Clear()
	Append(items ...*domain.ResultItem)
	Refresh(item *domain.ResultItem)
	Remove(item *domain.ResultItem)
	FocusFirst()
}

// Builder merges, sorts and numbers the items of one cycle
type Builder struct {
	slots int
}

// NewBuilder creates a builder assigning at most slots shortcuts
func NewBuilder(slots int) *Builder {
	if slots <= 0 {
		slots = DefaultShortcutSlots
	}
	return &Builder{slots: slots}
}

// Build replaces the rendered list with items ordered by ascending
// priority. Equal priorities keep their input order. Shortcut slots go to
// opted-in items in that order; running it twice on the same input gives
// the same result.
func (b *Builder) Build(r Renderer, items []*domain.ResultItem, animate bool) []*domain.ResultItem {
	r.Clear()

	sorted := make([]*domain.ResultItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	next := 1
	for _, item := range sorted {
		item.Shortcut = 0
		item.Animate = animate
		if item.WantsShortcut && next <= b.slots {
			item.Shortcut = next
			next++
		}
	}

	r.Append(sorted...)
	r.FocusFirst()
	return sorted
}
