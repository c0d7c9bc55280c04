// Package results holds the rendered result list and its selection.
package results

import (
	"lookout/internal/domain"
	"lookout/internal/ui/services/navigation"
)

// List is the terminal result list. It implements search.Renderer and is
// only touched from the bubbletea event loop.
type List struct {
	items []*domain.ResultItem
	nav   *navigation.Service
}

// New creates an empty list
func New() *List {
	l := &List{}
	l.nav = navigation.NewService(l.Len)
	return l
}

// Clear removes every row
func (l *List) Clear() {
	l.items = nil
	l.nav.Reset()
}

// Append adds rows at the end
func (l *List) Append(items ...*domain.ResultItem) {
	l.items = append(l.items, items...)
}

// Refresh is called after an item changed in place. Rows hold pointers,
// so there is nothing to copy; the next View picks the change up.
func (l *List) Refresh(item *domain.ResultItem) {}

// Remove drops a row, keeping the cursor on a valid row
func (l *List) Remove(item *domain.ResultItem) {
	for i, it := range l.items {
		if it == item {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			break
		}
	}
	l.nav.MoveToIndex(l.nav.GetCursor())
}

// FocusFirst selects the first row
func (l *List) FocusFirst() {
	l.nav.MoveToIndex(0)
}

// FocusNext moves the selection down, stopping at the last row
func (l *List) FocusNext() {
	l.nav.Navigate(navigation.DirectionDown)
}

// FocusPrev moves the selection up, stopping at the first row
func (l *List) FocusPrev() {
	l.nav.Navigate(navigation.DirectionUp)
}

// FocusPageDown moves the selection one screen down
func (l *List) FocusPageDown() {
	l.nav.Navigate(navigation.DirectionPageDown)
}

// FocusPageUp moves the selection one screen up
func (l *List) FocusPageUp() {
	l.nav.Navigate(navigation.DirectionPageUp)
}

// Len returns the number of rows
func (l *List) Len() int {
	return len(l.items)
}

// Items returns the rows in display order
func (l *List) Items() []*domain.ResultItem {
	return l.items
}

// Cursor returns the selected row index, or -1
func (l *List) Cursor() int {
	return l.nav.GetCursor()
}

// Selected returns the focused item, or nil
func (l *List) Selected() *domain.ResultItem {
	i := l.nav.GetCursor()
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// AtShortcut returns the item holding shortcut slot n, or nil
func (l *List) AtShortcut(n int) *domain.ResultItem {
	if n <= 0 {
		return nil
	}
	for _, it := range l.items {
		if it.Shortcut == n {
			return it
		}
	}
	return nil
}

// SetHeight sets the number of visible rows
func (l *List) SetHeight(rows int) {
	l.nav.SetViewportHeight(rows)
}

// Visible returns the rows inside the viewport and the index of the first
func (l *List) Visible() ([]*domain.ResultItem, int) {
	start := l.nav.GetViewportOffset()
	if start > len(l.items) {
		start = len(l.items)
	}
	end := start + l.nav.GetViewportHeight()
	if end > len(l.items) {
		end = len(l.items)
	}
	return l.items[start:end], start
}
