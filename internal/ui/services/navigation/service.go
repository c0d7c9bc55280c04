package navigation

// Service moves a cursor over a list without wrapping
type Service struct {
	state   *State
	queryFn func() int // returns the list length
}

// NewService creates a navigation service over a list whose length is
// reported by lenFn
func NewService(lenFn func() int) *Service {
	return &Service{
		state: &State{
			Cursor:         0,
			ViewportOffset: 0,
			ViewportHeight: 10, // Default, will be updated
			MaxIndex:       -1,
		},
		queryFn: lenFn,
	}
}

// GetCursor returns current cursor position, or -1 on an empty list
func (s *Service) GetCursor() int {
	s.refresh()
	if s.state.MaxIndex < 0 {
		return -1
	}
	return s.state.Cursor
}

// GetViewportOffset returns current viewport offset
func (s *Service) GetViewportOffset() int {
	return s.state.ViewportOffset
}

// GetViewportHeight returns current viewport height
func (s *Service) GetViewportHeight() int {
	return s.state.ViewportHeight
}

// SetViewportHeight updates the number of visible rows
func (s *Service) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.state.ViewportHeight = height
	s.ensureVisible()
}

// Navigate handles navigation in a direction
func (s *Service) Navigate(direction Direction) {
	s.refresh()
	if s.state.MaxIndex < 0 {
		return
	}

	switch direction {
	case DirectionUp:
		s.moveTo(s.state.Cursor - 1)
	case DirectionDown:
		s.moveTo(s.state.Cursor + 1)
	case DirectionPageUp:
		s.moveTo(s.state.Cursor - (s.state.ViewportHeight - 1))
	case DirectionPageDown:
		s.moveTo(s.state.Cursor + (s.state.ViewportHeight - 1))
	}
}

// MoveToIndex moves cursor to specific index
func (s *Service) MoveToIndex(index int) {
	s.refresh()
	s.moveTo(index)
}

// Reset puts the cursor and viewport back at the top
func (s *Service) Reset() {
	s.state.Cursor = 0
	s.state.ViewportOffset = 0
}

func (s *Service) refresh() {
	if s.queryFn != nil {
		s.state.MaxIndex = s.queryFn() - 1
	}
	if s.state.Cursor > s.state.MaxIndex && s.state.MaxIndex >= 0 {
		s.state.Cursor = s.state.MaxIndex
	}
}

func (s *Service) moveTo(index int) {
	s.state.Cursor = s.clampIndex(index)
	s.ensureVisible()
}

func (s *Service) clampIndex(index int) int {
	if index > s.state.MaxIndex {
		index = s.state.MaxIndex
	}
	if index < 0 {
		return 0
	}
	return index
}

func (s *Service) ensureVisible() {
	if s.state.Cursor < s.state.ViewportOffset {
		s.state.ViewportOffset = s.state.Cursor
	} else if s.state.Cursor >= s.state.ViewportOffset+s.state.ViewportHeight {
		s.state.ViewportOffset = s.state.Cursor - s.state.ViewportHeight + 1
	}
}
