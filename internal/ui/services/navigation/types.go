package navigation

// State holds all navigation-related state
type State struct {
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	MaxIndex       int // -1 when the list is empty
}

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
)
