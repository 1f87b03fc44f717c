package core

// Event is a control event fed into the game's input queue.
// Human key presses and bot commands share this vocabulary, so the game
// cannot tell the two producers apart.
type Event int

const (
	EventNone        Event = iota // Wake-up only; timers push this on expiry
	EventMoveLeft                 // Shift the falling piece one column left
	EventMoveRight                // Shift the falling piece one column right
	EventRotateRight              // Turn clockwise
	EventRotateLeft               // Turn counter-clockwise
	EventSoftDrop                 // Move down one row, scoring a soft-drop point
	EventHardDrop                 // Drop until landed and lock immediately
	EventHold                     // Swap the falling piece with the hold slot
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "None"
	case EventMoveLeft:
		return "MoveLeft"
	case EventMoveRight:
		return "MoveRight"
	case EventRotateRight:
		return "RotateRight"
	case EventRotateLeft:
		return "RotateLeft"
	case EventSoftDrop:
		return "SoftDrop"
	case EventHardDrop:
		return "HardDrop"
	case EventHold:
		return "Hold"
	default:
		return "Unknown"
	}
}
