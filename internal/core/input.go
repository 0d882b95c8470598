package core

// Action is a semantic key intent, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionP1Left         // A, Left arrow
	ActionP1Right        // D, Right arrow
	ActionP2Left         // J
	ActionP2Right        // L
	ActionSuspend        // P - save the session and leave to the menu
	ActionConfirm        // Enter
	ActionBack           // Esc, B
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionP1Left:
		return "P1Left"
	case ActionP1Right:
		return "P1Right"
	case ActionP2Left:
		return "P2Left"
	case ActionP2Right:
		return "P2Right"
	case ActionSuspend:
		return "Suspend"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Steer returns the player (1 or 2) and direction (-1 or 1) of a paddle
// action. ok is false for actions that do not move a paddle.
func (a Action) Steer() (player int, dir float64, ok bool) {
	switch a {
	case ActionP1Left:
		return 1, -1, true
	case ActionP1Right:
		return 1, 1, true
	case ActionP2Left:
		return 2, -1, true
	case ActionP2Right:
		return 2, 1, true
	}
	return 0, 0, false
}
