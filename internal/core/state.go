package core

import "fmt"

// PlayState is the phase of a session. The numeric values are persisted in
// saved games and must not be reordered.
type PlayState int

const (
	StateInitializing PlayState = iota
	StateReady
	StatePlaying
	StateWon
	StateLost
	StateP1Won
	StateP2Won
)

// String returns a human-readable name for the state.
func (s PlayState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	case StateP1Won:
		return "p1-won"
	case StateP2Won:
		return "p2-won"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether the session has ended in this state.
func (s PlayState) Terminal() bool {
	switch s {
	case StateWon, StateLost, StateP1Won, StateP2Won:
		return true
	}
	return false
}

// Resumable reports whether a session saved in this state can be continued.
func (s PlayState) Resumable() bool {
	return s == StatePlaying || s == StateReady
}

// MessageID names the text shown in the middle of the arena. Digits are
// addressed as MessageDigit0+d.
type MessageID int

const (
	MessageNone MessageID = iota - 1
	MessageReady
	MessageGameOver
	MessageWinnerP1
	MessageWinnerP2
	MessageDigit0
)

// DigitMessage returns the message id of a single decimal digit.
// Values outside 0..9 are reduced modulo 10.
func DigitMessage(d int) MessageID {
	d %= 10
	if d < 0 {
		d += 10
	}
	return MessageDigit0 + MessageID(d)
}

// Text returns the display text of the message.
func (m MessageID) Text() string {
	switch {
	case m == MessageNone:
		return ""
	case m == MessageReady:
		return "READY"
	case m == MessageGameOver:
		return "GAME OVER"
	case m == MessageWinnerP1:
		return "PLAYER 1 WINS"
	case m == MessageWinnerP2:
		return "PLAYER 2 WINS"
	case m >= MessageDigit0 && m <= MessageDigit0+9:
		return string(rune('0' + int(m-MessageDigit0)))
	default:
		return ""
	}
}
