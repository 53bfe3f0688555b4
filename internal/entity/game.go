package entity

import (
	"errors"
	"time"
)

const BoardSize = 9

var ErrUnknownMark = errors.New("unknown mark")

// Squares is a row-major 3x3 board.
type Squares [BoardSize]Mark

// IsFull reports whether every cell is occupied.
func (that Squares) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}

// Move is a board snapshot together with the cell that produced it.
type Move struct {
	Squares  Squares `json:"squares"`
	Location int     `json:"location"`
}

// Session is the transient state of one game: its history, the move in view
// and the order the move list is displayed in.
type Session struct {
	ID          string    `json:"id"`
	History     []Move    `json:"history"`
	CurrentMove int       `json:"current_move"`
	Ascending   bool      `json:"ascending"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		History:   []Move{{Location: NoLocation}},
		Ascending: true,
		UpdatedAt: time.Now(),
	}
}

// Reset returns the session to a single empty board.
func (that *Session) Reset() {
	that.History = []Move{{Location: NoLocation}}
	that.CurrentMove = 0
	that.Ascending = true
	that.UpdatedAt = time.Now()
}
