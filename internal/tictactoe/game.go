package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// Event is a notification produced by a state transition.
type Event string

// EventDraw is emitted once, when a play fills the board without a winner.
const EventDraw Event = "game:draw"

// PlayResult reports what a click did to the game.
type PlayResult struct {
	Played bool
	Events []Event
}

// Game owns the history of a session and the pointer to the move in view.
type Game struct {
	session *entity.Session
}

// NewGame wraps session. A session with an empty or inconsistent history is rejected.
func NewGame(session *entity.Session) (*Game, error) {
	if len(session.History) == 0 {
		return nil, fmt.Errorf("%w: empty history", apperror.ErrCorruptedHistory)
	}

	if session.CurrentMove < 0 || session.CurrentMove >= len(session.History) {
		return nil, fmt.Errorf("%w: current move %d of %d", apperror.ErrCorruptedHistory,
			session.CurrentMove, len(session.History))
	}

	return &Game{session: session}, nil
}

func (that *Game) Session() *entity.Session {
	return that.session
}

func (that *Game) CurrentMove() int {
	return that.session.CurrentMove
}

func (that *Game) History() []entity.Move {
	return that.session.History
}

// XIsNext is derived from the parity of the move in view.
func (that *Game) XIsNext() bool {
	return that.session.CurrentMove%2 == 0
}

// Board returns the board of the move in view.
func (that *Game) Board() *Board {
	return NewBoard(that.session.History[that.session.CurrentMove].Squares, that.XIsNext())
}

// Play drops every move after the one in view and appends the new snapshot.
// The snapshot is trusted: legality is the board's concern.
func (that *Game) Play(next entity.Squares, index int) {
	history := append(that.session.History[:that.session.CurrentMove+1:that.session.CurrentMove+1],
		entity.Move{Squares: next, Location: index})

	that.session.History = history
	that.session.CurrentMove = len(history) - 1
	that.session.UpdatedAt = time.Now()
}

// Click runs a cell click through the board and, when accepted, into the history.
func (that *Game) Click(index int) (PlayResult, error) {
	intent, ok, err := that.Board().RequestMove(index)
	if err != nil {
		return PlayResult{}, fmt.Errorf("failed to request move: %w", err)
	}

	if !ok {
		return PlayResult{}, nil
	}

	that.Play(intent.Squares, intent.Index)

	result := PlayResult{Played: true}
	if intent.Draw {
		result.Events = append(result.Events, EventDraw)
	}

	return result, nil
}

// JumpTo moves the pointer to an existing history entry.
func (that *Game) JumpTo(move int) error {
	if move < 0 || move >= len(that.session.History) {
		return fmt.Errorf("%w: move %d of %d", apperror.ErrMoveOutOfRange, move, len(that.session.History))
	}

	that.session.CurrentMove = move
	that.session.UpdatedAt = time.Now()

	return nil
}

func (that *Game) SetDisplayOrder(ascending bool) {
	that.session.Ascending = ascending
	that.session.UpdatedAt = time.Now()
}

// ToggleDisplayOrder flips the move list order.
func (that *Game) ToggleDisplayOrder() {
	that.SetDisplayOrder(!that.session.Ascending)
}
