package tictactoe

import "fmt"

// MoveEntry is one button of the move list.
type MoveEntry struct {
	Move     int    `json:"move"`
	Location int    `json:"location"`
	Label    string `json:"label"`
	Current  bool   `json:"current"`
}

// View is everything a surface needs to draw the game.
type View struct {
	SessionID   string      `json:"session_id"`
	Status      string      `json:"status"`
	Outcome     Outcome     `json:"outcome"`
	Winner      string      `json:"winner,omitempty"`
	WinningLine []int       `json:"winning_line"`
	NextPlayer  string      `json:"next_player,omitempty"`
	Rows        [][]Cell    `json:"rows"`
	CurrentMove int         `json:"current_move"`
	Counter     string      `json:"counter"`
	Ascending   bool        `json:"ascending"`
	OrderLabel  string      `json:"order_label"`
	Moves       []MoveEntry `json:"moves"`
	Events      []Event     `json:"events,omitempty"`
}

// View renders the game state top-down: game, board, cells.
func (that *Game) View() View {
	board := that.Board()

	view := View{
		SessionID:   that.session.ID,
		Status:      board.Status(),
		Outcome:     OutcomeOf(board.Squares()),
		WinningLine: []int{},
		Rows:        board.Rows(),
		CurrentMove: that.session.CurrentMove,
		Counter:     fmt.Sprintf("You are at move # %d", that.session.CurrentMove),
		Ascending:   that.session.Ascending,
		OrderLabel:  orderLabel(that.session.Ascending),
		Moves:       that.Moves(),
	}

	if result, ok := CalculateWinner(board.Squares()); ok {
		view.Winner = result.Winner.String()
		view.WinningLine = result.Line[:]
	} else {
		view.NextPlayer = board.Turn().String()
	}

	return view
}

// Moves lists the history in display order.
func (that *Game) Moves() []MoveEntry {
	history := that.session.History
	entries := make([]MoveEntry, 0, len(history))

	for i := range history {
		move := i
		if !that.session.Ascending {
			move = len(history) - 1 - i
		}

		entries = append(entries, MoveEntry{
			Move:     move,
			Location: history[move].Location,
			Label:    MoveLabel(move),
			Current:  move == that.session.CurrentMove,
		})
	}

	return entries
}

// MoveLabel names a history entry. The coordinates are derived from the
// sequence number, not from the stored location.
func MoveLabel(move int) string {
	if move == 0 {
		return "Go to game start"
	}

	return fmt.Sprintf("Go to move #%d (%d, %d)", move, move/boardSide, move%boardSide)
}

func orderLabel(ascending bool) string {
	if ascending {
		return "ascending"
	}
	return "descending"
}
