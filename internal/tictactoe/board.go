package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const boardSide = 3

// Cell is one rendered board position.
type Cell struct {
	Index   int         `json:"index"`
	Mark    entity.Mark `json:"mark"`
	Winning bool        `json:"winning"`
}

// Label is the text shown inside the cell.
func (that Cell) Label() string {
	return that.Mark.String()
}

// Intent is a move request emitted by the board upward to the game.
type Intent struct {
	Squares entity.Squares
	Index   int
	// Draw is set when the move fills the last cell without a winner.
	Draw bool
}

// Board is the grid of the move currently in view.
type Board struct {
	squares entity.Squares
	xIsNext bool
}

func NewBoard(squares entity.Squares, xIsNext bool) *Board {
	return &Board{
		squares: squares,
		xIsNext: xIsNext,
	}
}

func (that *Board) Squares() entity.Squares {
	return that.squares
}

// Turn returns the mark that plays next on this board.
func (that *Board) Turn() entity.Mark {
	if that.xIsNext {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// RequestMove builds the intent for a click on index. The returned flag is
// false when the click must be ignored: the board is already won or the cell
// is occupied.
func (that *Board) RequestMove(index int) (Intent, bool, error) {
	if index < 0 || index >= len(that.squares) {
		return Intent{}, false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if _, won := CalculateWinner(that.squares); won || that.squares[index] != entity.Empty {
		return Intent{}, false, nil
	}

	next := that.squares
	next[index] = that.Turn()

	_, won := CalculateWinner(next)

	return Intent{
		Squares: next,
		Index:   index,
		Draw:    !won && next.IsFull(),
	}, true, nil
}

// Status is the line shown above the board.
func (that *Board) Status() string {
	if result, ok := CalculateWinner(that.squares); ok {
		return "Winner: " + result.Winner.String()
	}

	return "Next player: " + that.Turn().String()
}

// Rows renders the board as three rows of cells with the winning line highlighted.
func (that *Board) Rows() [][]Cell {
	var line []int
	if result, ok := CalculateWinner(that.squares); ok {
		line = result.Line[:]
	}

	rows := make([][]Cell, 0, boardSide)
	for row := 0; row < boardSide; row++ {
		cells := make([]Cell, 0, boardSide)
		for col := 0; col < boardSide; col++ {
			index := row*boardSide + col
			cells = append(cells, Cell{
				Index:   index,
				Mark:    that.squares[index],
				Winning: slices.Contains(line, index),
			})
		}
		rows = append(rows, cells)
	}

	return rows
}
