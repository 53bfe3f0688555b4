package tictactoe

import "github.com/rocketscienceinc/tictactoe-history/internal/entity"

// WinCombos lists the rows, columns and diagonals in the order they are checked.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result describes a won board.
type Result struct {
	Winner entity.Mark
	Line   [3]int
}

// CalculateWinner returns the first uniform, non-empty line of the board.
func CalculateWinner(squares entity.Squares) (Result, bool) {
	for _, combo := range WinCombos {
		a, b, c := squares[combo[0]], squares[combo[1]], squares[combo[2]]
		if a != entity.Empty && a == b && b == c {
			return Result{Winner: a, Line: combo}, true
		}
	}

	return Result{}, false
}

// Outcome is the state of the board in view.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Won        Outcome = "won"
	Drawn      Outcome = "drawn"
)

// OutcomeOf derives the outcome from the squares alone.
func OutcomeOf(squares entity.Squares) Outcome {
	if _, ok := CalculateWinner(squares); ok {
		return Won
	}

	if squares.IsFull() {
		return Drawn
	}

	return InProgress
}
