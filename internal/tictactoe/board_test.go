package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func TestBoard_RequestMove(t *testing.T) {
	t.Run("Places the mark of the player to move", func(t *testing.T) {
		// Given: an empty board with O to move
		board := NewBoard(entity.Squares{}, false)

		// When: cell 4 is requested
		intent, ok, err := board.RequestMove(4)

		// Then: the intent carries O at 4 and the board itself is untouched
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 4, intent.Index)
		assert.Equal(t, o, intent.Squares[4])
		assert.False(t, intent.Draw)
		assert.Equal(t, entity.Squares{}, board.Squares())
	})

	t.Run("Ignores an occupied cell", func(t *testing.T) {
		board := NewBoard(entity.Squares{x}, false)

		_, ok, err := board.RequestMove(0)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Ignores any cell once a winner exists", func(t *testing.T) {
		// Given: X has the top row
		board := NewBoard(entity.Squares{x, x, x, o, o, e, e, e, e}, false)

		// When: O clicks an empty cell
		_, ok, err := board.RequestMove(5)

		// Then: the click is dropped
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Flags the move that fills the board without a winner", func(t *testing.T) {
		// Given: one empty cell left
		board := NewBoard(entity.Squares{
			x, o, x,
			x, o, o,
			o, x, e,
		}, true)

		// When: X fills it
		intent, ok, err := board.RequestMove(8)

		// Then: a draw is reported
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, intent.Draw)
	})

	t.Run("Winning last move is not a draw", func(t *testing.T) {
		board := NewBoard(entity.Squares{
			x, o, x,
			o, x, o,
			o, x, e,
		}, true)

		intent, ok, err := board.RequestMove(8)

		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, intent.Draw)
	})

	t.Run("Rejects an index outside the board", func(t *testing.T) {
		board := NewBoard(entity.Squares{}, true)

		for _, index := range []int{-1, 9, 20} {
			_, ok, err := board.RequestMove(index)

			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.False(t, ok)
		}
	})
}

func TestBoard_Status(t *testing.T) {
	assert.Equal(t, "Next player: X", NewBoard(entity.Squares{}, true).Status())
	assert.Equal(t, "Next player: O", NewBoard(entity.Squares{x}, false).Status())
	assert.Equal(t, "Winner: O", NewBoard(entity.Squares{o, x, x, o, x, e, o, e, e}, true).Status())
}

func TestBoard_Rows(t *testing.T) {
	t.Run("Highlights only the winning line", func(t *testing.T) {
		// Given: X won on the anti-diagonal
		board := NewBoard(entity.Squares{
			o, o, x,
			e, x, e,
			x, e, e,
		}, false)

		// When: rendering the rows
		rows := board.Rows()

		// Then: exactly cells 2, 4 and 6 are highlighted
		require.Len(t, rows, 3)
		var winning []int
		for r, row := range rows {
			require.Len(t, row, 3)
			for c, cell := range row {
				assert.Equal(t, r*3+c, cell.Index)
				if cell.Winning {
					winning = append(winning, cell.Index)
				}
			}
		}
		assert.Equal(t, []int{2, 4, 6}, winning)
		assert.Equal(t, "X", rows[0][2].Label())
		assert.Equal(t, "", rows[1][0].Label())
	})

	t.Run("Nothing is highlighted without a winner", func(t *testing.T) {
		for _, row := range NewBoard(entity.Squares{x, o}, true).Rows() {
			for _, cell := range row {
				assert.False(t, cell.Winning)
			}
		}
	})
}
