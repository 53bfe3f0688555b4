package websocket

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

var errMissingField = errors.New("missing field in payload")

func (that *Server) handleState(ctx context.Context, client *conn, _ Payload) (tictactoe.View, error) {
	return that.games.GetOrCreateGame(ctx, client.sessionID)
}

func (that *Server) handleClick(ctx context.Context, client *conn, payload Payload) (tictactoe.View, error) {
	if payload.Cell == nil {
		return tictactoe.View{}, errors.Join(apperror.ErrInvalidCell, errMissingField)
	}

	return that.games.ClickCell(ctx, client.sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, client *conn, payload Payload) (tictactoe.View, error) {
	if payload.Move == nil {
		return tictactoe.View{}, errors.Join(apperror.ErrMoveOutOfRange, errMissingField)
	}

	return that.games.JumpTo(ctx, client.sessionID, *payload.Move)
}

// handleOrder sets the order when given, otherwise toggles it.
func (that *Server) handleOrder(ctx context.Context, client *conn, payload Payload) (tictactoe.View, error) {
	if payload.Ascending != nil {
		return that.games.SetDisplayOrder(ctx, client.sessionID, *payload.Ascending)
	}

	return that.games.ToggleDisplayOrder(ctx, client.sessionID)
}

func (that *Server) handleReset(ctx context.Context, client *conn, _ Payload) (tictactoe.View, error) {
	return that.games.Reset(ctx, client.sessionID)
}
