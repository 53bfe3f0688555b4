package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	SetDisplayOrder(ctx context.Context, sessionID string, ascending bool) (tictactoe.View, error)
	ToggleDisplayOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
}

// conn is one client connection and the session it plays in.
type conn struct {
	socket    *websocket.Conn
	sessionID string
}

type handler func(ctx context.Context, conn *conn, payload Payload) (tictactoe.View, error)

type Server struct {
	logger   *slog.Logger
	games    gameUseCase
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handlers: make(map[string]handler),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionClick] = server.handleClick
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionOrder] = server.handleOrder
	server.handlers[actionReset] = server.handleReset

	return server
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	socket, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer socket.Close()

	client := &conn{
		socket:    socket,
		sessionID: rest.SessionID(r),
	}

	log.Info("WebSocket connection established", "sessionID", client.sessionID)

	if err = that.handleMessages(r.Context(), client); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, client *conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := client.socket.ReadJSON(&message); err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if err := that.dispatch(ctx, client, &message); err != nil {
			log.Error("failed to process message", "action", message.Action, "error", err)
			return err
		}
	}
}

// dispatch runs the handler for the message action and answers the client.
// Only write failures are returned; request errors go back to the client.
func (that *Server) dispatch(ctx context.Context, client *conn, message *Message) error {
	handle, ok := that.handlers[message.Action]
	if !ok {
		return that.sendError(client, message.Action, "unknown action")
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return that.sendError(client, message.Action, "malformed payload")
		}
	}

	view, err := handle(ctx, client, payload)
	if err != nil {
		that.logger.Warn("action failed", "action", message.Action, "sessionID", client.sessionID, "error", err)
		return that.sendError(client, message.Action, err.Error())
	}

	client.sessionID = view.SessionID

	if err = that.sendMessage(client, message.Action, Payload{View: &view}); err != nil {
		return err
	}

	for _, event := range view.Events {
		if err = that.sendMessage(client, string(event), Payload{View: &view}); err != nil {
			return err
		}
	}

	return nil
}

func (that *Server) sendMessage(client *conn, action string, payload Payload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = client.socket.WriteJSON(Message{Action: action, Payload: raw}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(client *conn, action, errorMsg string) error {
	if err := that.sendMessage(client, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
