package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	actionState = "game:state"
	actionClick = "board:click"
	actionJump  = "history:jump"
	actionOrder = "history:order"
	actionReset = "game:reset"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is the body of requests and responses. Requests fill the field
// their action needs; responses carry the view or an error.
type Payload struct {
	Cell      *int            `json:"cell,omitempty"`
	Move      *int            `json:"move,omitempty"`
	Ascending *bool           `json:"ascending,omitempty"`
	View      *tictactoe.View `json:"view,omitempty"`
	Error     string          `json:"error,omitempty"`
}
