package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func newTestRoutes(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	games := usecase.NewGameManager(logger, repository.NewMemorySessionRepository(time.Hour))

	return NewHandlers(logger, games).Routes()
}

func do(t *testing.T, routes http.Handler, method, path, session string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session})
	}

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	return rec
}

func sessionFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}

	t.Fatalf("no session cookie in response")
	return ""
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) tictactoe.View {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view tictactoe.View
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))

	return view
}

func TestPing(t *testing.T) {
	rec := do(t, newTestRoutes(t), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestPage(t *testing.T) {
	t.Run("Renders an empty game and sets the session", func(t *testing.T) {
		// When: opening the page without a session
		rec := do(t, newTestRoutes(t), http.MethodGet, "/", "")

		// Then: the empty board is rendered with a new session cookie
		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Next player: X")
		assert.Contains(t, body, "You are at move # 0")
		assert.Contains(t, body, "Go to game start")
		assert.Contains(t, body, `action="/cells/8"`)
		assert.NotEmpty(t, sessionFrom(t, rec))
	})

	t.Run("Form actions redirect back", func(t *testing.T) {
		routes := newTestRoutes(t)
		session := sessionFrom(t, do(t, routes, http.MethodGet, "/", ""))

		// When: clicking cell 4 through the form
		rec := do(t, routes, http.MethodPost, "/cells/4", session)

		// Then: the browser is sent back to the page showing the move
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))

		body := do(t, routes, http.MethodGet, "/", session).Body.String()
		assert.Contains(t, body, "Next player: O")
		assert.Contains(t, body, "Go to move #1 (0, 1)")
	})

	t.Run("Winning line is highlighted", func(t *testing.T) {
		routes := newTestRoutes(t)
		session := sessionFrom(t, do(t, routes, http.MethodGet, "/", ""))

		for _, cell := range []int{0, 4, 1, 5, 2} {
			do(t, routes, http.MethodPost, "/cells/"+strconv.Itoa(cell), session)
		}

		body := do(t, routes, http.MethodGet, "/", session).Body.String()
		assert.Contains(t, body, "Winner: X")
		assert.Equal(t, 3, strings.Count(body, "square highlight"))
	})

	t.Run("Draw shows a notice once", func(t *testing.T) {
		routes := newTestRoutes(t)
		session := sessionFrom(t, do(t, routes, http.MethodGet, "/", ""))

		// When: the board is filled without a winner
		var rec *httptest.ResponseRecorder
		for _, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			rec = do(t, routes, http.MethodPost, "/cells/"+strconv.Itoa(cell), session)
		}

		// Then: only the last redirect carries the draw event
		location := rec.Header().Get("Location")
		assert.Equal(t, "/?event=game%3Adraw", location)
		assert.Contains(t, do(t, routes, http.MethodGet, location, session).Body.String(), "Both players have tied.")
		assert.NotContains(t, do(t, routes, http.MethodGet, "/", session).Body.String(), "Both players have tied.")
	})

	t.Run("Bad cell is rejected", func(t *testing.T) {
		routes := newTestRoutes(t)

		assert.Equal(t, http.StatusBadRequest, do(t, routes, http.MethodPost, "/cells/9", "").Code)
		assert.Equal(t, http.StatusBadRequest, do(t, routes, http.MethodPost, "/cells/abc", "").Code)
	})
}

func TestAPI(t *testing.T) {
	t.Run("Jump and reverse the history", func(t *testing.T) {
		routes := newTestRoutes(t)
		rec := do(t, routes, http.MethodGet, "/api/game", "")
		session := decodeView(t, rec).SessionID
		require.NotEmpty(t, session)

		for _, cell := range []int{0, 4, 8} {
			decodeView(t, do(t, routes, http.MethodPost, "/api/game/cells/"+strconv.Itoa(cell), session))
		}

		// When: jumping to move 1 and switching to descending
		decodeView(t, do(t, routes, http.MethodPost, "/api/game/moves/1", session))
		view := decodeView(t, do(t, routes, http.MethodPost, "/api/game/order", session))

		// Then: move 1 is in view and the list runs backwards
		assert.Equal(t, 1, view.CurrentMove)
		assert.Equal(t, "descending", view.OrderLabel)
		require.Len(t, view.Moves, 4)
		assert.Equal(t, 3, view.Moves[0].Move)
		assert.Equal(t, 8, view.Moves[0].Location)
		assert.Equal(t, "Next player: O", view.Status)
	})

	t.Run("Jump outside the history", func(t *testing.T) {
		routes := newTestRoutes(t)
		session := decodeView(t, do(t, routes, http.MethodGet, "/api/game", "")).SessionID

		rec := do(t, routes, http.MethodPost, "/api/game/moves/3", session)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "out of history range")
	})

	t.Run("Reset", func(t *testing.T) {
		routes := newTestRoutes(t)
		session := decodeView(t, do(t, routes, http.MethodGet, "/api/game", "")).SessionID
		decodeView(t, do(t, routes, http.MethodPost, "/api/game/cells/0", session))

		view := decodeView(t, do(t, routes, http.MethodPost, "/api/game/reset", session))

		assert.Equal(t, session, view.SessionID)
		assert.Len(t, view.Moves, 1)
	})
}
