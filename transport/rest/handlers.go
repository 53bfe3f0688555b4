package rest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	eventParam  = "event"
	drawMessage = "It's a draw! Both players have tied."
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	ToggleDisplayOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
}

type Handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func NewHandlers(logger *slog.Logger, games gameUseCase) *Handlers {
	return &Handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

// Routes registers the page, its form actions, the JSON API and /ping.
func (that *Handlers) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("GET /{$}", that.page)
	mux.HandleFunc("POST /cells/{index}", that.formAction(that.clickCell))
	mux.HandleFunc("POST /moves/{move}", that.formAction(that.jumpTo))
	mux.HandleFunc("POST /order", that.formAction(that.toggleOrder))
	mux.HandleFunc("POST /reset", that.formAction(that.reset))

	mux.HandleFunc("GET /api/game", that.apiAction(that.getGame))
	mux.HandleFunc("POST /api/game/cells/{index}", that.apiAction(that.clickCell))
	mux.HandleFunc("POST /api/game/moves/{move}", that.apiAction(that.jumpTo))
	mux.HandleFunc("POST /api/game/order", that.apiAction(that.toggleOrder))
	mux.HandleFunc("POST /api/game/reset", that.apiAction(that.reset))

	return mux
}

type action func(r *http.Request, sessionID string) (tictactoe.View, error)

type pageData struct {
	View tictactoe.View
	Draw string
}

func (that *Handlers) page(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "page")

	view, err := that.games.GetOrCreateGame(r.Context(), SessionID(r))
	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, r, view.SessionID)

	data := pageData{View: view}
	if r.URL.Query().Get(eventParam) == string(tictactoe.EventDraw) && view.Outcome == tictactoe.Drawn {
		data.Draw = drawMessage
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = pageTemplate.Execute(w, data); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

// formAction runs an action and redirects back to the page.
func (that *Handlers) formAction(run action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := that.logger.With("method", "formAction", "path", r.URL.Path)

		view, err := run(r, SessionID(r))
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Error("failed to apply action", "error", err)
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		setSessionCookie(w, r, view.SessionID)

		target := "/"
		if slices.Contains(view.Events, tictactoe.EventDraw) {
			target += "?" + url.Values{eventParam: {string(tictactoe.EventDraw)}}.Encode()
		}

		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// apiAction runs an action and answers with the JSON view.
func (that *Handlers) apiAction(run action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := that.logger.With("method", "apiAction", "path", r.URL.Path)

		view, err := run(r, SessionID(r))
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Error("failed to apply action", "error", err)
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		setSessionCookie(w, r, view.SessionID)
		writeJSON(w, http.StatusOK, view)
	}
}

func (that *Handlers) getGame(r *http.Request, sessionID string) (tictactoe.View, error) {
	return that.games.GetOrCreateGame(r.Context(), sessionID)
}

func (that *Handlers) clickCell(r *http.Request, sessionID string) (tictactoe.View, error) {
	index, err := pathInt(r, "index", apperror.ErrInvalidCell)
	if err != nil {
		return tictactoe.View{}, err
	}

	return that.games.ClickCell(r.Context(), sessionID, index)
}

func (that *Handlers) jumpTo(r *http.Request, sessionID string) (tictactoe.View, error) {
	move, err := pathInt(r, "move", apperror.ErrMoveOutOfRange)
	if err != nil {
		return tictactoe.View{}, err
	}

	return that.games.JumpTo(r.Context(), sessionID, move)
}

func (that *Handlers) toggleOrder(r *http.Request, sessionID string) (tictactoe.View, error) {
	return that.games.ToggleDisplayOrder(r.Context(), sessionID)
}

func (that *Handlers) reset(r *http.Request, sessionID string) (tictactoe.View, error) {
	return that.games.Reset(r.Context(), sessionID)
}

func pathInt(r *http.Request, name string, invalid error) (int, error) {
	value, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, errors.Join(invalid, err)
	}

	return value, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrMoveOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
