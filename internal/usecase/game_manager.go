package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const lockStripes = 64

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager applies player intents to stored sessions. Intents for the same
// session are applied one at a time.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	locks [lockStripes]sync.Mutex
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
	}
}

// GetOrCreateGame returns the game of the session, starting a new one when the
// id is empty or the session has expired.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "GetOrCreateGame", func(*tictactoe.Game) (bool, []tictactoe.Event, error) {
		return false, nil, nil
	})
}

// ClickCell plays cell on the board in view. Clicks on occupied cells or on a
// finished board leave the session untouched.
func (that *GameManager) ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "ClickCell", func(game *tictactoe.Game) (bool, []tictactoe.Event, error) {
		result, err := game.Click(cell)
		if err != nil {
			return false, nil, fmt.Errorf("failed to click cell: %w", err)
		}

		return result.Played, result.Events, nil
	})
}

func (that *GameManager) JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "JumpTo", func(game *tictactoe.Game) (bool, []tictactoe.Event, error) {
		if err := game.JumpTo(move); err != nil {
			return false, nil, fmt.Errorf("failed to jump: %w", err)
		}

		return true, nil, nil
	})
}

func (that *GameManager) SetDisplayOrder(ctx context.Context, sessionID string, ascending bool) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "SetDisplayOrder", func(game *tictactoe.Game) (bool, []tictactoe.Event, error) {
		game.SetDisplayOrder(ascending)
		return true, nil, nil
	})
}

func (that *GameManager) ToggleDisplayOrder(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "ToggleDisplayOrder", func(game *tictactoe.Game) (bool, []tictactoe.Event, error) {
		game.ToggleDisplayOrder()
		return true, nil, nil
	})
}

// Reset starts the session over from the empty board.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (tictactoe.View, error) {
	return that.apply(ctx, sessionID, "Reset", func(game *tictactoe.Game) (bool, []tictactoe.Event, error) {
		game.Session().Reset()
		return true, nil, nil
	})
}

// EndSession discards the session.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	lock := that.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", sessionID)

	return nil
}

type mutation func(game *tictactoe.Game) (bool, []tictactoe.Event, error)

func (that *GameManager) apply(ctx context.Context, sessionID, method string, mutate mutation) (tictactoe.View, error) {
	log := that.logger.With("method", method)

	lock := that.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, created, err := that.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return tictactoe.View{}, err
	}

	log = log.With("sessionID", session.ID)

	game, err := tictactoe.NewGame(session)
	if err != nil {
		log.Warn("discarding corrupted session", "error", err)

		session = entity.NewSession(session.ID)
		created = true

		if game, err = tictactoe.NewGame(session); err != nil {
			return tictactoe.View{}, fmt.Errorf("failed to start game: %w", err)
		}
	}

	changed, events, err := mutate(game)
	if err != nil {
		return tictactoe.View{}, err
	}

	if changed || created {
		if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
			return tictactoe.View{}, fmt.Errorf("failed to save session: %w", err)
		}
	}

	for _, event := range events {
		log.Info("game event", "event", event, "move", game.CurrentMove())
	}

	view := game.View()
	view.Events = events

	log.Debug("intent applied", "changed", changed, "move", view.CurrentMove, "outcome", view.Outcome)

	return view, nil
}

func (that *GameManager) getOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, bool, error) {
	if sessionID != "" {
		session, err := that.sessionRepo.GetByID(ctx, sessionID)
		if err == nil {
			return session, false, nil
		}

		if !errors.Is(err, apperror.ErrSessionNotFound) {
			return nil, false, fmt.Errorf("failed to get session by id: %w", err)
		}
	}

	session := entity.NewSession(pkg.GenerateNewSessionID())

	that.logger.Info("session created", "sessionID", session.ID)

	return session, true, nil
}

func (that *GameManager) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))

	return &that.locks[h.Sum32()%lockStripes]
}
