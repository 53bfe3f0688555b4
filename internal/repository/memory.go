package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type memSession struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*entity.Session
}

// NewMemorySessionRepository keeps sessions in process memory. Sessions idle
// for longer than ttl are treated as gone; a zero ttl keeps them forever.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memSession{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*entity.Session),
	}
}

func (that *memSession) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	if session.ID == "" {
		return apperror.ErrEmptySessionID
	}

	stored := copySession(session)
	stored.UpdatedAt = that.now()

	that.mu.Lock()
	that.sessions[session.ID] = stored
	that.evictExpired()
	that.mu.Unlock()

	return nil
}

func (that *memSession) GetByID(_ context.Context, id string) (*entity.Session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.sessions[id]
	if !ok || that.expired(session) {
		return nil, apperror.ErrSessionNotFound
	}

	return copySession(session), nil
}

func (that *memSession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, id)

	return nil
}

// evictExpired must be called with the write lock held.
func (that *memSession) evictExpired() {
	for id, session := range that.sessions {
		if that.expired(session) {
			delete(that.sessions, id)
		}
	}
}

func (that *memSession) expired(session *entity.Session) bool {
	return that.ttl > 0 && that.now().Sub(session.UpdatedAt) > that.ttl
}

func copySession(session *entity.Session) *entity.Session {
	cp := *session
	cp.History = append([]entity.Move(nil), session.History...)
	return &cp
}
