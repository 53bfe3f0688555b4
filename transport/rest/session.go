package rest

import (
	"net/http"
	"time"
)

const (
	SessionCookie = "game_session"
	sessionMaxAge = 24 * time.Hour
)

// SessionID returns the game session of the request, or "" when there is none.
func SessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	if SessionID(r) == sessionID {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(sessionMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
