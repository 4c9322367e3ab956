// Package session identifies a browser across requests with a signed cookie
// holding a random id. One session owns one cart.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	CookieName = "optic_session"
	idKey      = "id"
)

var ErrInvalidSession = errors.New("invalid session")

type Manager struct {
	store sessions.Store
}

func New(secret string, secure bool, maxAge time.Duration) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Ensure returns the request's session id, issuing and setting a new one when
// the cookie is absent or fails verification.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	// a tampered cookie still yields a fresh session alongside the error
	sess, _ := m.store.Get(r, CookieName)
	if id, ok := sess.Values[idKey].(string); ok && id != "" {
		return id, nil
	}

	id := uuid.NewString()
	sess.Values[idKey] = id
	if err := sess.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return id, nil
}

// Lookup returns the session id without issuing one.
func (m *Manager) Lookup(r *http.Request) (string, error) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return "", ErrInvalidSession
	}
	id, ok := sess.Values[idKey].(string)
	if !ok || id == "" {
		return "", ErrInvalidSession
	}
	return id, nil
}
