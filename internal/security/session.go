package security

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "itech_session"

const (
	keyUserID  = "user_id"
	keyIsAdmin = "is_admin"
)

// Flash levels, matching the bootstrap-style alert classes the templates use.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

func init() {
	// Flashes are stored in the session cookie, which is gob-encoded.
	gob.Register(Flash{})
}

// SessionManager wraps the signed cookie store carrying the logged-in
// user's id, a cached admin flag, and pending flash messages. The cookie is
// the whole session; nothing is persisted server-side.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   0, // browser-session lifetime
	}
	return &SessionManager{store: store}
}

// session returns the (possibly fresh) session for the request. A cookie
// that fails signature validation decodes as a fresh empty session.
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, sessionName)
	return s
}

// Start records the authenticated identity, overwriting any previous one.
func (m *SessionManager) Start(w http.ResponseWriter, r *http.Request, userID int, isAdmin bool) error {
	s := m.session(r)
	s.Values[keyUserID] = userID
	s.Values[keyIsAdmin] = isAdmin
	return s.Save(r, w)
}

// Current returns the session's identity claims. ok is false when the
// request carries no valid session.
func (m *SessionManager) Current(r *http.Request) (userID int, isAdmin bool, ok bool) {
	s := m.session(r)
	userID, ok = s.Values[keyUserID].(int)
	if !ok {
		return 0, false, false
	}
	isAdmin, _ = s.Values[keyIsAdmin].(bool)
	return userID, isAdmin, true
}

// End clears the identity unconditionally. The cookie itself survives so a
// logout flash can still be delivered on the next page.
func (m *SessionManager) End(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	delete(s.Values, keyUserID)
	delete(s.Values, keyIsAdmin)
	return s.Save(r, w)
}

// Flash queues a one-shot notice for the next rendered page.
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, level, message string) error {
	s := m.session(r)
	s.AddFlash(Flash{Level: level, Message: message})
	return s.Save(r, w)
}

// Flashes drains and returns all pending notices.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	// Reading flashes mutates the session; persist the drain.
	_ = s.Save(r, w)

	out := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}
	return out
}
