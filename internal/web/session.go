package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dataexplorer/internal/shell"
)

const (
	sessionCookie = "dataexplorer_session"
	sessionTTL    = 2 * time.Hour
)

// session owns one browser's Shell. mu serializes its actions.
type session struct {
	mu       sync.Mutex
	shell    *shell.Shell
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	newShell func() *shell.Shell
	now      func() time.Time
}

func newSessionStore(newShell func() *shell.Shell) *sessionStore {
	return &sessionStore{sessions: map[string]*session{}, newShell: newShell, now: time.Now}
}

// get returns the caller's session, issuing a new cookie when the request
// carries none or an unknown id.
func (st *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	st.evict(now)
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if s, ok := st.sessions[c.Value]; ok {
				s.lastSeen = now
				return s
			}
		}
	}
	id := uuid.NewString()
	s := &session{shell: st.newShell(), lastSeen: now}
	st.sessions[id] = s
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (st *sessionStore) evict(now time.Time) {
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > sessionTTL {
			delete(st.sessions, id)
		}
	}
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
