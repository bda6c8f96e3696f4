// Package storage provides default in-memory implementations of the session
// collaborators. They are suitable for single instance deployments and
// tests; distributed deployments should plug their own implementations.
package storage

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/luikyv/go-cas/internal/timeutil"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// SessionCookie carries the session identifier issued by the in-memory
// session manager.
const SessionCookie = "gocas_session"

var _ gocas.SessionManager = NewSessionManager(0)

type webSession struct {
	ID                 string
	Profiles           []*gocas.Profile
	CreatedAtTimestamp int
}

type SessionManager struct {
	Sessions map[string]*webSession
	mu       sync.RWMutex
	maxSize  int
}

func NewSessionManager(maxSize int) *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*webSession),
		maxSize:  maxSize,
	}
}

func (m *SessionManager) SessionID(_ context.Context, w http.ResponseWriter, r *http.Request, create bool) (string, error) {
	if session := m.current(r); session != nil {
		return session.ID, nil
	}
	if !create {
		return "", nil
	}

	session := &webSession{
		ID:                 uuid.NewString(),
		CreatedAtTimestamp: timeutil.TimestampNow(),
	}

	m.mu.Lock()
	if len(m.Sessions) >= m.maxSize {
		removeOldest(m.Sessions, func(s *webSession) int {
			return s.CreatedAtTimestamp
		})
	}
	m.Sessions[session.ID] = session
	m.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
	})
	// Make the session visible to the rest of the current request.
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: session.ID})
	return session.ID, nil
}

func (m *SessionManager) Profiles(_ context.Context, r *http.Request) ([]*gocas.Profile, error) {
	session := m.current(r)
	if session == nil {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	profiles := make([]*gocas.Profile, len(session.Profiles))
	copy(profiles, session.Profiles)
	return profiles, nil
}

func (m *SessionManager) SaveProfile(ctx context.Context, w http.ResponseWriter, r *http.Request, profile *gocas.Profile) error {
	if _, err := m.SessionID(ctx, w, r, true); err != nil {
		return err
	}
	session := m.current(r)

	m.mu.Lock()
	defer m.mu.Unlock()
	// One profile per client, the latest validation wins.
	for i, p := range session.Profiles {
		if p.ClientName == profile.ClientName {
			session.Profiles[i] = profile
			return nil
		}
	}
	session.Profiles = append(session.Profiles, profile)
	return nil
}

func (m *SessionManager) RemoveProfiles(_ context.Context, r *http.Request) error {
	session := m.current(r)
	if session == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session.Profiles = nil
	return nil
}

func (m *SessionManager) DestroySession(ctx context.Context, r *http.Request) (bool, error) {
	session := m.current(r)
	if session == nil {
		return false, nil
	}

	return true, m.DestroySessionByID(ctx, session.ID)
}

func (m *SessionManager) DestroySessionByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Sessions, id)
	return nil
}

func (m *SessionManager) current(r *http.Request) *webSession {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Sessions[cookie.Value]
}
