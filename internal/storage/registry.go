package storage

import (
	"context"
	"sync"

	"github.com/luikyv/go-cas/pkg/gocas"
)

var _ gocas.SessionRegistry = NewSessionRegistry()

// SessionRegistry keeps the ticket to session bindings in memory.
type SessionRegistry struct {
	Bindings map[string]string
	mu       sync.RWMutex
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		Bindings: make(map[string]string),
	}
}

func (r *SessionRegistry) Register(_ context.Context, sessionIndex, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Bindings[sessionIndex] = sessionID
	return nil
}

func (r *SessionRegistry) SessionID(_ context.Context, sessionIndex string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Bindings[sessionIndex], nil
}

func (r *SessionRegistry) Delete(_ context.Context, sessionIndex string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Bindings, sessionIndex)
	return nil
}

var _ gocas.ProxyGrantingStore = NewProxyGrantingStore()

// ProxyGrantingStore keeps the proxy granting tickets pushed on the proxy
// receptor in memory.
type ProxyGrantingStore struct {
	Grantings map[string]string
	mu        sync.RWMutex
}

func NewProxyGrantingStore() *ProxyGrantingStore {
	return &ProxyGrantingStore{
		Grantings: make(map[string]string),
	}
}

func (s *ProxyGrantingStore) Save(_ context.Context, iou, granting string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Grantings[iou] = granting
	return nil
}

func (s *ProxyGrantingStore) Granting(_ context.Context, iou string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Grantings[iou], nil
}
