package gocas

import (
	"context"
	"net/http"
)

// SessionManager is the narrow view of the web session the engine reads and
// mutates. The engine never owns session storage.
type SessionManager interface {
	// SessionID returns the identifier of the current session, creating the
	// session when create is true and none exists yet. An empty identifier
	// with a nil error means there is no session.
	SessionID(ctx context.Context, w http.ResponseWriter, r *http.Request, create bool) (string, error)
	// Profiles returns the profiles of the current session in the order they
	// were saved.
	Profiles(ctx context.Context, r *http.Request) ([]*Profile, error)
	SaveProfile(ctx context.Context, w http.ResponseWriter, r *http.Request, profile *Profile) error
	RemoveProfiles(ctx context.Context, r *http.Request) error
	// DestroySession invalidates the current session. It reports false when
	// the store does not support destruction.
	DestroySession(ctx context.Context, r *http.Request) (bool, error)
	// DestroySessionByID invalidates the session with the given identifier,
	// regardless of the current request. It backs identity provider
	// initiated logout.
	DestroySessionByID(ctx context.Context, id string) error
}

// SessionRegistry records which web session a ticket was consumed by, keyed
// by the ticket string which the identity provider later replays as the
// session index of its logout messages.
type SessionRegistry interface {
	Register(ctx context.Context, sessionIndex, sessionID string) error
	SessionID(ctx context.Context, sessionIndex string) (string, error)
	Delete(ctx context.Context, sessionIndex string) error
}

// ProxyGrantingStore keeps the proxy granting tickets pushed by the identity
// provider on the proxy receptor endpoint, keyed by their IOU.
type ProxyGrantingStore interface {
	Save(ctx context.Context, iou, granting string) error
	Granting(ctx context.Context, iou string) (string, error)
}

// Client is an authentication client a profile originates from. During
// central logout the engine asks the client of each profile for a logout
// action; the first client returning one wins.
type Client interface {
	Name() string
	// LogoutAction returns the action redirecting the user to the identity
	// provider for central logout, bound to the given profile. targetURL may
	// be empty. The second return value reports whether the client produced
	// an action.
	LogoutAction(ctx context.Context, profile *Profile, targetURL string) (HTTPAction, bool)
}

// URLResolver computes the final URL sent to the identity provider from a
// configured callback or service URL and the current request.
type URLResolver func(url string, r *http.Request) string

// RenderErrorFunc converts an error caught at the logout pipeline boundary
// into the terminal action for the request.
type RenderErrorFunc func(r *http.Request, err error) HTTPAction

// HTTPClientFunc returns the client used for calls to the identity provider.
// Timeout policy belongs to this client, not to the engine.
type HTTPClientFunc func(ctx context.Context) *http.Client
