// Package client provides the service provider side of a CAS style single
// sign-on deployment: it redirects users to the identity provider, validates
// the tickets returned on callback and orchestrates local and central
// logout.
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/luikyv/go-cas/internal/authn"
	"github.com/luikyv/go-cas/internal/logout"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/storage"
	"github.com/luikyv/go-cas/internal/ticket"
	"github.com/luikyv/go-cas/pkg/gocas"
)

const (
	defaultEndpointCallback = "/callback"
	defaultEndpointLogout   = "/logout"
	defaultSessionMaxSize   = 10000
)

type Client struct {
	config *sso.Configuration
}

// New creates a single sign-on client identified by name whose callback URL
// receives the tickets issued by the identity provider.
// By default sessions are kept in memory, local logout is on and the
// protocol is CAS 3.0.
func New(
	name string,
	callbackURL string,
	opts ...Option,
) (
	*Client,
	error,
) {
	c := &Client{
		config: &sso.Configuration{
			ClientName:  name,
			CallbackURL: callbackURL,
			Protocol:    gocas.ProtocolCAS30,
			LocalLogout: true,
		},
	}

	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}

	c.setDefaults()

	if err := c.config.Init(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) setDefaults() {
	if c.config.SessionManager == nil {
		c.config.SessionManager = storage.NewSessionManager(defaultSessionMaxSize)
	}
	if c.config.SessionRegistry == nil {
		c.config.SessionRegistry = storage.NewSessionRegistry()
	}
	if c.config.ProxyReceptorURL != "" && c.config.ProxyGrantings == nil {
		c.config.ProxyGrantings = storage.NewProxyGrantingStore()
	}
	if c.config.EndpointCallback == "" {
		c.config.EndpointCallback = defaultEndpointCallback
	}
	if c.config.EndpointLogout == "" {
		c.config.EndpointLogout = defaultEndpointLogout
	}
	if c.config.PostLoginURL == "" {
		c.config.PostLoginURL = "/"
	}
	if len(c.config.Clients) == 0 {
		c.config.Clients = []gocas.Client{c}
	}
}

// Handler returns an HTTP handler serving the callback and logout endpoints.
//
//	server := http.NewServeMux()
//	server.Handle("/", c.Handler())
func (c *Client) Handler() http.Handler {
	server := http.NewServeMux()

	authn.RegisterHandlers(server, c.config)
	logout.RegisterHandlers(server, c.config)

	return gocas.CacheControlMiddleware(server)
}

// Name implements [gocas.Client].
func (c *Client) Name() string {
	return c.config.ClientName
}

// LogoutAction implements [gocas.Client]: it redirects the browser to the
// identity provider's logout endpoint for central logout, optionally asking
// to continue to targetURL afterwards.
func (c *Client) LogoutAction(_ context.Context, _ *gocas.Profile, targetURL string) (gocas.HTTPAction, bool) {
	location := c.config.PrefixURL + "logout"
	if targetURL != "" {
		location += "?" + gocas.ParamService + "=" + url.QueryEscape(targetURL)
	}
	return gocas.FoundAction{Location: location}, true
}

// RedirectionAction computes the redirect starting authentication against
// the identity provider, regardless of ticket state.
func (c *Client) RedirectionAction(w http.ResponseWriter, r *http.Request) (gocas.HTTPAction, error) {
	return authn.RedirectionAction(sso.NewContext(w, r, c.config))
}

// Credentials extracts and validates the ticket of the current request. It
// returns nil credentials and a nil error when the request carries no
// ticket.
func (c *Client) Credentials(w http.ResponseWriter, r *http.Request) (*gocas.TokenCredentials, error) {
	return authn.Credentials(sso.NewContext(w, r, c.config))
}

// RestCredentials authenticates a username and password through the identity
// provider's REST endpoint and validates the resulting service ticket.
func (c *Client) RestCredentials(w http.ResponseWriter, r *http.Request, username, password string) (*gocas.TokenCredentials, error) {
	ctx := sso.NewContext(w, r, c.config)
	return ticket.ValidateRest(ctx, username, password, ctx.ResolveURL(c.config.CallbackURL))
}

// ProxyTicket asks the identity provider for a proxy ticket targeting
// another service, using the proxy granting ticket attached to the profile
// during proxy validation.
func (c *Client) ProxyTicket(w http.ResponseWriter, r *http.Request, profile *gocas.Profile, targetService string) (string, error) {
	granting, _ := profile.Attribute(ticket.AttributeProxyGranting).(string)
	if granting == "" {
		return "", gocas.NewError(gocas.ErrorCodeValidation,
			"the profile has no proxy granting ticket")
	}
	return ticket.Proxy(sso.NewContext(w, r, c.config), granting, targetService)
}

// Logout runs the logout pipeline for the current request and returns the
// terminal action. Errors inside the pipeline never propagate, they are
// converted into the action.
func (c *Client) Logout(w http.ResponseWriter, r *http.Request) gocas.HTTPAction {
	return logout.Perform(sso.NewContext(w, r, c.config))
}

// Profiles returns the profiles of the current session.
func (c *Client) Profiles(r *http.Request) ([]*gocas.Profile, error) {
	return c.config.SessionManager.Profiles(r.Context(), r)
}
