package sso

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/go-jose/go-jose/v4"
	"github.com/luikyv/go-cas/pkg/gocas"
)

type Configuration struct {
	SessionManager  gocas.SessionManager
	SessionRegistry gocas.SessionRegistry

	// ClientName identifies this client in the profiles it produces.
	ClientName string
	// CallbackURL is the service URL the identity provider redirects back to
	// with a ticket.
	CallbackURL string

	// LoginURL is the identity provider login endpoint. When blank, it is
	// derived from PrefixURL during init.
	LoginURL string
	// PrefixURL is the identity provider base URL, always normalized to end
	// with a trailing slash. When blank, it is derived from LoginURL.
	PrefixURL string
	// RestURL is the identity provider REST ticket granting endpoint.
	RestURL string

	Protocol gocas.Protocol
	// Renew forces re-authentication even if an identity provider session
	// exists.
	Renew bool
	// Gateway makes the identity provider return silently when no session
	// exists instead of prompting.
	Gateway bool

	// PostLoginURL is where the user lands after the callback established a
	// session.
	PostLoginURL string

	LocalLogout      bool
	DestroySession   bool
	CentralLogout    bool
	LogoutURLPattern *regexp.Regexp
	// PostLogoutURL is the default redirect target after logout when the
	// request does not carry an allowed url parameter.
	PostLogoutURL string

	// ProxyReceptorURL, when set, makes the callback endpoint accept proxy
	// granting ticket callbacks from the identity provider.
	ProxyReceptorURL string
	// ProxyCallbackURL is sent as pgtUrl during proxy ticket validation.
	ProxyCallbackURL string
	ProxyGrantings   gocas.ProxyGrantingStore

	// TicketJWKS holds the keys trusted to sign JWT service tickets. When
	// empty, tickets are only validated against the identity provider.
	TicketJWKS       jose.JSONWebKeySet
	TicketJWTSigAlgs []jose.SignatureAlgorithm

	// Clients are consulted by name during central logout.
	Clients []gocas.Client

	URLResolver     gocas.URLResolver
	RenderErrorFunc gocas.RenderErrorFunc
	HTTPClientFunc  gocas.HTTPClientFunc
	ActionAdapter   gocas.ActionAdapter
	Logger          *slog.Logger

	EndpointCallback string
	EndpointLogout   string

	initOnce sync.Once
	initErr  error
}

// Init derives LoginURL and PrefixURL from one another and validates the
// endpoint setup. It is safe for concurrent use and idempotent, the first
// call wins.
func (c *Configuration) Init() error {
	c.initOnce.Do(func() {
		c.initErr = c.initURLs()
	})
	return c.initErr
}

func (c *Configuration) initURLs() error {
	if c.LoginURL == "" && c.PrefixURL == "" && c.RestURL == "" {
		return gocas.NewError(gocas.ErrorCodeConfiguration,
			"loginUrl, prefixUrl and restUrl cannot be all blank")
	}

	if c.PrefixURL != "" && !strings.HasSuffix(c.PrefixURL, "/") {
		c.PrefixURL += "/"
	}

	if c.PrefixURL == "" && c.LoginURL != "" {
		// The prefix is the parent path of the login endpoint, which also
		// covers login URLs whose last segment is literally "login".
		if i := strings.LastIndex(c.LoginURL, "/"); i >= 0 {
			c.PrefixURL = c.LoginURL[:i+1]
		}
	}

	if c.LoginURL == "" && c.PrefixURL != "" {
		c.LoginURL = c.PrefixURL + "login"
	}

	return nil
}

// FindClient returns the client registered under the given name.
func (c *Configuration) FindClient(name string) (gocas.Client, bool) {
	for _, client := range c.Clients {
		if client.Name() == name {
			return client, true
		}
	}
	return nil, false
}
