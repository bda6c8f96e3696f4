package client

import (
	"log/slog"
	"regexp"

	"github.com/go-jose/go-jose/v4"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

type Option func(c *sso.Configuration) error

// WithLoginURL sets the identity provider login endpoint. The prefix URL is
// derived from it when not set explicitly.
func WithLoginURL(url string) Option {
	return func(c *sso.Configuration) error {
		c.LoginURL = url
		return nil
	}
}

// WithPrefixURL sets the identity provider base URL. The login URL is
// derived from it when not set explicitly.
func WithPrefixURL(url string) Option {
	return func(c *sso.Configuration) error {
		c.PrefixURL = url
		return nil
	}
}

// WithRestURL sets the identity provider REST ticket granting endpoint,
// which enables [Client.RestCredentials].
func WithRestURL(url string) Option {
	return func(c *sso.Configuration) error {
		c.RestURL = url
		return nil
	}
}

// WithProtocol overrides the default protocol which is CAS 3.0.
func WithProtocol(protocol gocas.Protocol) Option {
	return func(c *sso.Configuration) error {
		c.Protocol = protocol
		return nil
	}
}

// WithRenew forces re-authentication even if an identity provider session
// exists.
func WithRenew() Option {
	return func(c *sso.Configuration) error {
		c.Renew = true
		return nil
	}
}

// WithGateway makes the identity provider return silently instead of
// prompting when no session exists.
func WithGateway() Option {
	return func(c *sso.Configuration) error {
		c.Gateway = true
		return nil
	}
}

// WithLocalLogout overrides the default local logout behavior which is
// enabled.
func WithLocalLogout(enabled bool) Option {
	return func(c *sso.Configuration) error {
		c.LocalLogout = enabled
		return nil
	}
}

// WithDestroySession makes local logout destroy the underlying web session
// as well.
func WithDestroySession() Option {
	return func(c *sso.Configuration) error {
		c.DestroySession = true
		return nil
	}
}

// WithCentralLogout makes logout redirect the user to the identity provider
// so every service is signed out.
func WithCentralLogout() Option {
	return func(c *sso.Configuration) error {
		c.CentralLogout = true
		return nil
	}
}

// WithLogoutURLPattern overrides the pattern the url request parameter must
// match to be used as post logout redirect target. The default only allows
// relative URLs.
func WithLogoutURLPattern(pattern string) Option {
	return func(c *sso.Configuration) error {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return gocas.WrapError(gocas.ErrorCodeConfiguration,
				"logoutUrlPattern is not a valid pattern", err)
		}
		c.LogoutURLPattern = compiled
		return nil
	}
}

// WithPostLogoutURL sets the default redirect target after logout.
func WithPostLogoutURL(url string) Option {
	return func(c *sso.Configuration) error {
		c.PostLogoutURL = url
		return nil
	}
}

// WithPostLoginURL sets where users land after the callback established a
// session, which defaults to "/".
func WithPostLoginURL(url string) Option {
	return func(c *sso.Configuration) error {
		c.PostLoginURL = url
		return nil
	}
}

// WithSessionManager replaces the default session manager which keeps the
// sessions stored in memory.
func WithSessionManager(manager gocas.SessionManager) Option {
	return func(c *sso.Configuration) error {
		c.SessionManager = manager
		return nil
	}
}

// WithSessionRegistry replaces the default session registry which keeps the
// ticket to session bindings stored in memory.
func WithSessionRegistry(registry gocas.SessionRegistry) Option {
	return func(c *sso.Configuration) error {
		c.SessionRegistry = registry
		return nil
	}
}

// WithProxyReceptor enables proxy support: url is sent as pgtUrl during
// validation and the callback endpoint accepts the proxy granting tickets
// the identity provider pushes to it.
func WithProxyReceptor(url string) Option {
	return func(c *sso.Configuration) error {
		c.ProxyReceptorURL = url
		c.ProxyCallbackURL = url
		return nil
	}
}

// WithProxyGrantingStore replaces the default proxy granting store which
// keeps the grantings in memory.
func WithProxyGrantingStore(store gocas.ProxyGrantingStore) Option {
	return func(c *sso.Configuration) error {
		c.ProxyGrantings = store
		return nil
	}
}

// WithTicketJWKS trusts the given keys to sign JWT service tickets, which
// are then validated locally without a round trip to the identity provider.
func WithTicketJWKS(jwks jose.JSONWebKeySet, sigAlgs ...jose.SignatureAlgorithm) Option {
	return func(c *sso.Configuration) error {
		c.TicketJWKS = jwks
		c.TicketJWTSigAlgs = sigAlgs
		return nil
	}
}

// WithClients registers the clients consulted by name during central
// logout. By default the client itself is the only one registered.
func WithClients(clients ...gocas.Client) Option {
	return func(c *sso.Configuration) error {
		c.Clients = clients
		return nil
	}
}

// WithURLResolver replaces the resolver applied to callback and service URLs
// before they are sent to the identity provider.
func WithURLResolver(resolver gocas.URLResolver) Option {
	return func(c *sso.Configuration) error {
		c.URLResolver = resolver
		return nil
	}
}

// WithRenderErrorFunc replaces how errors caught at the logout pipeline
// boundary are converted into terminal actions.
func WithRenderErrorFunc(render gocas.RenderErrorFunc) Option {
	return func(c *sso.Configuration) error {
		c.RenderErrorFunc = render
		return nil
	}
}

// WithHTTPClientFunc replaces the HTTP client used for calls to the identity
// provider. Timeout policy belongs to this client.
func WithHTTPClientFunc(f gocas.HTTPClientFunc) Option {
	return func(c *sso.Configuration) error {
		c.HTTPClientFunc = f
		return nil
	}
}

// WithActionAdapter replaces how terminal actions are realized as HTTP
// responses.
func WithActionAdapter(adapter gocas.ActionAdapter) Option {
	return func(c *sso.Configuration) error {
		c.ActionAdapter = adapter
		return nil
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sso.Configuration) error {
		c.Logger = logger
		return nil
	}
}

// WithCallbackEndpoint overrides the default callback endpoint which is
// [defaultEndpointCallback].
func WithCallbackEndpoint(endpoint string) Option {
	return func(c *sso.Configuration) error {
		c.EndpointCallback = endpoint
		return nil
	}
}

// WithLogoutEndpoint overrides the default logout endpoint which is
// [defaultEndpointLogout].
func WithLogoutEndpoint(endpoint string) Option {
	return func(c *sso.Configuration) error {
		c.EndpointLogout = endpoint
		return nil
	}
}
