package client

import (
	"net/http"

	"github.com/luikyv/go-cas/internal/authn"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// DirectProxyClient validates proxy tickets supplied in-band on the current
// request, for services called by CAS proxies rather than by browsers. It
// never produces a redirect.
type DirectProxyClient struct {
	config     *sso.Configuration
	serviceURL string
}

// NewDirectProxy creates a direct proxy client for the given service URL.
// It requires one of the two proxy protocols.
func NewDirectProxy(
	name string,
	serviceURL string,
	opts ...Option,
) (
	*DirectProxyClient,
	error,
) {
	if serviceURL == "" {
		return nil, gocas.NewError(gocas.ErrorCodeConfiguration, "serviceUrl cannot be blank")
	}

	c := &DirectProxyClient{
		config: &sso.Configuration{
			ClientName: name,
		},
		serviceURL: serviceURL,
	}

	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}

	if !c.config.Protocol.IsProxy() {
		return nil, gocas.NewError(gocas.ErrorCodeConfiguration,
			"the direct proxy client must be configured with a CAS proxy protocol (CAS20_PROXY or CAS30_PROXY)")
	}

	if err := c.config.Init(); err != nil {
		return nil, err
	}

	return c, nil
}

// Credentials validates the ticket found on the current request against the
// configured service URL. A request without a ticket yields no credentials
// and no error.
func (c *DirectProxyClient) Credentials(w http.ResponseWriter, r *http.Request) (*gocas.TokenCredentials, error) {
	return authn.DirectCredentials(sso.NewContext(w, r, c.config), c.serviceURL)
}
