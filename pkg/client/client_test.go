package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luikyv/go-cas/pkg/client"
	"github.com/luikyv/go-cas/pkg/gocas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	// Given.

	// When.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithLoginURL("https://idp.example.com/cas/login"))

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "cas_client", c.Name())
}

func TestNew_MissingURLs(t *testing.T) {
	// When.
	_, err := client.New("cas_client", "https://sp.example.com/callback")

	// Then.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loginUrl, prefixUrl and restUrl cannot be all blank")
}

func TestNew_InvalidLogoutURLPattern(t *testing.T) {
	// When.
	_, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithLogoutURLPattern("[invalid"))

	// Then.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logoutUrlPattern is not a valid pattern")
}

func TestLogoutAction(t *testing.T) {
	// Given.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithPrefixURL("https://idp.example.com/cas/"))
	require.NoError(t, err)

	// When.
	action, ok := c.LogoutAction(nil, nil, "")

	// Then.
	require.True(t, ok)
	assert.Equal(t,
		gocas.FoundAction{Location: "https://idp.example.com/cas/logout"}, action)
}

func TestLogoutAction_TargetURL(t *testing.T) {
	// Given.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithPrefixURL("https://idp.example.com/cas/"))
	require.NoError(t, err)

	// When.
	action, ok := c.LogoutAction(nil, nil, "https://sp.example.com/bye")

	// Then.
	require.True(t, ok)
	assert.Equal(t, gocas.FoundAction{
		Location: "https://idp.example.com/cas/logout?service=https%3A%2F%2Fsp.example.com%2Fbye",
	}, action)
}

func TestHandler_CallbackRedirectsToLogin(t *testing.T) {
	// Given.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithLoginURL("https://idp.example.com/cas/login"))
	require.NoError(t, err)
	handler := c.Handler()

	r := httptest.NewRequest(http.MethodGet, "/callback", nil)
	w := httptest.NewRecorder()

	// When.
	handler.ServeHTTP(w, r)

	// Then.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "https://idp.example.com/cas/login")
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}

func TestHandler_Logout(t *testing.T) {
	// Given.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithPostLogoutURL("/goodbye"))
	require.NoError(t, err)
	handler := c.Handler()

	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()

	// When.
	handler.ServeHTTP(w, r)

	// Then.
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/goodbye", w.Header().Get("Location"))
}

func TestRedirectionAction(t *testing.T) {
	// Given.
	c, err := client.New("cas_client", "https://sp.example.com/callback",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithRenew())
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	// When.
	action, err := c.RedirectionAction(w, r)

	// Then.
	require.NoError(t, err)
	found, ok := action.(gocas.FoundAction)
	require.True(t, ok)
	assert.Contains(t, found.Location, "renew=true")
}

func TestNewDirectProxy(t *testing.T) {
	// Given.

	// When.
	c, err := client.NewDirectProxy("proxy_client", "https://backend.example.com/api",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithProtocol(gocas.ProtocolCAS30Proxy))

	// Then.
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestNewDirectProxy_MissingServiceURL(t *testing.T) {
	// When.
	_, err := client.NewDirectProxy("proxy_client", "",
		client.WithProtocol(gocas.ProtocolCAS30Proxy))

	// Then.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serviceUrl cannot be blank")
}

func TestNewDirectProxy_NonProxyProtocol(t *testing.T) {
	// When.
	_, err := client.NewDirectProxy("proxy_client", "https://backend.example.com/api",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithProtocol(gocas.ProtocolCAS30))

	// Then.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy protocol")
}

func TestDirectProxyCredentials_NoTicket(t *testing.T) {
	// Given.
	c, err := client.NewDirectProxy("proxy_client", "https://backend.example.com/api",
		client.WithLoginURL("https://idp.example.com/cas/login"),
		client.WithProtocol(gocas.ProtocolCAS30Proxy))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api", nil)
	w := httptest.NewRecorder()

	// When.
	creds, err := c.Credentials(w, r)

	// Then.
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestDirectProxyCredentials(t *testing.T) {
	// Given.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/p3/proxyValidate", r.URL.Path)
		assert.Equal(t, "https://backend.example.com/api", r.URL.Query().Get("service"))
		_, _ = w.Write([]byte(`
			<cas:serviceResponse xmlns:cas="http://www.yale.edu/tp/cas">
				<cas:authenticationSuccess><cas:user>jleleu</cas:user></cas:authenticationSuccess>
			</cas:serviceResponse>
		`))
	}))
	defer server.Close()

	c, err := client.NewDirectProxy("proxy_client", "https://backend.example.com/api",
		client.WithPrefixURL(server.URL),
		client.WithProtocol(gocas.ProtocolCAS30Proxy))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api?ticket=PT-789", nil)
	w := httptest.NewRecorder()

	// When.
	creds, err := c.Credentials(w, r)

	// Then.
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "PT-789", creds.Token)
	assert.Equal(t, "jleleu", creds.Profile.ID)
	assert.Equal(t, "proxy_client", creds.Profile.ClientName)
}
