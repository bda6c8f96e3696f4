package sso

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luikyv/go-cas/internal/storage"
	"github.com/luikyv/go-cas/pkg/gocas"
	"github.com/stretchr/testify/require"
)

const (
	TestClientName  string = "test_cas_client"
	TestCallbackURL string = "https://sp.example.com/callback"
	TestLoginURL    string = "https://idp.example.com/cas/login"
	TestPrefixURL   string = "https://idp.example.com/cas/"
)

func NewTestContext(t *testing.T) Context {
	config := &Configuration{
		ClientName:       TestClientName,
		CallbackURL:      TestCallbackURL,
		LoginURL:         TestLoginURL,
		Protocol:         gocas.ProtocolCAS30,
		LocalLogout:      true,
		PostLoginURL:     "/",
		SessionManager:   storage.NewSessionManager(100),
		SessionRegistry:  storage.NewSessionRegistry(),
		ProxyGrantings:   storage.NewProxyGrantingStore(),
		EndpointCallback: "/callback",
		EndpointLogout:   "/logout",
	}
	require.Nil(t, config.Init(), "could not init the test configuration")

	return Context{
		Configuration: config,
		Request:       httptest.NewRequest(http.MethodGet, "/callback", nil),
		Response:      httptest.NewRecorder(),
	}
}
