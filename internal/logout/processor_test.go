package logout

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/storage"
	"github.com/luikyv/go-cas/internal/ticket"
	"github.com/luikyv/go-cas/pkg/gocas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLogoutMessage = `
	<samlp:LogoutRequest xmlns:samlp="urn:oasis:names:tc:SAML:2.0:protocol" ID="LR-1" Version="2.0">
		<saml:NameID xmlns:saml="urn:oasis:names:tc:SAML:2.0:assertion">@NOT_USED@</saml:NameID>
		<samlp:SessionIndex>ST-99</samlp:SessionIndex>
	</samlp:LogoutRequest>
`

func TestProcessMessage_BackChannel(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)
	sessionID := registerTestSession(t, ctx, "ST-99")

	form := url.Values{}
	form.Set(gocas.ParamLogoutRequest, testLogoutMessage)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/callback",
		strings.NewReader(form.Encode()))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// When.
	ProcessMessage(ctx)

	// Then.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	manager := ctx.SessionManager.(*storage.SessionManager)
	assert.NotContains(t, manager.Sessions, sessionID)
	boundID, err := ctx.SessionRegistry.SessionID(ctx.Context(), "ST-99")
	require.NoError(t, err)
	assert.Empty(t, boundID)
}

func TestProcessMessage_FrontChannel(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)
	sessionID := registerTestSession(t, ctx, "ST-99")

	encoded, err := ticket.DeflateBase64(testLogoutMessage)
	require.NoError(t, err)
	ctx.Request = httptest.NewRequest(http.MethodGet,
		"/callback?logoutRequest="+url.QueryEscape(encoded), nil)

	// When.
	ProcessMessage(ctx)

	// Then.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusOK, recorder.Code)

	manager := ctx.SessionManager.(*storage.SessionManager)
	assert.NotContains(t, manager.Sessions, sessionID)
}

func TestProcessMessage_FrontChannelRelayState(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)
	registerTestSession(t, ctx, "ST-99")

	encoded, err := ticket.DeflateBase64(testLogoutMessage)
	require.NoError(t, err)
	ctx.Request = httptest.NewRequest(http.MethodGet,
		"/callback?logoutRequest="+url.QueryEscape(encoded)+"&RelayState=abc+def", nil)

	// When.
	ProcessMessage(ctx)

	// Then.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t,
		sso.TestPrefixURL+"logout?_eventId=next&RelayState=abc+def",
		recorder.Header().Get("Location"))
}

func TestProcessMessage_UnknownSessionIndex(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)

	form := url.Values{}
	form.Set(gocas.ParamLogoutRequest, testLogoutMessage)
	ctx.Request = httptest.NewRequest(http.MethodPost, "/callback",
		strings.NewReader(form.Encode()))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// When.
	ProcessMessage(ctx)

	// Then.
	// An unknown index is not an error, the acknowledgment is identical.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestProcessMessage_MissingSessionIndex(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)

	form := url.Values{}
	form.Set(gocas.ParamLogoutRequest, "<samlp:LogoutRequest ID='LR-1'/>")
	ctx.Request = httptest.NewRequest(http.MethodPost, "/callback",
		strings.NewReader(form.Encode()))
	ctx.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// When.
	ProcessMessage(ctx)

	// Then.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestProcessMessage_MalformedFrontChannelPayload(t *testing.T) {
	// Given.
	ctx := sso.NewTestContext(t)
	ctx.Request = httptest.NewRequest(http.MethodGet,
		"/callback?logoutRequest=%21%21not-base64%21%21", nil)

	// When.
	ProcessMessage(ctx)

	// Then.
	recorder := ctx.Response.(*httptest.ResponseRecorder)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSessionIndex(t *testing.T) {
	// Given.
	testCases := []struct {
		message string
		want    string
	}{
		{testLogoutMessage, "ST-99"},
		{"<SessionIndex>ST-1</SessionIndex>", "ST-1"},
		{"<samlp:SessionIndex> ST-2 </samlp:SessionIndex>", "ST-2"},
		{"<samlp:LogoutRequest/>", ""},
		{"<SessionIndex>unterminated", ""},
	}

	for _, testCase := range testCases {
		// When.
		got := sessionIndex(testCase.message)

		// Then.
		assert.Equal(t, testCase.want, got)
	}
}

// registerTestSession creates a web session and binds it to the given
// session index, the way the callback does after validating a ticket.
func registerTestSession(t *testing.T, ctx sso.Context, index string) string {
	sessionID, err := ctx.SessionManager.SessionID(ctx.Context(), ctx.Response, ctx.Request, true)
	require.NoError(t, err)
	require.NoError(t, ctx.SessionRegistry.Register(ctx.Context(), index, sessionID))
	return sessionID
}
