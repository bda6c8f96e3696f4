package logout

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/ticket"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// ProcessMessage handles a logout notification pushed by the identity
// provider: raw on the back channel (POST), deflated and base64 encoded on
// the front channel (GET). Both carry the same session index and resolve to
// the same session invalidation.
func ProcessMessage(ctx sso.Context) {
	action, err := processMessage(ctx)
	if err != nil {
		// A malformed payload is a hard error for this request.
		ctx.WriteError(err)
		return
	}
	ctx.WriteAction(action)
}

func processMessage(ctx sso.Context) (gocas.HTTPAction, error) {
	payload := ctx.RequestParam(gocas.ParamLogoutRequest)

	backChannel := ctx.RequestMethod() == http.MethodPost
	message := payload
	if !backChannel {
		var err error
		message, err = ticket.InflateBase64(payload)
		if err != nil {
			return nil, err
		}
	}

	index := sessionIndex(message)
	if index == "" {
		return nil, gocas.NewError(gocas.ErrorCodeDecoding,
			"the logout message has no session index")
	}
	destroySession(ctx, index)

	if backChannel {
		return gocas.NoContentAction{}, nil
	}

	// On the front channel, a relay state means the identity provider wants
	// the browser back to continue the logout round trip.
	if relayState := ctx.RequestParam(gocas.ParamRelayState); relayState != "" {
		location := ctx.PrefixURL + "logout?_eventId=next&" +
			gocas.ParamRelayState + "=" + url.QueryEscape(relayState)
		return gocas.FoundAction{Location: location}, nil
	}
	return gocas.ContentAction{}, nil
}

// sessionIndex returns the text content of the first SessionIndex named
// element. The payload is only XML-ish, so namespace prefixes and attribute
// noise are skipped by plain scanning instead of a schema bound parse.
func sessionIndex(message string) string {
	i := strings.Index(message, "SessionIndex")
	if i < 0 {
		return ""
	}
	rest := message[i:]

	start := strings.Index(rest, ">")
	if start < 0 {
		return ""
	}
	rest = rest[start+1:]

	end := strings.Index(rest, "<")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}

func destroySession(ctx sso.Context, index string) {
	if ctx.SessionRegistry == nil || ctx.SessionManager == nil {
		ctx.Log().Error("no session registry available, cannot invalidate the session",
			slog.String("session_index", index))
		return
	}

	sessionID, err := ctx.SessionRegistry.SessionID(ctx.Context(), index)
	if err != nil || sessionID == "" {
		ctx.Log().Info("no session registered for the logout message",
			slog.String("session_index", index))
		return
	}

	if err := ctx.SessionManager.DestroySessionByID(ctx.Context(), sessionID); err != nil {
		ctx.Log().Error("unable to destroy the web session",
			slog.String("error", err.Error()))
	}
	_ = ctx.SessionRegistry.Delete(ctx.Context(), index)
}
