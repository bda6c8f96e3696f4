// Package authn implements the authentication leg of the protocol: building
// the login redirect and turning the ticket returned on callback into an
// authenticated profile.
package authn

import (
	"log/slog"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/ticket"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// Credentials extracts the ticket from the current request and validates it.
// A request without a ticket parameter yields no credentials and no error,
// which also covers the silent return of a gateway round trip.
func Credentials(ctx sso.Context) (*gocas.TokenCredentials, error) {
	return credentials(ctx, ctx.ResolveURL(ctx.CallbackURL))
}

// DirectCredentials is the direct flow variant used by proxy clients: the
// ticket is validated against the given service URL and no redirect is ever
// produced.
func DirectCredentials(ctx sso.Context, serviceURL string) (*gocas.TokenCredentials, error) {
	return credentials(ctx, ctx.ResolveURL(serviceURL))
}

func credentials(ctx sso.Context, serviceURL string) (*gocas.TokenCredentials, error) {
	t := ctx.RequestParam(gocas.ParamTicket)
	if t == "" {
		return nil, nil
	}

	// The validator's error surfaces unchanged. Tickets are single use,
	// retrying cannot help.
	profile, err := ticket.Validate(ctx, t, serviceURL)
	if err != nil {
		return nil, err
	}

	ctx.Log().Debug("ticket validated", slog.String("principal", profile.ID))
	return &gocas.TokenCredentials{Token: t, Profile: profile}, nil
}

// Establish stores the validated profile in the session and records the
// ticket as session index so identity provider initiated logout can find the
// session later.
func Establish(ctx sso.Context, creds *gocas.TokenCredentials) error {
	if err := ctx.SessionManager.SaveProfile(ctx.Context(), ctx.Response, ctx.Request,
		creds.Profile); err != nil {
		return gocas.WrapError(gocas.ErrorCodeSessionStore, "could not save the profile", err)
	}

	if ctx.SessionRegistry == nil {
		return nil
	}
	sessionID, err := ctx.SessionManager.SessionID(ctx.Context(), ctx.Response, ctx.Request, true)
	if err != nil {
		return gocas.WrapError(gocas.ErrorCodeSessionStore, "could not load the session id", err)
	}
	if err := ctx.SessionRegistry.Register(ctx.Context(), creds.Token, sessionID); err != nil {
		return gocas.WrapError(gocas.ErrorCodeSessionStore, "could not register the session", err)
	}

	return nil
}
