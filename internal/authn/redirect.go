package authn

import (
	"net/url"
	"strings"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// LoginURL computes the identity provider login URL for the current request,
// with the resolved service URL and the renew and gateway flags. Both flags
// may be appended.
func LoginURL(ctx sso.Context) (string, error) {
	if ctx.LoginURL == "" {
		return "", gocas.NewError(gocas.ErrorCodeConfiguration, "loginUrl cannot be blank")
	}

	query := url.Values{}
	query.Set(gocas.ParamService, ctx.ResolveURL(ctx.CallbackURL))
	if ctx.Renew {
		query.Set(gocas.ParamRenew, "true")
	}
	if ctx.Gateway {
		query.Set(gocas.ParamGateway, "true")
	}

	loginURL := ctx.ResolveURL(ctx.LoginURL)
	separator := "?"
	if strings.Contains(loginURL, "?") {
		separator = "&"
	}
	return loginURL + separator + query.Encode(), nil
}

// RedirectionAction produces the redirect initiating authentication against
// the identity provider. It is callable regardless of ticket state.
func RedirectionAction(ctx sso.Context) (gocas.HTTPAction, error) {
	loginURL, err := LoginURL(ctx)
	if err != nil {
		return nil, err
	}
	return gocas.FoundAction{Location: loginURL}, nil
}
