// Package logout implements the logout side of the protocol: the pipeline
// deciding local cleanup, session destruction and central logout, and the
// processing of logout messages pushed by the identity provider.
package logout

import (
	"log/slog"
	"regexp"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/strutil"
	"github.com/luikyv/go-cas/pkg/gocas"
)

var defaultLogoutURLPattern = regexp.MustCompile(gocas.DefaultLogoutURLPattern)

// Perform runs the logout pipeline for the current request. Errors raised
// inside the pipeline are converted into a terminal action, never
// propagated, so local cleanup is always favored over completeness.
func Perform(ctx sso.Context) gocas.HTTPAction {
	action, err := perform(ctx)
	if err != nil {
		ctx.Log().Error("logout failed", slog.String("error", err.Error()))
		return ctx.RenderError(err)
	}
	return action
}

func perform(ctx sso.Context) (gocas.HTTPAction, error) {
	pattern := ctx.LogoutURLPattern
	if pattern == nil {
		pattern = defaultLogoutURLPattern
	}

	profiles, err := ctx.SessionManager.Profiles(ctx.Context(), ctx.Request)
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeSessionStore,
			"could not load the session profiles", err)
	}

	// Compute the post logout redirect target.
	redirectURL := ctx.PostLogoutURL
	if url := ctx.RequestParam(gocas.ParamURL); url != "" && pattern.MatchString(url) {
		redirectURL = url
	}
	var action gocas.HTTPAction = gocas.NoContentAction{}
	if redirectURL != "" {
		action = gocas.FoundAction{Location: redirectURL}
	}

	// Local logout when requested, forced when several profiles coexist so
	// no stale cross identity provider state is left behind.
	if ctx.LocalLogout || len(profiles) > 1 {
		if err := ctx.SessionManager.RemoveProfiles(ctx.Context(), ctx.Request); err != nil {
			return nil, gocas.WrapError(gocas.ErrorCodeSessionStore,
				"could not remove the session profiles", err)
		}
		if ctx.DestroySession {
			destroyed, err := ctx.SessionManager.DestroySession(ctx.Context(), ctx.Request)
			if err != nil || !destroyed {
				// Destruction failure does not abort the pipeline.
				ctx.Log().Error("unable to destroy the web session, the session store may not support this feature")
			}
		}
	}

	// Central logout: the first client returning a logout action wins and
	// replaces the redirect computed above. Iteration order matters, do not
	// parallelize.
	if ctx.CentralLogout {
		for _, profile := range profiles {
			if profile.ClientName == "" {
				continue
			}
			client, ok := ctx.FindClient(profile.ClientName)
			if !ok {
				continue
			}

			var targetURL string
			if redirectURL != "" && strutil.IsAbsoluteHTTP(redirectURL) {
				targetURL = redirectURL
			}
			if logoutAction, ok := client.LogoutAction(ctx.Context(), profile, targetURL); ok {
				action = logoutAction
				break
			}
		}
	}

	return action, nil
}
