package authn

import (
	"net/http"

	"github.com/luikyv/go-cas/internal/logout"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

func RegisterHandlers(router *http.ServeMux, config *sso.Configuration, middlewares ...gocas.MiddlewareFunc) {
	router.Handle(
		"GET "+config.EndpointCallback,
		gocas.ApplyMiddlewares(sso.Handler(config, handlerCallback), middlewares...),
	)
	router.Handle(
		"POST "+config.EndpointCallback,
		gocas.ApplyMiddlewares(sso.Handler(config, handlerCallback), middlewares...),
	)
}

// handlerCallback serves the callback endpoint. Besides the ticket returned
// after login, the identity provider also uses this endpoint to push proxy
// granting tickets and logout messages.
func handlerCallback(ctx sso.Context) {
	if ctx.ProxyReceptorURL != "" && handleProxyReceptor(ctx) {
		return
	}

	if ctx.RequestParam(gocas.ParamLogoutRequest) != "" {
		logout.ProcessMessage(ctx)
		return
	}

	creds, err := Credentials(ctx)
	if err != nil {
		ctx.WriteAction(ctx.RenderError(err))
		return
	}

	if creds == nil {
		// No ticket means no credentials, never an error. A silent gateway
		// return lands on the post login URL unauthenticated, anything else
		// starts authentication.
		if ctx.Gateway {
			ctx.WriteAction(gocas.FoundAction{Location: ctx.PostLoginURL})
			return
		}
		action, err := RedirectionAction(ctx)
		if err != nil {
			ctx.WriteError(err)
			return
		}
		ctx.WriteAction(action)
		return
	}

	if err := Establish(ctx, creds); err != nil {
		ctx.WriteError(err)
		return
	}
	ctx.WriteAction(gocas.FoundAction{Location: ctx.PostLoginURL})
}

func handleProxyReceptor(ctx sso.Context) bool {
	iou := ctx.RequestParam(gocas.ParamProxyIOU)
	granting := ctx.RequestParam(gocas.ParamProxyID)
	if iou == "" || granting == "" {
		return false
	}

	if ctx.ProxyGrantings == nil {
		ctx.WriteError(gocas.NewError(gocas.ErrorCodeConfiguration,
			"no proxy granting store is configured"))
		return true
	}
	if err := ctx.ProxyGrantings.Save(ctx.Context(), iou, granting); err != nil {
		ctx.WriteError(gocas.WrapError(gocas.ErrorCodeSessionStore,
			"could not save the proxy granting ticket", err))
		return true
	}

	ctx.WriteAction(gocas.ContentAction{})
	return true
}
