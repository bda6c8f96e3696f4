package logout

import (
	"net/http"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

func RegisterHandlers(router *http.ServeMux, config *sso.Configuration, middlewares ...gocas.MiddlewareFunc) {
	router.Handle(
		"GET "+config.EndpointLogout,
		gocas.ApplyMiddlewares(sso.Handler(config, handlerLogout), middlewares...),
	)
	router.Handle(
		"POST "+config.EndpointLogout,
		gocas.ApplyMiddlewares(sso.Handler(config, handlerLogout), middlewares...),
	)
}

func handlerLogout(ctx sso.Context) {
	ctx.WriteAction(Perform(ctx))
}
