package sso

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/luikyv/go-cas/pkg/gocas"
)

type Context struct {
	Response http.ResponseWriter
	Request  *http.Request
	*Configuration
}

func NewContext(
	w http.ResponseWriter,
	r *http.Request,
	config *Configuration,
) Context {
	return Context{
		Configuration: config,
		Response:      w,
		Request:       r,
	}
}

func Handler(
	config *Configuration,
	exec func(ctx Context),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exec(NewContext(w, r, config))
	}
}

// RequestParam looks the parameter up in the query string first and then in
// the POST form, so both front channel and back channel messages are covered.
func (ctx Context) RequestParam(name string) string {
	if value := ctx.Request.URL.Query().Get(name); value != "" {
		return value
	}

	if err := ctx.Request.ParseForm(); err != nil {
		return ""
	}
	return ctx.Request.PostFormValue(name)
}

func (ctx Context) RequestMethod() string {
	return ctx.Request.Method
}

// ResolveURL applies the configured URL resolver, defaulting to the URL
// unchanged.
func (ctx Context) ResolveURL(url string) string {
	if ctx.URLResolver == nil {
		return url
	}
	return ctx.URLResolver(url, ctx.Request)
}

func (ctx Context) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}

func (ctx Context) HTTPClient() *http.Client {
	if ctx.HTTPClientFunc == nil {
		return http.DefaultClient
	}
	return ctx.HTTPClientFunc(ctx.Context())
}

// WriteAction realizes the action through the configured adapter.
func (ctx Context) WriteAction(action gocas.HTTPAction) {
	// Check if the request was terminated before writing anything.
	select {
	case <-ctx.Context().Done():
		return
	default:
	}

	adapter := ctx.ActionAdapter
	if adapter == nil {
		adapter = gocas.DefaultActionAdapter
	}
	adapter(ctx.Response, ctx.Request, action)
}

// RenderError converts an error into a terminal action. Errors that are not
// a [gocas.Error] are mapped to an internal error action.
func (ctx Context) RenderError(err error) gocas.HTTPAction {
	if ctx.RenderErrorFunc != nil {
		return ctx.RenderErrorFunc(ctx.Request, err)
	}

	var casErr gocas.Error
	if !errors.As(err, &casErr) {
		return gocas.StatusAction{Code: http.StatusInternalServerError}
	}
	return gocas.StatusAction{Code: casErr.StatusCode()}
}

func (ctx Context) WriteError(err error) {
	var casErr gocas.Error
	if !errors.As(err, &casErr) {
		casErr = gocas.WrapError(gocas.ErrorCodeInternal, "internal error", err)
	}

	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(casErr.StatusCode())
	_ = json.NewEncoder(ctx.Response).Encode(casErr)
}

//---------------------------------------- context.Context ----------------------------------------//

func (ctx Context) Context() context.Context {
	return ctx.Request.Context()
}

func (ctx Context) Deadline() (deadline time.Time, ok bool) {
	return ctx.Context().Deadline()
}

func (ctx Context) Done() <-chan struct{} {
	return ctx.Context().Done()
}

func (ctx Context) Err() error {
	return ctx.Context().Err()
}

func (ctx Context) Value(key any) any {
	return ctx.Context().Value(key)
}
