package gocas

import (
	"net/http"
)

// HTTPAction is the terminal result of every engine operation. It is a value
// describing the protocol level response to produce, either a redirect, a
// direct content response or an empty acknowledgment.
type HTTPAction interface {
	StatusCode() int
}

// FoundAction redirects the user agent with a 302.
type FoundAction struct {
	Location string
}

func (FoundAction) StatusCode() int {
	return http.StatusFound
}

// ContentAction responds with a 200 and the given body.
type ContentAction struct {
	Content string
}

func (ContentAction) StatusCode() int {
	return http.StatusOK
}

// NoContentAction responds with an empty 204.
type NoContentAction struct{}

func (NoContentAction) StatusCode() int {
	return http.StatusNoContent
}

// StatusAction responds with an arbitrary status code and no body.
type StatusAction struct {
	Code int
}

func (a StatusAction) StatusCode() int {
	return a.Code
}

// ActionAdapter realizes an HTTPAction as an actual HTTP response.
type ActionAdapter func(w http.ResponseWriter, r *http.Request, action HTTPAction)

// DefaultActionAdapter writes actions with their status codes, setting the
// Location header for redirects.
func DefaultActionAdapter(w http.ResponseWriter, r *http.Request, action HTTPAction) {
	switch a := action.(type) {
	case FoundAction:
		http.Redirect(w, r, a.Location, http.StatusFound)
	case ContentAction:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(a.Content))
	default:
		w.WriteHeader(action.StatusCode())
	}
}
