package gocas

import (
	"net/http"
	"strings"
)

// RelativeURLResolver returns a resolver completing relative URLs against
// the scheme and host of the current request. Absolute URLs pass through
// unchanged.
func RelativeURLResolver() URLResolver {
	return func(url string, r *http.Request) string {
		if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
			return url
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if !strings.HasPrefix(url, "/") {
			url = "/" + url
		}
		return scheme + "://" + r.Host + url
	}
}
