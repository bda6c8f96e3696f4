// Package strutil contains functions to help handling strings.
package strutil

import "strings"

// IsAbsoluteHTTP reports whether the URL is absolute with an http or https
// scheme. Post logout targets forwarded to the identity provider must be
// absolute, relative ones only make sense locally.
func IsAbsoluteHTTP(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
