package ticket

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// GrantTicketGranting exchanges a username and password for a ticket
// granting ticket through the identity provider's REST endpoint.
func GrantTicketGranting(ctx sso.Context, username, password string) (string, error) {
	if ctx.RestURL == "" {
		return "", gocas.NewError(gocas.ErrorCodeConfiguration, "restUrl cannot be blank")
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := post(ctx, restTicketsURL(ctx), form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", gocas.NewError(gocas.ErrorCodeValidation,
			fmt.Sprintf("the identity provider refused the credentials with status %d", resp.StatusCode))
	}

	// The granting ticket is the last segment of the Location header.
	location := resp.Header.Get("Location")
	if i := strings.LastIndex(location, "/"); i >= 0 && i+1 < len(location) {
		return location[i+1:], nil
	}
	return "", gocas.NewError(gocas.ErrorCodeValidation,
		"the identity provider did not return a ticket granting ticket")
}

// GrantService exchanges a ticket granting ticket for a service ticket bound
// to the given service URL.
func GrantService(ctx sso.Context, granting, serviceURL string) (string, error) {
	form := url.Values{}
	form.Set(gocas.ParamService, serviceURL)

	resp, err := post(ctx, restTicketsURL(ctx)+"/"+granting, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInflatedSize))
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeValidation,
			"could not read the service ticket response", err)
	}
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		return "", gocas.NewError(gocas.ErrorCodeValidation,
			fmt.Sprintf("the identity provider did not grant a service ticket, status %d", resp.StatusCode))
	}

	return strings.TrimSpace(string(body)), nil
}

// ValidateRest authenticates a username and password through the REST flow
// and validates the resulting service ticket with the configured protocol
// validator.
func ValidateRest(ctx sso.Context, username, password, serviceURL string) (*gocas.TokenCredentials, error) {
	granting, err := GrantTicketGranting(ctx, username, password)
	if err != nil {
		return nil, err
	}

	serviceTicket, err := GrantService(ctx, granting, serviceURL)
	if err != nil {
		return nil, err
	}

	profile, err := Validate(ctx, serviceTicket, serviceURL)
	if err != nil {
		return nil, err
	}

	return &gocas.TokenCredentials{Token: serviceTicket, Profile: profile}, nil
}

func restTicketsURL(ctx sso.Context) string {
	return strings.TrimSuffix(ctx.RestURL, "/") + "/v1/tickets"
}

func post(ctx sso.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx.Context(), http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"could not build the ticket request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ctx.HTTPClient().Do(req)
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"could not reach the identity provider", err)
	}
	return resp, nil
}
