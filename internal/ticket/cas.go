package ticket

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// AttributeProxyGranting is the profile attribute carrying the proxy
// granting ticket resolved after a proxy validation.
const AttributeProxyGranting = "proxyGrantingTicket"

// cas10Validator implements the CAS 1.0 plain text validation protocol.
type cas10Validator struct{}

func (v cas10Validator) Validate(ctx sso.Context, t, serviceURL string) (*gocas.Profile, error) {
	body, err := call(ctx, validationURL(ctx, "validate", t, serviceURL, false))
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(strings.NewReader(body))
	if !scanner.Scan() || scanner.Text() != "yes" {
		return nil, gocas.NewError(gocas.ErrorCodeValidation,
			"the identity provider rejected the ticket")
	}
	if !scanner.Scan() || scanner.Text() == "" {
		return nil, gocas.NewError(gocas.ErrorCodeValidation,
			"the validation response has no principal")
	}

	return &gocas.Profile{ID: scanner.Text()}, nil
}

// casXMLValidator implements the CAS 2.0 and 3.0 XML validation protocols,
// including their proxy variants.
type casXMLValidator struct {
	path  string
	proxy bool
}

func (v casXMLValidator) Validate(ctx sso.Context, t, serviceURL string) (*gocas.Profile, error) {
	body, err := call(ctx, validationURL(ctx, v.path, t, serviceURL, v.proxy))
	if err != nil {
		return nil, err
	}

	resp, err := parseServiceResponse(body)
	if err != nil {
		return nil, err
	}
	if !resp.success {
		return nil, gocas.NewError(gocas.ErrorCodeValidation,
			fmt.Sprintf("the identity provider rejected the ticket: %s %s",
				resp.failureCode, resp.failureMessage))
	}

	profile := &gocas.Profile{ID: resp.user, Attributes: resp.attributes}
	if resp.proxyGrantingIOU != "" && ctx.ProxyGrantings != nil {
		// The granting ticket arrived on the proxy receptor; only the IOU
		// travels in the validation response.
		granting, err := ctx.ProxyGrantings.Granting(ctx.Context(), resp.proxyGrantingIOU)
		if err == nil && granting != "" {
			if profile.Attributes == nil {
				profile.Attributes = map[string]any{}
			}
			profile.Attributes[AttributeProxyGranting] = granting
		}
	}

	return profile, nil
}

// Proxy asks the identity provider for a proxy ticket targeting another
// service, using a previously obtained proxy granting ticket.
func Proxy(ctx sso.Context, granting, targetService string) (string, error) {
	query := url.Values{}
	query.Set("pgt", granting)
	query.Set("targetService", targetService)

	body, err := call(ctx, ctx.PrefixURL+"proxy?"+query.Encode())
	if err != nil {
		return "", err
	}

	proxyTicket := elementText(body, "proxyTicket")
	if proxyTicket == "" {
		return "", gocas.NewError(gocas.ErrorCodeValidation,
			"the identity provider did not grant a proxy ticket")
	}
	return proxyTicket, nil
}

func validationURL(ctx sso.Context, path, t, serviceURL string, proxy bool) string {
	query := url.Values{}
	query.Set(gocas.ParamService, serviceURL)
	query.Set(gocas.ParamTicket, t)
	if ctx.Renew {
		query.Set(gocas.ParamRenew, "true")
	}
	if proxy && ctx.ProxyCallbackURL != "" {
		query.Set(gocas.ParamProxyCallback, ctx.ProxyCallbackURL)
	}

	return ctx.PrefixURL + path + "?" + query.Encode()
}

func call(ctx sso.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeValidation,
			"could not build the validation request", err)
	}

	resp, err := ctx.HTTPClient().Do(req)
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeValidation,
			"could not reach the identity provider", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInflatedSize))
	if err != nil {
		return "", gocas.WrapError(gocas.ErrorCodeValidation,
			"could not read the validation response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", gocas.NewError(gocas.ErrorCodeValidation,
			fmt.Sprintf("the identity provider responded with status %d", resp.StatusCode))
	}

	return string(body), nil
}

type serviceResponse struct {
	success          bool
	user             string
	attributes       map[string]any
	proxyGrantingIOU string
	failureCode      string
	failureMessage   string
}

// parseServiceResponse scans the validation XML tolerantly. Only element
// local names matter, namespace prefixes and unknown elements are ignored.
func parseServiceResponse(body string) (serviceResponse, error) {
	var resp serviceResponse

	decoder := xml.NewDecoder(strings.NewReader(body))
	var inAttributes bool
	var current string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return resp, gocas.WrapError(gocas.ErrorCodeValidation,
				"the validation response is not valid XML", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			current = t.Name.Local
			switch current {
			case "authenticationSuccess":
				resp.success = true
			case "authenticationFailure":
				for _, attr := range t.Attr {
					if attr.Name.Local == "code" {
						resp.failureCode = attr.Value
					}
				}
			case "attributes":
				inAttributes = true
			}
		case xml.EndElement:
			if t.Name.Local == "attributes" {
				inAttributes = false
			}
			current = ""
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			switch {
			case current == "user":
				resp.user = text
			case current == "proxyGrantingTicket":
				resp.proxyGrantingIOU = text
			case resp.failureCode != "" && resp.failureMessage == "":
				resp.failureMessage = text
			case inAttributes && current != "" && current != "attributes":
				if resp.attributes == nil {
					resp.attributes = map[string]any{}
				}
				resp.attributes[current] = text
			}
		}
	}

	if resp.success && resp.user == "" {
		return resp, gocas.NewError(gocas.ErrorCodeValidation,
			"the validation response has no principal")
	}
	return resp, nil
}

// elementText returns the text content of the first element with the given
// local name.
func elementText(body, localName string) string {
	decoder := xml.NewDecoder(strings.NewReader(body))
	var inElement bool
	for {
		token, err := decoder.Token()
		if err != nil {
			return ""
		}

		switch t := token.(type) {
		case xml.StartElement:
			inElement = t.Name.Local == localName
		case xml.EndElement:
			inElement = false
		case xml.CharData:
			if inElement {
				if text := strings.TrimSpace(string(t)); text != "" {
					return text
				}
			}
		}
	}
}
