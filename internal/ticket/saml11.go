package ticket

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/timeutil"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// saml11Validator exchanges the ticket through the identity provider's
// SAML 1.1 validation endpoint.
type saml11Validator struct{}

func (v saml11Validator) Validate(ctx sso.Context, t, serviceURL string) (*gocas.Profile, error) {
	endpoint := ctx.PrefixURL + "samlValidate?TARGET=" + url.QueryEscape(serviceURL)
	envelope := samlValidateEnvelope(t)

	req, err := http.NewRequestWithContext(ctx.Context(), http.MethodPost, endpoint,
		strings.NewReader(envelope))
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"could not build the validation request", err)
	}
	req.Header.Set("Content-Type", "text/xml")

	resp, err := ctx.HTTPClient().Do(req)
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"could not reach the identity provider", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInflatedSize))
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"could not read the validation response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, gocas.NewError(gocas.ErrorCodeValidation,
			fmt.Sprintf("the identity provider responded with status %d", resp.StatusCode))
	}

	return parseSAMLResponse(string(body))
}

func samlValidateEnvelope(t string) string {
	return fmt.Sprintf(`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"><SOAP-ENV:Header/><SOAP-ENV:Body>`+
		`<samlp:Request xmlns:samlp="urn:oasis:names:tc:SAML:1.0:protocol" MajorVersion="1" MinorVersion="1" RequestID="%s" IssueInstant="%s">`+
		`<samlp:AssertionArtifact>%s</samlp:AssertionArtifact></samlp:Request>`+
		`</SOAP-ENV:Body></SOAP-ENV:Envelope>`,
		"_"+uuid.NewString(), timeutil.Now().Format("2006-01-02T15:04:05Z"), t)
}

// parseSAMLResponse extracts the name identifier and attributes from a
// SAML 1.1 response, tolerating namespace prefixes and unknown elements.
func parseSAMLResponse(body string) (*gocas.Profile, error) {
	profile := &gocas.Profile{}

	decoder := xml.NewDecoder(strings.NewReader(body))
	var current, attributeName string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, gocas.WrapError(gocas.ErrorCodeValidation,
				"the validation response is not valid XML", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			current = t.Name.Local
			if current == "Attribute" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "AttributeName" {
						attributeName = attr.Value
					}
				}
			}
		case xml.EndElement:
			if t.Name.Local == "Attribute" {
				attributeName = ""
			}
			current = ""
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			switch current {
			case "NameIdentifier":
				if profile.ID == "" {
					profile.ID = text
				}
			case "AttributeValue":
				if attributeName != "" {
					if profile.Attributes == nil {
						profile.Attributes = map[string]any{}
					}
					profile.Attributes[attributeName] = text
				}
			}
		}
	}

	if profile.ID == "" {
		return nil, gocas.NewError(gocas.ErrorCodeValidation,
			"the identity provider rejected the ticket")
	}
	return profile, nil
}
