package ticket

import (
	"fmt"

	"github.com/luikyv/go-cas/internal/jwtutil"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// Validator contacts the identity provider to exchange a service ticket for
// an asserted identity.
type Validator interface {
	Validate(ctx sso.Context, ticket, serviceURL string) (*gocas.Profile, error)
}

// For selects the validator for a protocol. The selection is a pure function
// of the configuration.
func For(protocol gocas.Protocol) (Validator, error) {
	switch protocol {
	case gocas.ProtocolCAS10:
		return cas10Validator{}, nil
	case gocas.ProtocolCAS20:
		return casXMLValidator{path: "serviceValidate"}, nil
	case gocas.ProtocolCAS20Proxy:
		return casXMLValidator{path: "proxyValidate", proxy: true}, nil
	case gocas.ProtocolCAS30, "":
		return casXMLValidator{path: "p3/serviceValidate"}, nil
	case gocas.ProtocolCAS30Proxy:
		return casXMLValidator{path: "p3/proxyValidate", proxy: true}, nil
	case gocas.ProtocolSAML:
		return saml11Validator{}, nil
	default:
		return nil, gocas.NewError(gocas.ErrorCodeConfiguration,
			fmt.Sprintf("unsupported protocol %s", protocol))
	}
}

// Validate runs the ticket through the validator matching the configured
// protocol and stamps the resulting profile with the client name. Tickets
// issued as signed JWTs are validated locally when a ticket JWKS is
// configured.
func Validate(ctx sso.Context, ticket, serviceURL string) (*gocas.Profile, error) {
	var profile *gocas.Profile
	var err error
	if len(ctx.TicketJWKS.Keys) != 0 && jwtutil.IsJWS(ticket) {
		profile, err = validateJWT(ctx, ticket, serviceURL)
	} else {
		var validator Validator
		validator, err = For(ctx.Protocol)
		if err != nil {
			return nil, err
		}
		profile, err = validator.Validate(ctx, ticket, serviceURL)
	}
	if err != nil {
		return nil, err
	}

	profile.ClientName = ctx.ClientName
	return profile, nil
}
