package ticket

import (
	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/luikyv/go-cas/internal/sso"
	"github.com/luikyv/go-cas/internal/timeutil"
	"github.com/luikyv/go-cas/pkg/gocas"
)

// validateJWT validates a service ticket issued as a signed JWT locally
// against the configured ticket JWKS, without a round trip to the identity
// provider.
func validateJWT(ctx sso.Context, t, serviceURL string) (*gocas.Profile, error) {
	sigAlgs := ctx.TicketJWTSigAlgs
	if len(sigAlgs) == 0 {
		sigAlgs = []jose.SignatureAlgorithm{jose.RS256}
	}

	parsed, err := jwt.ParseSigned(t, sigAlgs)
	if err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"the ticket is not a valid JWT", err)
	}

	var claims jwt.Claims
	var rawClaims map[string]any
	if err := parsed.Claims(jwksKey(ctx.TicketJWKS, parsed), &claims, &rawClaims); err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"the ticket signature is not valid", err)
	}

	if err := claims.ValidateWithLeeway(jwt.Expected{
		AnyAudience: []string{serviceURL},
		Time:        timeutil.Now(),
	}, 0); err != nil {
		return nil, gocas.WrapError(gocas.ErrorCodeValidation,
			"the ticket claims are not valid", err)
	}

	attributes := map[string]any{}
	for name, value := range rawClaims {
		switch name {
		case "sub", "aud", "iss", "exp", "iat", "nbf", "jti":
		default:
			attributes[name] = value
		}
	}
	if len(attributes) == 0 {
		attributes = nil
	}

	return &gocas.Profile{ID: claims.Subject, Attributes: attributes}, nil
}

func jwksKey(jwks jose.JSONWebKeySet, parsed *jwt.JSONWebToken) any {
	for _, header := range parsed.Headers {
		if header.KeyID != "" {
			if keys := jwks.Key(header.KeyID); len(keys) != 0 {
				return keys[0].Key
			}
		}
	}

	if len(jwks.Keys) != 0 {
		return jwks.Keys[0].Key
	}
	return nil
}
