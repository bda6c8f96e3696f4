package jwtutil

import (
	"regexp"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

func Sign(
	claims map[string]any,
	jwk jose.JSONWebKey,
	opts *jose.SignerOptions,
) (
	string,
	error,
) {
	signer, err := jose.NewSigner(
		jose.SigningKey{
			Algorithm: jose.SignatureAlgorithm(jwk.Algorithm),
			Key:       jwk.Key,
		},
		opts,
	)
	if err != nil {
		return "", err
	}

	jws, err := jwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return "", err
	}

	return jws, nil
}

func IsJWS(token string) bool {
	isJWS, _ := regexp.MatchString(
		"(^[\\w-]+\\.[\\w-]+\\.[\\w-]+$)",
		token,
	)
	return isJWS
}
