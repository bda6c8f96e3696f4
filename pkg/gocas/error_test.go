package gocas_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/luikyv/go-cas/pkg/gocas"
	"github.com/stretchr/testify/assert"
)

func TestError_StatusCode(t *testing.T) {
	var testCases = []struct {
		code       gocas.ErrorCode
		statusCode int
	}{
		{gocas.ErrorCodeValidation, http.StatusUnauthorized},
		{gocas.ErrorCodeDecoding, http.StatusBadRequest},
		{gocas.ErrorCodeConfiguration, http.StatusInternalServerError},
		{gocas.ErrorCodeSessionStore, http.StatusInternalServerError},
		{gocas.ErrorCodeInternal, http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(
			fmt.Sprintf("%s results in %d", testCase.code, testCase.statusCode),
			func(t *testing.T) {
				err := gocas.NewError(testCase.code, "description")
				assert.Equal(t, testCase.statusCode, err.StatusCode())
			},
		)
	}
}

func TestError_Unwrap(t *testing.T) {
	// Given.
	cause := errors.New("cause")
	err := gocas.WrapError(gocas.ErrorCodeValidation, "description", cause)

	// Then.
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "cause")
}

func TestProtocol_IsProxy(t *testing.T) {
	var testCases = []struct {
		protocol gocas.Protocol
		isProxy  bool
	}{
		{gocas.ProtocolCAS10, false},
		{gocas.ProtocolCAS20, false},
		{gocas.ProtocolCAS20Proxy, true},
		{gocas.ProtocolCAS30, false},
		{gocas.ProtocolCAS30Proxy, true},
		{gocas.ProtocolSAML, false},
	}

	for _, testCase := range testCases {
		t.Run(
			fmt.Sprintf("%s is proxy? %t", testCase.protocol, testCase.isProxy),
			func(t *testing.T) {
				assert.Equal(t, testCase.isProxy, testCase.protocol.IsProxy())
			},
		)
	}
}
