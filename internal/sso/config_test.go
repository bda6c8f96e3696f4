package sso_test

import (
	"sync"
	"testing"

	"github.com/luikyv/go-cas/internal/sso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_MissingURLs(t *testing.T) {
	// Given.
	config := &sso.Configuration{}

	// When.
	err := config.Init()

	// Then.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loginUrl, prefixUrl and restUrl cannot be all blank")
}

func TestInit_DerivesPrefixURL(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		LoginURL: "http://myserver/login",
	}

	// When.
	err := config.Init()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "http://myserver/", config.PrefixURL)
	assert.Equal(t, "http://myserver/login", config.LoginURL)
}

func TestInit_DerivesLoginURL(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		PrefixURL: "http://myserver/",
	}

	// When.
	err := config.Init()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "http://myserver/login", config.LoginURL)
}

func TestInit_NormalizesPrefixURLSlash(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		LoginURL:  "http://myserver/login",
		PrefixURL: "http://myserver",
	}

	// When.
	err := config.Init()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "http://myserver/", config.PrefixURL)
}

func TestInit_LoginURLEndingInLogin(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		LoginURL: "https://login.foo.bar/login/login",
	}

	// When.
	err := config.Init()

	// Then.
	require.NoError(t, err)
	assert.Equal(t, "https://login.foo.bar/login/", config.PrefixURL)
}

func TestInit_RestURLOnly(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		RestURL: "http://myserver/cas",
	}

	// When.
	err := config.Init()

	// Then.
	require.NoError(t, err)
	assert.Empty(t, config.LoginURL)
}

func TestInit_Idempotent(t *testing.T) {
	// Given.
	config := &sso.Configuration{
		LoginURL: "http://myserver/login",
	}

	// When.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = config.Init()
		}()
	}
	wg.Wait()

	// Then.
	require.NoError(t, config.Init())
	assert.Equal(t, "http://myserver/", config.PrefixURL)
	assert.Equal(t, "http://myserver/login", config.LoginURL)
}

func TestFindClient(t *testing.T) {
	// Given.
	config := &sso.Configuration{}

	// When.
	_, ok := config.FindClient("missing")

	// Then.
	assert.False(t, ok)
}
