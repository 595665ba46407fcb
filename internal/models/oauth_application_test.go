package models

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthApplication_AllowsGrant(t *testing.T) {
	tests := []struct {
		name       string
		grantTypes string
		grant      string
		want       bool
	}{
		{name: "single grant", grantTypes: "password", grant: "password", want: true},
		{name: "among others", grantTypes: "refresh_token password", grant: "password", want: true},
		{name: "extra whitespace", grantTypes: "  password  ", grant: "password", want: true},
		{name: "not listed", grantTypes: "device_code", grant: "password", want: false},
		{name: "prefix only", grantTypes: "password_legacy", grant: "password", want: false},
		{name: "empty", grantTypes: "", grant: "password", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &OAuthApplication{GrantTypes: tt.grantTypes}
			assert.Equal(t, tt.want, app.AllowsGrant(tt.grant))
		})
	}
}

func TestOAuthApplication_ClientSecret(t *testing.T) {
	app := &OAuthApplication{}

	secret, err := app.GenerateClientSecret(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(secret, "apg_"))
	assert.NotEqual(t, secret, app.ClientSecret, "only the hash is stored")

	assert.True(t, app.ValidateClientSecret([]byte(secret)))
	assert.False(t, app.ValidateClientSecret([]byte("apg_wrong")))
}

func TestUser_Roles(t *testing.T) {
	assert.True(t, (&User{Role: "admin"}).IsAdmin())
	assert.False(t, (&User{Role: "user"}).IsAdmin())
	assert.False(t, (&User{AuthSource: "local"}).IsExternal())
	assert.False(t, (&User{}).IsExternal())
	assert.True(t, (&User{AuthSource: "http_api"}).IsExternal())
}
