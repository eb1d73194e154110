package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_URL(t *testing.T) {
	t.Parallel()
	c := &Config{Domain: "example.auth0.com"}

	tests := []struct {
		name     string
		endpoint Endpoint
		path     string
		want     string
	}{
		{
			name:     "api-with-path",
			endpoint: EndpointAPI,
			path:     "users/u1",
			want:     "https://example.auth0.com/api/users/u1",
		},
		{
			name:     "api-strips-one-leading-separator",
			endpoint: EndpointAPI,
			path:     "/users/u1",
			want:     "https://example.auth0.com/api/users/u1",
		},
		{
			name:     "authorize-bare",
			endpoint: EndpointAuthorize,
			path:     "",
			want:     "https://example.auth0.com/authorize",
		},
		{
			name:     "token-bare",
			endpoint: EndpointToken,
			path:     "",
			want:     "https://example.auth0.com/oauth/token",
		},
		{
			name:     "token-with-path",
			endpoint: EndpointToken,
			path:     "/introspect",
			want:     "https://example.auth0.com/oauth/token/introspect",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(tt.want, c.URL(tt.endpoint, tt.path))
		})
	}

	t.Run("unknown-endpoint-panics", func(t *testing.T) {
		assert := assert.New(t)
		assert.Panics(func() {
			c.URL(Endpoint("bogus"), "")
		})
	})
}
