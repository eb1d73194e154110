package auth

import (
	"fmt"
	"strings"
)

// Endpoint names one of the provider's fixed endpoint families.
type Endpoint string

const (
	EndpointAPI       Endpoint = "api"
	EndpointAuthorize Endpoint = "authorize"
	EndpointToken     Endpoint = "token"
)

var endpointTemplates = map[Endpoint]string{
	EndpointAPI:       "https://%s/api/",
	EndpointAuthorize: "https://%s/authorize",
	EndpointToken:     "https://%s/oauth/token",
}

// URL builds the full URL for a named endpoint by substituting the configured
// domain into the endpoint's template and appending path, stripping one
// leading path separator from path if present.  An unknown endpoint name is a
// programmer error and panics.
func (c *Config) URL(endpoint Endpoint, path string) string {
	tmpl, ok := endpointTemplates[endpoint]
	if !ok {
		panic(fmt.Sprintf("auth: unknown endpoint %q", endpoint))
	}
	base := fmt.Sprintf(tmpl, c.Domain)
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return base
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + path
}
