package httputil

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"

	"github.com/hashicorp/go-cleanhttp"
)

// SDK identification, sent with every provider request in the Auth0-Client
// header so the provider can attribute traffic to this SDK and version.
const (
	SDKName    = "auth0-go"
	SDKVersion = "1.0.0"

	// TelemetryHeader is the provider's SDK identification header name.
	TelemetryHeader = "Auth0-Client"
)

var ErrInvalidCertificatePEM = errors.New("invalid certificate PEM")

// TelemetryValue is the encoded value for the TelemetryHeader: base64 over a
// small JSON record naming the SDK, its version, and the Go runtime.
func TelemetryValue() string {
	info := map[string]interface{}{
		"name":    SDKName,
		"version": SDKVersion,
		"env": map[string]string{
			"go": runtime.Version(),
		},
	}
	raw, _ := json.Marshal(info)
	return base64.StdEncoding.EncodeToString(raw)
}

// telemetryTransport injects the SDK identification header into every
// outbound request.
type telemetryTransport struct {
	base http.RoundTripper
}

func (t *telemetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the original request
	clone := req.Clone(req.Context())
	clone.Header.Set(TelemetryHeader, TelemetryValue())
	return t.base.RoundTrip(clone)
}

// NewClient creates an http client for provider requests: a pooled transport,
// the optional CA certificate PEM (otherwise the system CA chain), and the
// SDK identification header on every request.
func NewClient(caPEM string) (*http.Client, error) {
	tr := cleanhttp.DefaultPooledTransport()

	if caPEM != "" {
		certPool := x509.NewCertPool()
		if ok := certPool.AppendCertsFromPEM([]byte(caPEM)); !ok {
			return nil, ErrInvalidCertificatePEM
		}
		tr.TLSClientConfig = &tls.Config{
			RootCAs: certPool,
		}
	}

	return &http.Client{
		Transport: &telemetryTransport{base: tr},
	}, nil
}

// WrapClient returns a copy of the given client whose transport adds the SDK
// identification header.  Used when the caller supplies its own http client.
func WrapClient(c *http.Client) *http.Client {
	base := c.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c
	wrapped.Transport = &telemetryTransport{base: base}
	return &wrapped
}
