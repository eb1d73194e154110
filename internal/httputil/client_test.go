package httputil

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelemetryValue(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	raw, err := base64.StdEncoding.DecodeString(TelemetryValue())
	require.NoError(err)

	var info map[string]interface{}
	require.NoError(json.Unmarshal(raw, &info))
	assert.Equal(SDKName, info["name"])
	assert.Equal(SDKVersion, info["version"])
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("sends-telemetry-header", func(t *testing.T) {
		assert, require := assert.New(t), require.New(t)
		var gotHeader string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get(TelemetryHeader)
		}))
		defer srv.Close()

		c, err := NewClient("")
		require.NoError(err)
		resp, err := c.Get(srv.URL)
		require.NoError(err)
		defer resp.Body.Close()

		assert.Equal(TelemetryValue(), gotHeader)
	})

	t.Run("invalid-ca-pem", func(t *testing.T) {
		assert := assert.New(t)
		c, err := NewClient("not a pem")
		assert.Nil(c)
		assert.ErrorIs(err, ErrInvalidCertificatePEM)
	})
}

func TestWrapClient(t *testing.T) {
	t.Parallel()
	assert, require := assert.New(t), require.New(t)

	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(TelemetryHeader)
	}))
	defer srv.Close()

	wrapped := WrapClient(&http.Client{})
	resp, err := wrapped.Get(srv.URL)
	require.NoError(err)
	defer resp.Body.Close()

	assert.NotEmpty(gotHeader)
}
