package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/adrienbrault/auth0-go/internal/httputil"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrRequestFailed is returned when the profile API answers with a
	// non-2xx status.  The wrapping error carries the status code and any
	// error description from the response body.
	ErrRequestFailed = errors.New("user profile request failed")
)

// Client talks to the provider's user profile API for a single tenant domain.
// Requests are authenticated per call with the end-user's id_token, so one
// Client can serve any number of users.
type Client struct {
	domain     string
	httpClient *http.Client
}

// Option defines a common functional options type
type Option func(interface{})

type options struct {
	withHTTPClient *http.Client
}

func getOpts(opt ...Option) options {
	opts := options{}
	for _, o := range opt {
		o(&opts)
	}
	return opts
}

// WithHTTPClient provides an optional http client, which is still wrapped so
// every request carries the SDK identification header.
func WithHTTPClient(c *http.Client) Option {
	return func(o interface{}) {
		if o, ok := o.(*options); ok {
			o.withHTTPClient = c
		}
	}
}

// New creates a profile API client for the given tenant domain.
// Supported options: WithHTTPClient
func New(domain string, opt ...Option) (*Client, error) {
	const op = "users.New"
	if domain == "" {
		return nil, fmt.Errorf("%s: domain is empty: %w", op, ErrInvalidParameter)
	}
	opts := getOpts(opt...)
	httpClient := opts.withHTTPClient
	if httpClient == nil {
		var err error
		httpClient, err = httputil.NewClient("")
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create http client: %w", op, err)
		}
	} else {
		httpClient = httputil.WrapClient(httpClient)
	}
	return &Client{
		domain:     domain,
		httpClient: httpClient,
	}, nil
}

// Get fetches the profile for userID, authenticating with the end-user's
// id_token.
func (c *Client) Get(ctx context.Context, idToken string, userID string) (User, error) {
	const op = "users.Client.Get"
	if err := checkCreds(idToken, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c.do(ctx, op, http.MethodGet, c.userURL(userID), idToken, nil)
}

// Update applies the given attributes to the user via a partial update and
// returns the server's new representation of the profile.  The attributes
// record is sent verbatim: a key set to nil serializes as JSON null, which
// deletes that attribute server-side; omitted keys are left untouched.
func (c *Client) Update(ctx context.Context, idToken string, userID string, attributes map[string]interface{}) (User, error) {
	const op = "users.Client.Update"
	if err := checkCreds(idToken, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if attributes == nil {
		return nil, fmt.Errorf("%s: attributes are nil: %w", op, ErrInvalidParameter)
	}
	body, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to encode attributes: %w", op, err)
	}
	return c.do(ctx, op, http.MethodPatch, c.userURL(userID), idToken, body)
}

func checkCreds(idToken, userID string) error {
	if idToken == "" {
		return fmt.Errorf("id_token is empty: %w", ErrInvalidParameter)
	}
	if userID == "" {
		return fmt.Errorf("user id is empty: %w", ErrInvalidParameter)
	}
	return nil
}

func (c *Client) userURL(userID string) string {
	return fmt.Sprintf("https://%s/api/users/%s", c.domain, url.PathEscape(userID))
}

func (c *Client) do(ctx context.Context, op string, method string, rawURL string, idToken string, body []byte) (User, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to create request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+idToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: unable to read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s: status %d: %s: %w", op, resp.StatusCode, apiErrorDescription(payload), ErrRequestFailed)
	}

	var u User
	if err := json.Unmarshal(payload, &u); err != nil {
		return nil, fmt.Errorf("%s: unable to decode profile: %w", op, err)
	}
	return u, nil
}

// apiErrorDescription pulls the provider's error description out of an error
// response body, falling back to the raw body.
func apiErrorDescription(payload []byte) string {
	var apiErr struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Message     string `json:"message"`
	}
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		switch {
		case apiErr.Description != "":
			return apiErr.Description
		case apiErr.Message != "":
			return apiErr.Message
		case apiErr.Error != "":
			return apiErr.Error
		}
	}
	return string(payload)
}
