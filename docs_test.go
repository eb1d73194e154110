package auth0_test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/adrienbrault/auth0-go/auth"
)

func Example_session() {
	// Create a validated Config for your tenant
	cfg, err := auth.NewConfig(
		"your-tenant.auth0.com",
		"your_client_id",
		"your_client_secret",
		"http://localhost:3000/callback",
	)
	if err != nil {
		// handle error
	}

	// Build the login URL that starts the authorization code flow; keep the
	// returned state and verify it when the callback arrives
	s, err := auth.New(cfg)
	if err != nil {
		// handle error
	}
	loginURL, state, err := s.AuthorizeURL(auth.WithScopes("email"))
	if err != nil {
		// handle error
	}
	fmt.Println("open url to kick-off authentication:", loginURL, state)

	// Create a http.Handler for the provider's authentication redirects.  The
	// Session is bound to the hosting framework's session values and the
	// incoming request; the first profile read performs the code exchange.
	callbackHandler := func(w http.ResponseWriter, r *http.Request) {
		sessionValues := map[string]string{} // your framework's session bag
		s, err := auth.New(cfg,
			auth.WithSessionValues(sessionValues),
			auth.WithRequest(r),
		)
		if err != nil {
			// handle error
		}

		user, err := s.User(r.Context())
		if err != nil {
			// handle error
		}
		if user == nil {
			// not authenticated, send the caller through the login URL
			return
		}
		fmt.Println(user.ID(), user.UserMetadata())

		// Later, end the session and wipe stored credentials
		if err := s.Logout(context.Background()); err != nil {
			// handle error
		}
	}
	http.HandleFunc("/callback", callbackHandler)
}
