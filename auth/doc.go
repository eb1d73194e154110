// auth implements the provider-side credential session for the typical
// 3-legged OAuth2/OIDC authorization code flow against a fixed identity
// provider.
//
// A Session is constructed once per incoming request.  It restores any
// previously persisted credentials from its store, and the first credential
// getter that finds no value lazily exchanges the request's authorization
// code at the provider's token endpoint — at most once per instance.  The
// exchange decodes the returned id_token, fetches the user's profile, and
// persists whatever the session's PersistencePolicy selects.
//
//	cfg, err := auth.NewConfig("example.auth0.com", clientID, clientSecret, redirectURI)
//	if err != nil {
//		// handle error
//	}
//	s, err := auth.New(cfg, auth.WithRequest(r), auth.WithSessionValues(sessionValues))
//	if err != nil {
//		// handle error
//	}
//	user, err := s.User(r.Context())
//	if err != nil {
//		// handle error
//	}
//	if user == nil {
//		authURL, _, _ := s.AuthorizeURL()
//		http.Redirect(w, r, authURL, http.StatusFound)
//		return
//	}
package auth
