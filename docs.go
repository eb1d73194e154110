// auth0 provides a collection of related packages for integrating server-side
// Go applications with the Auth0 identity provider: the authorization-code
// exchange and credential session (auth), credential persistence (store),
// id_token decoding (idtoken), and the user profile API (users).
//
// See README.md
package auth0
