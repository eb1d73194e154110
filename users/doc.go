// users is a thin client for the provider's user profile API.  The session
// uses it to fetch the authenticated user's profile after the code exchange
// and to apply user_metadata updates; both operations authenticate with the
// end-user's id_token.
package users
