// store defines the small persistence capability the credential session
// relies on between requests, along with three built-in implementations: a
// no-op store for explicitly disabled persistence, a store over the hosting
// application's session values, and a Redis-backed store for shared session
// backends.
package store
