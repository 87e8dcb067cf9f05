// Package client is the single chokepoint for every network call the
// NoteHub client makes.
//
// # Overview
//
// HTTPClient joins a request path onto a fixed base URL, attaches the bearer
// token held by a TokenStore, negotiates JSON vs. text response bodies and
// turns failures into a uniform error shape:
//
//   - *HTTPError    the server answered with a non-2xx status
//   - *NetworkError no response was obtained at all
//
// Callers that want to react to expired sessions derive *AuthExpiredError
// from a 401 with AsAuthExpired; the client itself never clears the token.
//
// Every failure is logged before it is returned. There are no retries and
// no response caching: each call reaches the network exactly once.
//
// # Tokens
//
// TokenStore abstracts where the bearer token lives. MemoryTokenStore keeps
// it for the life of the process; a durable SQLite-backed store lives in
// internal/client/repositories/metadata. The token is read once per request,
// so a request keeps whatever token was current when it was sent.
package client
