// Package bili is a thin, credentialed HTTP client for the bilibili
// message APIs used by this module: the four notification feeds
// (liked, replied, mentioned, system) and the two deletion endpoints.
//
// The client never acquires credentials itself; the caller supplies a
// ready CSRF token and, optionally, its own *http.Client (shared
// read-only across concurrent fetches).
//
// Failure classification follows three stable identities:
//
//   - ErrTransport: the request never produced a usable response
//   - ErrUnexpectedStatus: a non-2xx HTTP response
//   - ErrUnexpectedShape: the response body is not the expected JSON
//
// Deletion endpoints additionally surface *APIError when the service
// answers 2xx with a non-zero business code; the raw body is preserved
// for diagnostics.
package bili
