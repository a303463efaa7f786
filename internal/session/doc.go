// Package session holds the bearer credential and the identity resolved from it.
//
// A credential becomes current through [Store.Restore] or [Store.Login]. Whenever the current
// credential changes, the store verifies it against GET /me. A successful check resolves the
// identity; a failed one discards the credential and its persisted copy without surfacing an
// error, leaving the client logged out.
//
// The store implements [oauth2.TokenSource], so the API client's authenticated transport always
// reads the credential that is current when a request is sent.
package session
