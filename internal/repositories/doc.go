// Package repositories implements SQLite persistence for the client's local state.
//
// The only durable client state is the bearer credential. [CredentialRepository] stores it as a
// key/value row in the credentials table so a restarted CLI or TUI can restore the session.
//
// [TokenStore] binds a repository to one fixed key and satisfies session.Persister.
package repositories
