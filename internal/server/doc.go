// Package server provides HTTP routing, middleware, and an in-memory reference implementation of the
// plant exchange backend used for local development and integration tests.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns under a fixed path prefix.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which returns a set of [Route] values,
// allowing handlers to encapsulate route definitions within the implementation.
//
// # Reference Backend
//
// [Backend] keeps users and plants in memory and serves the same REST contract as the production
// backend, mounted under /api:
//   - POST /register, POST /login : issue HS256 JWTs whose subject is the user id
//   - GET /me : identity for the bearer token
//   - GET /plants, GET /plants/my, POST /plants : listings
//   - POST and DELETE /plants/{id}/like, GET /plants/{id}/likes : likes
//   - GET /sample-images : suggested photo URLs
//
// Errors are JSON objects carrying "detail". Validation failures (422) carry a list of
// {loc, msg, type} entries instead of a string.
//
// Passwords are hashed with bcrypt. Nothing is persisted; restarting the process starts empty.
package server
