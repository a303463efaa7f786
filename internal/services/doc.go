// Package services implements the HTTP client for the plant exchange REST backend.
//
// # PlantService
//
// [PlantService] exposes one method per backend endpoint and implements [PlantAPI]:
//
//	POST   /register           → Register (unauthenticated)
//	POST   /login              → Login (unauthenticated)
//	GET    /me                 → Me (bearer passed explicitly, used for session verification)
//	GET    /plants             → Feed
//	GET    /plants/my          → MyPlants
//	POST   /plants             → CreatePlant
//	POST   /plants/{id}/like   → Like
//	DELETE /plants/{id}/like   → Unlike
//	GET    /plants/{id}/likes  → Likers
//	GET    /sample-images      → SampleImages (unauthenticated)
//
// # Authentication
//
// Authenticated endpoints go through an [oauth2.Transport] whose token source is the session
// store, so the Authorization header always carries the credential that is current at send time.
//
// # Error Handling
//
// Non-2xx responses become [*APIError], carrying the backend's "detail" message when present.
// [ErrorMessage] turns any error into the text shown inline on the auth form.
//   - [shared.ErrNotAuthenticated] : 401 responses, or no credential present
//   - [shared.ErrAPIRequest] : every other non-2xx response
//
// No request is retried.
//
// # Raw Access
//
// [APIService] performs raw requests and returns [APIResponse] for the `plantx api` commands.
package services
