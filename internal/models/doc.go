// Package models defines the data transfer objects exchanged with the plant exchange backend.
//
// The package contains two categories of types:
//
// 1. Backend resources: transient, possibly stale copies of server state
//   - [Identity] : the user resolved from a bearer credential (GET /me)
//   - [Plant] : a listing offered for exchange, with aggregate like data
//   - [Liker] and [LikesSummary] : who liked a listing (owner only)
//
// 2. Client drafts and payloads: view-local values that are never persisted
//   - [PlantDraft] : the four-field creation form as typed
//   - [NewPlant] : the coerced payload posted to POST /plants
//   - [Credentials] : registration and login fields
//
// Identifiers use [ID], which accepts both JSON strings and numbers.
package models
