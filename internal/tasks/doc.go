// Package tasks holds the view-models behind each screen of the plant exchange client.
//
// # Consistency
//
// Every mutation is followed by a full refetch of the affected collection (read-after-write).
// Local state is never patched optimistically, so what is displayed always reflects a read that
// completed after the mutation was confirmed.
//
// # View-Models
//
//  1. [Feed] : every listing, with like and unlike actions
//     - [Feed.Load] replaces the listings wholesale
//     - [Feed.Toggle] picks like or unlike from the listing's reported state, then refetches
//     - [CanLike] suppresses the action on the caller's own listings
//
//  2. [ListingForm] : the four-field creation draft
//     - sample photo URLs are fetched once and can overwrite the photo field
//     - [ListingForm.Submit] coerces the price to a number, validates, and posts
//     - the form never navigates away and never refetches any feed
//
//  3. [Owned] : the caller's listings plus who liked each one
//     - [Owned.Load] fans out one likers request per listing
//     - results arrive on a channel in completion order and are merged by listing id
//
//  4. [AuthForm] : login and registration, with an inline error message
//
// # Error Handling
//
// Only [AuthForm] and validation on [ListingForm] surface messages. Read and mutation failures are
// logged and returned; prior state is kept and the loading flag is cleared. Nothing is retried.
package tasks
