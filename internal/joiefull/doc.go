// Package joiefull provides an HTTP client for the Joiefull clothing API.
//
// # Overview
//
// The package covers the three endpoints the application consumes:
//
//   - GET /clothes.json: the full catalog, replaced wholesale on every fetch
//   - POST /review: submit one review with its star rating
//   - POST /like: mirror a favorite toggle as a like/unlike
//
// # Request Handling
//
// All requests use context for cancellation, send Accept: application/json
// and a penderie User-Agent, and run under a single http.Client timeout.
// Catalog fetches additionally send Cache-Control: no-cache so intermediaries
// never serve stale prices or like counts.
//
// # Error Taxonomy
//
// Failures are classified so callers and tests can tell them apart even
// though the UI collapses them into one message:
//
//   - TransportError: no HTTP response at all (refused, DNS, timeout)
//   - StatusError: a response with a status outside 200-299
//   - DecodeError: malformed JSON or a catalog element missing required fields
//
// Use errors.As to branch on the class. A catalog element missing any
// required field rejects the whole payload; the client never returns a
// partial catalog.
//
// # Mutations
//
// SubmitReview and SubmitLike perform exactly one POST and never retry.
// Retry policy, if any, belongs to the caller.
package joiefull
