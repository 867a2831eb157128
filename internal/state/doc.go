// Package state owns the in-memory catalog and its loading lifecycle.
//
// # Lifecycle
//
// The Engine moves through four phases:
//
//	idle → loading → ready | error
//
// Transitions happen only through Load. Ready and error are mutually
// exclusive and hold until the next Load; an error clears the catalog and
// carries one fixed user-facing message regardless of the underlying
// failure class (the class stays visible in the log).
//
// # Concurrent Loads
//
// Loads are not coalesced. Each Load takes a generation ticket on entry and
// applies its result only if no newer Load has started since, so the most
// recently initiated request always wins even when an older one completes
// later. The UI triggers Load from its own command goroutines and reads the
// outcome through Snapshot.
//
// # Snapshots
//
// Snapshot returns a defensive copy: category slices are cloned and the
// category list is re-sorted lexicographically on every call. Consumers
// never see a half-applied catalog.
//
// # Deep Links
//
// ResolveLink maps joiefull://vetement/{id} onto the current ready catalog
// by exact id match. Anything else — wrong scheme or host, extra path
// segments, a non-numeric id, a catalog that is not ready — resolves to
// nothing. It never panics on malformed input.
package state
