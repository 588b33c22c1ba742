// Package market holds the pure domain state of the marketplace:
// the listing registry keyed by (collection, token), the proceeds
// ledger, the event types, and the error taxonomy surfaced to callers.
//
// The package performs no validation and no I/O. Invariant enforcement
// and all coordination live in the service layer; the collaborator
// capabilities (asset registry, value transfer) are consumed through
// the interfaces declared here.
package market
