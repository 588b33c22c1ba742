// Package snapshot persists a consistent point-in-time copy of the
// listing registry and value ledger, so the entry WAL can be truncated
// and boot does not replay from the beginning of time.
package snapshot

import "time"

type Snapshot struct {
	Seq      uint64
	Created  time.Time
	Listings []ListingEntry
	Balances []BalanceEntry
}

type ListingEntry struct {
	Collection string
	TokenID    uint64
	Price      string
	Seller     string
}

type BalanceEntry struct {
	Owner  string
	Amount string
}
