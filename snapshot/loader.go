package snapshot

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"bazaar/domain/market"
)

// Load restores a snapshot into the registry and ledger and returns
// its sequence. A missing file is not an error: fresh start.
func Load(path string, listings *market.ListingRegistry, ledger *market.ValueLedger) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil // snapshot optional
	}
	defer f.Close()

	var s Snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return 0, err
	}

	for _, e := range s.Listings {
		collection, err := market.ParseAddress(e.Collection)
		if err != nil {
			return 0, fmt.Errorf("snapshot listing %d: %w", e.TokenID, err)
		}
		seller, err := market.ParseAddress(e.Seller)
		if err != nil {
			return 0, fmt.Errorf("snapshot listing %d: %w", e.TokenID, err)
		}
		price, err := uint256.FromDecimal(e.Price)
		if err != nil {
			return 0, fmt.Errorf("snapshot listing %d: %w", e.TokenID, err)
		}
		listings.Put(market.Listing{
			Collection: collection,
			TokenID:    e.TokenID,
			Price:      price,
			Seller:     seller,
		})
	}

	for _, e := range s.Balances {
		owner, err := market.ParseAddress(e.Owner)
		if err != nil {
			return 0, fmt.Errorf("snapshot balance: %w", err)
		}
		amount, err := uint256.FromDecimal(e.Amount)
		if err != nil {
			return 0, fmt.Errorf("snapshot balance: %w", err)
		}
		if !amount.IsZero() {
			ledger.Credit(owner, amount)
		}
	}

	return s.Seq, nil
}
