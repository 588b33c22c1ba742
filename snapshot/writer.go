package snapshot

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"time"

	"github.com/holiman/uint256"

	"bazaar/domain/market"
)

type Writer struct {
	Dir string
}

// Write persists the registry and ledger at seq. The file is written
// to a temp path and renamed, so a crash never leaves a torn snapshot.
func (w *Writer) Write(seq uint64, listings *market.ListingRegistry, ledger *market.ValueLedger) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return err
	}

	s := Snapshot{
		Seq:      seq,
		Created:  time.Now(),
		Listings: make([]ListingEntry, 0, listings.Len()),
	}

	listings.Walk(func(l market.Listing) {
		s.Listings = append(s.Listings, ListingEntry{
			Collection: l.Collection.String(),
			TokenID:    l.TokenID,
			Price:      l.Price.Dec(),
			Seller:     l.Seller.String(),
		})
	})

	ledger.Walk(func(addr market.Address, bal *uint256.Int) {
		s.Balances = append(s.Balances, BalanceEntry{
			Owner:  addr.String(),
			Amount: bal.Dec(),
		})
	})

	tmp := filepath.Join(w.Dir, "snapshot.bin.tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(&s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(w.Dir, "snapshot.bin"))
}
