package service

import (
	"fmt"

	"bazaar/domain/market"
	"bazaar/infra/sequence"
	entrywal "bazaar/infra/wal/entry"
	"bazaar/snapshot"
)

/*
Restore rebuilds in-memory state: last snapshot first, then every
journaled operation after it.

IMPORTANT:
- This MUST run before accepting traffic
- Exit WAL is NOT replayed; unflushed events survive in pebble
*/
func Restore(
	snapPath string,
	walDir string,
	listings *market.ListingRegistry,
	ledger *market.ValueLedger,
	seqGen *sequence.Sequencer,
) error {
	snapSeq, err := snapshot.Load(snapPath, listings, ledger)
	if err != nil {
		return fmt.Errorf("snapshot load: %w", err)
	}

	lastSeq, err := entrywal.Replay(walDir, snapSeq, func(rec *entrywal.Record) error {
		return apply(rec, listings, ledger)
	})
	if err != nil {
		return fmt.Errorf("wal replay: %w", err)
	}

	// Resume sequencing AFTER replay
	seqGen.Reset(lastSeq)

	log.Infow("state restored",
		"snapshotSeq", snapSeq, "lastSeq", lastSeq, "listings", listings.Len())
	return nil
}

// apply re-executes one journaled mutation. Guards are not re-checked:
// the record was only written after its preconditions held.
func apply(rec *entrywal.Record, listings *market.ListingRegistry, ledger *market.ValueLedger) error {
	switch rec.Type {
	case entrywal.RecordList, entrywal.RecordUpdate:
		l, err := decodeListingOp(rec.Data)
		if err != nil {
			return err
		}
		listings.Put(l)

	case entrywal.RecordCancel:
		l, err := decodeListingOp(rec.Data)
		if err != nil {
			return err
		}
		listings.Remove(l.Collection, l.TokenID)

	case entrywal.RecordBuy:
		_, l, paid, err := decodeBuyOp(rec.Data)
		if err != nil {
			return err
		}
		listings.Remove(l.Collection, l.TokenID)
		ledger.Credit(l.Seller, paid)

	case entrywal.RecordBuyRevert:
		_, l, paid, err := decodeBuyOp(rec.Data)
		if err != nil {
			return err
		}
		ledger.Debit(l.Seller, paid)
		// Same rule as the live rollback: a re-listing that happened
		// between the buy and the revert keeps the slot.
		if _, ok := listings.Get(l.Collection, l.TokenID); !ok {
			listings.Put(l)
		}

	case entrywal.RecordWithdraw:
		addr, _, err := decodeLedgerOp(rec.Data)
		if err != nil {
			return err
		}
		ledger.Drain(addr)

	case entrywal.RecordWithdrawRefund:
		addr, amount, err := decodeLedgerOp(rec.Data)
		if err != nil {
			return err
		}
		ledger.Credit(addr, amount)

	default:
		return fmt.Errorf("unknown record type %d at seq %d", rec.Type, rec.Seq)
	}
	return nil
}
