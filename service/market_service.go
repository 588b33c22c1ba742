package service

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	logging "github.com/ipfs/go-log/v2"

	"bazaar/domain/market"
	"bazaar/infra/sequence"
	entrywal "bazaar/infra/wal/entry"
	exitwal "bazaar/infra/wal/exit"
)

var log = logging.Logger("market")

// MarketService is the settlement engine. The mutex is the unit of
// mutual exclusion: all internal effects (journal, registry, ledger,
// outbox) commit under it, and it is released before any external
// call, so one level of synchronous reentrancy observes fully settled
// state and can never re-trigger a sale or double-credit proceeds.
type MarketService struct {
	mu sync.Mutex

	self     market.Address
	listings *market.ListingRegistry
	ledger   *market.ValueLedger

	assets market.AssetRegistry
	funds  market.FundsTransfer

	seqGen   *sequence.Sequencer
	entryWAL *entrywal.WAL
	exitWAL  *exitwal.ExitWAL
}

// NewMarketService wires all dependencies.
// No globals. No magic.
func NewMarketService(
	self market.Address,
	listings *market.ListingRegistry,
	ledger *market.ValueLedger,
	assets market.AssetRegistry,
	funds market.FundsTransfer,
	seqGen *sequence.Sequencer,
	entryWAL *entrywal.WAL,
	exitWAL *exitwal.ExitWAL,
) *MarketService {
	return &MarketService{
		self:     self,
		listings: listings,
		ledger:   ledger,
		assets:   assets,
		funds:    funds,
		seqGen:   seqGen,
		entryWAL: entryWAL,
		exitWAL:  exitWAL,
	}
}

// Self returns the marketplace identity used for approval checks.
func (s *MarketService) Self() market.Address {
	return s.self
}

//
// ──────────────────────────────────────────────────────────
// Commands
// ──────────────────────────────────────────────────────────
//

// ListItem puts an asset up for sale at a fixed price.
// Unlisted → Listed.
func (s *MarketService) ListItem(caller, collection market.Address, tokenID uint64, price *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !isPriceValid(price) {
		return market.ErrPriceMustBeAboveZero
	}
	if _, ok := s.listings.Get(collection, tokenID); ok {
		return market.ErrItemAlreadyListed
	}
	if !s.isCurrentOwner(caller, collection, tokenID) {
		return market.ErrNotOwner
	}
	if !s.isApprovedForMarketplace(collection, tokenID) {
		return market.ErrNotApprovedForMarketplace
	}

	l := market.Listing{
		Collection: collection,
		TokenID:    tokenID,
		Price:      price.Clone(),
		Seller:     caller,
	}

	seq := s.seqGen.Next()
	s.journal(entrywal.RecordList, seq, encodeListingOp(l))
	s.listings.Put(l)
	s.emit(seq, market.EventItemListed, market.ItemListedEvent{
		Seller:     caller,
		Collection: collection,
		TokenID:    tokenID,
		Price:      l.Price.Dec(),
	})

	log.Infow("item listed",
		"seq", seq, "collection", collection, "token", tokenID,
		"seller", caller, "price", l.Price.Dec())
	return nil
}

// BuyItem settles a purchase: the listing is removed and the seller
// credited before the asset transfer is invoked. Overpayment is
// retained as seller proceeds. Listed → Unlisted.
func (s *MarketService) BuyItem(caller, collection market.Address, tokenID uint64, paid *uint256.Int) error {
	s.mu.Lock()

	listing, ok := s.listings.Get(collection, tokenID)
	if !ok {
		s.mu.Unlock()
		return market.ErrNotListed
	}
	if paid == nil || paid.Lt(listing.Price) {
		s.mu.Unlock()
		return market.ErrPriceNotMet
	}

	paid = paid.Clone()
	seq := s.seqGen.Next()
	s.journal(entrywal.RecordBuy, seq, encodeBuyOp(caller, listing, paid))
	s.listings.Remove(collection, tokenID)
	s.ledger.Credit(listing.Seller, paid)
	s.emit(seq, market.EventItemBought, market.ItemBoughtEvent{
		Buyer:      caller,
		Collection: collection,
		TokenID:    tokenID,
		Price:      listing.Price.Dec(),
	})
	s.mu.Unlock()

	// Interaction strictly after effects: the registry may run
	// arbitrary code, including calls back into this engine.
	if err := s.assets.TransferFrom(collection, tokenID, listing.Seller, caller); err != nil {
		s.revertBuy(seq, caller, listing, paid)
		return fmt.Errorf("asset transfer: %w", err)
	}

	log.Infow("item bought",
		"seq", seq, "collection", collection, "token", tokenID,
		"buyer", caller, "seller", listing.Seller, "paid", paid.Dec())
	return nil
}

// CancelListing takes an asset off sale. Listed → Unlisted.
func (s *MarketService) CancelListing(caller, collection market.Address, tokenID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings.Get(collection, tokenID)
	if !ok {
		return market.ErrNotListed
	}
	if caller != listing.Seller {
		return market.ErrNotOwner
	}

	seq := s.seqGen.Next()
	s.journal(entrywal.RecordCancel, seq, encodeListingOp(listing))
	s.listings.Remove(collection, tokenID)
	s.emit(seq, market.EventItemCancelled, market.ItemCancelledEvent{
		Seller:     caller,
		Collection: collection,
		TokenID:    tokenID,
	})

	log.Infow("listing cancelled",
		"seq", seq, "collection", collection, "token", tokenID, "seller", caller)
	return nil
}

// UpdateListing changes the price in place. Observably a re-listing:
// it emits the same event type as ListItem. Listed → Listed.
func (s *MarketService) UpdateListing(caller, collection market.Address, tokenID uint64, newPrice *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	listing, ok := s.listings.Get(collection, tokenID)
	if !ok {
		return market.ErrNotListed
	}
	if caller != listing.Seller {
		return market.ErrNotOwner
	}
	if !isPriceValid(newPrice) {
		return market.ErrUpdatedPriceMustBeAboveZero
	}

	listing.Price = newPrice.Clone()

	seq := s.seqGen.Next()
	s.journal(entrywal.RecordUpdate, seq, encodeListingOp(listing))
	s.listings.Put(listing)
	s.emit(seq, market.EventItemListed, market.ItemListedEvent{
		Seller:     caller,
		Collection: collection,
		TokenID:    tokenID,
		Price:      listing.Price.Dec(),
	})

	log.Infow("listing updated",
		"seq", seq, "collection", collection, "token", tokenID,
		"seller", caller, "price", listing.Price.Dec())
	return nil
}

// WithdrawProceeds drains the caller's balance and sends it out. The
// drain commits before the send; a failed send restores the balance.
func (s *MarketService) WithdrawProceeds(caller market.Address) (*uint256.Int, error) {
	s.mu.Lock()

	bal := s.ledger.Balance(caller)
	if bal.IsZero() {
		s.mu.Unlock()
		return nil, market.ErrNoProceeds
	}

	seq := s.seqGen.Next()
	s.journal(entrywal.RecordWithdraw, seq, encodeLedgerOp(caller, bal))
	amount := s.ledger.Drain(caller)
	s.mu.Unlock()

	if err := s.funds.Send(caller, amount); err != nil {
		s.refund(caller, amount)
		return nil, fmt.Errorf("value send: %w", err)
	}

	log.Infow("proceeds withdrawn", "seq", seq, "owner", caller, "amount", amount.Dec())
	return amount, nil
}

//
// ──────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────
//

// GetListing returns the active listing for (collection, token), or
// the sentinel if none exists. It never fails.
func (s *MarketService) GetListing(collection market.Address, tokenID uint64) market.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings.Get(collection, tokenID)
	if !ok {
		return market.SentinelListing(collection, tokenID)
	}
	l.Price = l.Price.Clone()
	return l
}

// GetProceeds returns addr's withdrawable balance.
func (s *MarketService) GetProceeds(addr market.Address) *uint256.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance(addr)
}

// ActiveListings returns a consistent copy of every active listing.
func (s *MarketService) ActiveListings() []market.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]market.Listing, 0, s.listings.Len())
	s.listings.Walk(func(l market.Listing) {
		l.Price = l.Price.Clone()
		out = append(out, l)
	})
	return out
}

//
// ──────────────────────────────────────────────────────────
// Rollback and plumbing
// ──────────────────────────────────────────────────────────
//

// revertBuy undoes a settled purchase whose asset transfer failed:
// credit reversed, listing restored, queued event dropped.
func (s *MarketService) revertBuy(seq uint64, buyer market.Address, listing market.Listing, paid *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rseq := s.seqGen.Next()
	s.journal(entrywal.RecordBuyRevert, rseq, encodeBuyOp(buyer, listing, paid))
	s.ledger.Debit(listing.Seller, paid)
	if _, ok := s.listings.Get(listing.Collection, listing.TokenID); !ok {
		s.listings.Put(listing)
	}
	if err := s.exitWAL.Delete(seq); err != nil {
		log.Warnw("outbox delete failed", "seq", seq, "err", err)
	}

	log.Warnw("buy reverted",
		"seq", seq, "collection", listing.Collection, "token", listing.TokenID, "buyer", buyer)
}

// refund restores a drained balance after a failed outbound send.
func (s *MarketService) refund(addr market.Address, amount *uint256.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seqGen.Next()
	s.journal(entrywal.RecordWithdrawRefund, seq, encodeLedgerOp(addr, amount))
	s.ledger.Credit(addr, amount)

	log.Warnw("withdrawal failed, balance restored", "seq", seq, "owner", addr, "amount", amount.Dec())
}

func (s *MarketService) journal(t entrywal.RecordType, seq uint64, payload []byte) {
	if err := s.entryWAL.Append(entrywal.NewRecord(t, seq, payload)); err != nil {
		log.Errorw("journal append failed", "seq", seq, "type", t, "err", err)
	}
}

func (s *MarketService) emit(seq uint64, typ string, payload any) {
	body, err := market.NewEnvelope(seq, typ, payload)
	if err != nil {
		log.Errorw("event encode failed", "seq", seq, "type", typ, "err", err)
		return
	}
	if err := s.exitWAL.PutNew(seq, body); err != nil {
		log.Warnw("outbox append failed", "seq", seq, "type", typ, "err", err)
	}
}
