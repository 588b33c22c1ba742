package service

import (
	"github.com/holiman/uint256"

	"bazaar/domain/market"
)

// Access guard: stateless predicates consulted before any mutation.
// They are checks, not corrections; each failure maps onto exactly one
// error in the market taxonomy.

func isPriceValid(price *uint256.Int) bool {
	return price != nil && !price.IsZero()
}

// isCurrentOwner reports whether the asset registry sees caller as the
// current owner. Registry lookup failures count as not owning.
func (s *MarketService) isCurrentOwner(caller, collection market.Address, tokenID uint64) bool {
	owner, err := s.assets.OwnerOf(collection, tokenID)
	if err != nil {
		return false
	}
	return owner == caller
}

// isApprovedForMarketplace reports whether the marketplace identity may
// transfer the asset, either per-token or operator-wide.
func (s *MarketService) isApprovedForMarketplace(collection market.Address, tokenID uint64) bool {
	return s.assets.IsApprovedFor(collection, tokenID, s.self)
}
