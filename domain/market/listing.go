package market

import "github.com/holiman/uint256"

// Listing is a fixed-price offer for one unique asset.
type Listing struct {
	Collection Address      `json:"collection"`
	TokenID    uint64       `json:"tokenId"`
	Price      *uint256.Int `json:"price"`
	Seller     Address      `json:"seller"`
}

// Key identifies at most one active listing.
type Key struct {
	Collection Address
	TokenID    uint64
}

func (l Listing) Key() Key {
	return Key{Collection: l.Collection, TokenID: l.TokenID}
}

// SentinelListing is the "no listing present" value returned by lookups:
// zero price, zero seller. A real listing can never equal it because
// price is validated strictly positive on creation and update.
func SentinelListing(collection Address, tokenID uint64) Listing {
	return Listing{
		Collection: collection,
		TokenID:    tokenID,
		Price:      uint256.NewInt(0),
		Seller:     ZeroAddress,
	}
}

// IsSentinel reports whether l is the absence value.
func (l Listing) IsSentinel() bool {
	return l.Seller.IsZero() && (l.Price == nil || l.Price.IsZero())
}
