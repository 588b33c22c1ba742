package market

import "errors"

// Error taxonomy surfaced synchronously to callers. Every failure is a
// local rejection of the requested operation with zero state mutation.
var (
	ErrPriceMustBeAboveZero        = errors.New("market: price must be above zero")
	ErrNotApprovedForMarketplace   = errors.New("market: not approved for marketplace")
	ErrItemAlreadyListed           = errors.New("market: item already listed")
	ErrNotOwner                    = errors.New("market: not owner")
	ErrNotListed                   = errors.New("market: not listed")
	ErrPriceNotMet                 = errors.New("market: price not met")
	ErrUpdatedPriceMustBeAboveZero = errors.New("market: updated price must be above zero")
	ErrNoProceeds                  = errors.New("market: no proceeds")
)
