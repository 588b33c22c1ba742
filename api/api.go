package api

import (
	"context"

	"github.com/holiman/uint256"

	"bazaar/domain/market"
)

// MarketAPI is the JSON-RPC surface of the marketplace node. Commands
// take the caller explicitly; the transport carries no identity.
type MarketAPI interface {
	// Commands
	ListItem(ctx context.Context, caller, collection market.Address, tokenID uint64, price *uint256.Int) error
	BuyItem(ctx context.Context, caller, collection market.Address, tokenID uint64, paid *uint256.Int) error
	CancelListing(ctx context.Context, caller, collection market.Address, tokenID uint64) error
	UpdateListing(ctx context.Context, caller, collection market.Address, tokenID uint64, newPrice *uint256.Int) error
	WithdrawProceeds(ctx context.Context, caller market.Address) (*uint256.Int, error)

	// Queries
	GetListing(ctx context.Context, collection market.Address, tokenID uint64) (market.Listing, error)
	GetProceeds(ctx context.Context, addr market.Address) (*uint256.Int, error)
	ActiveListings(ctx context.Context) ([]market.Listing, error)

	// Asset registry passthrough, used by mint-and-list tooling.
	Mint(ctx context.Context, collection, owner market.Address) (uint64, error)
	Approve(ctx context.Context, collection market.Address, tokenID uint64, caller, operator market.Address) error
	SetApprovalForAll(ctx context.Context, collection market.Address, caller, operator market.Address, approved bool) error
	OwnerOf(ctx context.Context, collection market.Address, tokenID uint64) (market.Address, error)
	TokenURI(ctx context.Context, collection market.Address, tokenID uint64) (string, error)

	// Identity returns the marketplace address sellers must approve.
	Identity(ctx context.Context) (market.Address, error)
}

// MarketStruct is the wire-side implementation of MarketAPI: each
// field is filled in by the RPC client library.
type MarketStruct struct {
	Internal struct {
		ListItem          func(ctx context.Context, caller, collection market.Address, tokenID uint64, price *uint256.Int) error
		BuyItem           func(ctx context.Context, caller, collection market.Address, tokenID uint64, paid *uint256.Int) error
		CancelListing     func(ctx context.Context, caller, collection market.Address, tokenID uint64) error
		UpdateListing     func(ctx context.Context, caller, collection market.Address, tokenID uint64, newPrice *uint256.Int) error
		WithdrawProceeds  func(ctx context.Context, caller market.Address) (*uint256.Int, error)
		GetListing        func(ctx context.Context, collection market.Address, tokenID uint64) (market.Listing, error)
		GetProceeds       func(ctx context.Context, addr market.Address) (*uint256.Int, error)
		ActiveListings    func(ctx context.Context) ([]market.Listing, error)
		Mint              func(ctx context.Context, collection, owner market.Address) (uint64, error)
		Approve           func(ctx context.Context, collection market.Address, tokenID uint64, caller, operator market.Address) error
		SetApprovalForAll func(ctx context.Context, collection market.Address, caller, operator market.Address, approved bool) error
		OwnerOf           func(ctx context.Context, collection market.Address, tokenID uint64) (market.Address, error)
		TokenURI          func(ctx context.Context, collection market.Address, tokenID uint64) (string, error)
		Identity          func(ctx context.Context) (market.Address, error)
	}
}

func (c *MarketStruct) ListItem(ctx context.Context, caller, collection market.Address, tokenID uint64, price *uint256.Int) error {
	return c.Internal.ListItem(ctx, caller, collection, tokenID, price)
}

func (c *MarketStruct) BuyItem(ctx context.Context, caller, collection market.Address, tokenID uint64, paid *uint256.Int) error {
	return c.Internal.BuyItem(ctx, caller, collection, tokenID, paid)
}

func (c *MarketStruct) CancelListing(ctx context.Context, caller, collection market.Address, tokenID uint64) error {
	return c.Internal.CancelListing(ctx, caller, collection, tokenID)
}

func (c *MarketStruct) UpdateListing(ctx context.Context, caller, collection market.Address, tokenID uint64, newPrice *uint256.Int) error {
	return c.Internal.UpdateListing(ctx, caller, collection, tokenID, newPrice)
}

func (c *MarketStruct) WithdrawProceeds(ctx context.Context, caller market.Address) (*uint256.Int, error) {
	return c.Internal.WithdrawProceeds(ctx, caller)
}

func (c *MarketStruct) GetListing(ctx context.Context, collection market.Address, tokenID uint64) (market.Listing, error) {
	return c.Internal.GetListing(ctx, collection, tokenID)
}

func (c *MarketStruct) GetProceeds(ctx context.Context, addr market.Address) (*uint256.Int, error) {
	return c.Internal.GetProceeds(ctx, addr)
}

func (c *MarketStruct) ActiveListings(ctx context.Context) ([]market.Listing, error) {
	return c.Internal.ActiveListings(ctx)
}

func (c *MarketStruct) Mint(ctx context.Context, collection, owner market.Address) (uint64, error) {
	return c.Internal.Mint(ctx, collection, owner)
}

func (c *MarketStruct) Approve(ctx context.Context, collection market.Address, tokenID uint64, caller, operator market.Address) error {
	return c.Internal.Approve(ctx, collection, tokenID, caller, operator)
}

func (c *MarketStruct) SetApprovalForAll(ctx context.Context, collection market.Address, caller, operator market.Address, approved bool) error {
	return c.Internal.SetApprovalForAll(ctx, collection, caller, operator, approved)
}

func (c *MarketStruct) OwnerOf(ctx context.Context, collection market.Address, tokenID uint64) (market.Address, error) {
	return c.Internal.OwnerOf(ctx, collection, tokenID)
}

func (c *MarketStruct) TokenURI(ctx context.Context, collection market.Address, tokenID uint64) (string, error) {
	return c.Internal.TokenURI(ctx, collection, tokenID)
}

func (c *MarketStruct) Identity(ctx context.Context) (market.Address, error) {
	return c.Internal.Identity(ctx)
}

var _ MarketAPI = (*MarketStruct)(nil)
