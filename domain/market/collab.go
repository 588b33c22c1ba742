package market

import "github.com/holiman/uint256"

// AssetRegistry is the external registry of unique assets. The engine
// only reads ownership and approval state before mutating, and invokes
// TransferFrom strictly after its own state is committed. The call may
// run arbitrary code, including reentering the engine.
type AssetRegistry interface {
	OwnerOf(collection Address, tokenID uint64) (Address, error)
	IsApprovedFor(collection Address, tokenID uint64, operator Address) bool
	TransferFrom(collection Address, tokenID uint64, from, to Address) error
}

// FundsTransfer sends value out of the marketplace. A send either
// succeeds fully or reports an error; the engine treats failure as the
// whole withdrawal failing. The call may reenter the engine.
type FundsTransfer interface {
	Send(to Address, amount *uint256.Int) error
}
