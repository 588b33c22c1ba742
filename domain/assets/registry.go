// Package assets provides an in-process registry of unique assets used
// as the external collaborator behind market.AssetRegistry: per
// collection it tracks ownership, per-token approvals, and operator
// approvals, and moves ownership on transfer. Minting and token URIs
// live here, outside the settlement core.
package assets

import (
	"errors"
	"sync"

	"bazaar/domain/market"
)

// TokenURI is served for every minted token.
const TokenURI = "ipfs://bafybeig37ioir76s7mg5oobetncojcm3c3hxasyd4rvid4jqhy4gkaheg4/?filename=0-PUG.json"

var (
	ErrUnknownCollection = errors.New("assets: unknown collection")
	ErrUnknownToken      = errors.New("assets: unknown token")
	ErrNotTokenOwner     = errors.New("assets: caller is not token owner")
	ErrWrongFrom         = errors.New("assets: from is not current owner")
)

type token struct {
	owner    market.Address
	approved market.Address
}

type collection struct {
	nextID    uint64
	tokens    map[uint64]*token
	operators map[market.Address]map[market.Address]bool
}

// Registry implements market.AssetRegistry.
type Registry struct {
	mu          sync.Mutex
	collections map[market.Address]*collection
}

func NewRegistry() *Registry {
	return &Registry{
		collections: make(map[market.Address]*collection),
	}
}

// Mint creates a token in col owned by owner and returns its ID.
// The collection is created on first mint.
func (r *Registry) Mint(col market.Address, owner market.Address) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[col]
	if !ok {
		c = &collection{
			tokens:    make(map[uint64]*token),
			operators: make(map[market.Address]map[market.Address]bool),
		}
		r.collections[col] = c
	}

	id := c.nextID
	c.nextID++
	c.tokens[id] = &token{owner: owner}
	return id
}

// Approve grants operator transfer rights over one token.
// Only the current owner may approve.
func (r *Registry) Approve(col market.Address, tokenID uint64, caller, operator market.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok, err := r.token(col, tokenID)
	if err != nil {
		return err
	}
	if tok.owner != caller {
		return ErrNotTokenOwner
	}
	tok.approved = operator
	return nil
}

// SetApprovalForAll grants or revokes operator rights over every token
// the caller owns in col.
func (r *Registry) SetApprovalForAll(col market.Address, caller, operator market.Address, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[col]
	if !ok {
		return ErrUnknownCollection
	}
	ops, ok := c.operators[caller]
	if !ok {
		ops = make(map[market.Address]bool)
		c.operators[caller] = ops
	}
	if approved {
		ops[operator] = true
	} else {
		delete(ops, operator)
	}
	return nil
}

// OwnerOf implements market.AssetRegistry.
func (r *Registry) OwnerOf(col market.Address, tokenID uint64) (market.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok, err := r.token(col, tokenID)
	if err != nil {
		return market.ZeroAddress, err
	}
	return tok.owner, nil
}

// IsApprovedFor implements market.AssetRegistry. True when operator
// holds a per-token approval or an operator-wide approval from the
// token's owner.
func (r *Registry) IsApprovedFor(col market.Address, tokenID uint64, operator market.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.collections[col]
	if !ok {
		return false
	}
	tok, ok := c.tokens[tokenID]
	if !ok {
		return false
	}
	if tok.approved == operator && !operator.IsZero() {
		return true
	}
	return c.operators[tok.owner][operator]
}

// TransferFrom implements market.AssetRegistry. Ownership moves from
// the current owner to to; the per-token approval is cleared.
func (r *Registry) TransferFrom(col market.Address, tokenID uint64, from, to market.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tok, err := r.token(col, tokenID)
	if err != nil {
		return err
	}
	if tok.owner != from {
		return ErrWrongFrom
	}
	tok.owner = to
	tok.approved = market.ZeroAddress
	return nil
}

// URI returns the metadata URI for a minted token.
func (r *Registry) URI(col market.Address, tokenID uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.token(col, tokenID); err != nil {
		return "", err
	}
	return TokenURI, nil
}

func (r *Registry) token(col market.Address, tokenID uint64) (*token, error) {
	c, ok := r.collections[col]
	if !ok {
		return nil, ErrUnknownCollection
	}
	tok, ok := c.tokens[tokenID]
	if !ok {
		return nil, ErrUnknownToken
	}
	return tok, nil
}
