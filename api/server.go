package api

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/holiman/uint256"

	"bazaar/domain/assets"
	"bazaar/domain/market"
	"bazaar/service"
)

// Handler adapts the settlement engine and the asset registry to
// MarketAPI. The context parameters exist for the RPC layer; the
// engine itself is synchronous.
type Handler struct {
	svc *service.MarketService
	reg *assets.Registry
}

func NewHandler(svc *service.MarketService, reg *assets.Registry) *Handler {
	return &Handler{svc: svc, reg: reg}
}

func (h *Handler) ListItem(_ context.Context, caller, collection market.Address, tokenID uint64, price *uint256.Int) error {
	return h.svc.ListItem(caller, collection, tokenID, price)
}

func (h *Handler) BuyItem(_ context.Context, caller, collection market.Address, tokenID uint64, paid *uint256.Int) error {
	return h.svc.BuyItem(caller, collection, tokenID, paid)
}

func (h *Handler) CancelListing(_ context.Context, caller, collection market.Address, tokenID uint64) error {
	return h.svc.CancelListing(caller, collection, tokenID)
}

func (h *Handler) UpdateListing(_ context.Context, caller, collection market.Address, tokenID uint64, newPrice *uint256.Int) error {
	return h.svc.UpdateListing(caller, collection, tokenID, newPrice)
}

func (h *Handler) WithdrawProceeds(_ context.Context, caller market.Address) (*uint256.Int, error) {
	return h.svc.WithdrawProceeds(caller)
}

func (h *Handler) GetListing(_ context.Context, collection market.Address, tokenID uint64) (market.Listing, error) {
	return h.svc.GetListing(collection, tokenID), nil
}

func (h *Handler) GetProceeds(_ context.Context, addr market.Address) (*uint256.Int, error) {
	return h.svc.GetProceeds(addr), nil
}

func (h *Handler) ActiveListings(_ context.Context) ([]market.Listing, error) {
	return h.svc.ActiveListings(), nil
}

func (h *Handler) Mint(_ context.Context, collection, owner market.Address) (uint64, error) {
	return h.reg.Mint(collection, owner), nil
}

func (h *Handler) Approve(_ context.Context, collection market.Address, tokenID uint64, caller, operator market.Address) error {
	return h.reg.Approve(collection, tokenID, caller, operator)
}

func (h *Handler) SetApprovalForAll(_ context.Context, collection market.Address, caller, operator market.Address, approved bool) error {
	return h.reg.SetApprovalForAll(collection, caller, operator, approved)
}

func (h *Handler) OwnerOf(_ context.Context, collection market.Address, tokenID uint64) (market.Address, error) {
	return h.reg.OwnerOf(collection, tokenID)
}

func (h *Handler) TokenURI(_ context.Context, collection market.Address, tokenID uint64) (string, error) {
	return h.reg.URI(collection, tokenID)
}

func (h *Handler) Identity(_ context.Context) (market.Address, error) {
	return h.svc.Self(), nil
}

var _ MarketAPI = (*Handler)(nil)

// NewServer mounts the handler under the Market namespace at /rpc/v0.
func NewServer(h *Handler) http.Handler {
	rpcServer := jsonrpc.NewServer()
	rpcServer.Register("Market", h)

	mux := http.NewServeMux()
	mux.Handle("/rpc/v0", rpcServer)
	return mux
}
