package api

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"
)

// NewMarketRPC creates a MarketAPI client against addr (the /rpc/v0
// endpoint). The returned closer shuts the connection down.
func NewMarketRPC(ctx context.Context, addr string, requestHeader http.Header) (MarketAPI, jsonrpc.ClientCloser, error) {
	var res MarketStruct
	closer, err := jsonrpc.NewMergeClient(ctx, addr, "Market",
		[]interface{}{
			&res.Internal,
		},
		requestHeader,
	)
	return &res, closer, err
}
