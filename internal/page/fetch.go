package page

import (
	"context"
	"fmt"

	"github.com/rshade/tokenscope/internal/explorer"
	"github.com/rshade/tokenscope/internal/query"
)

// Execute runs req against client and packages the outcome for Apply.
func Execute(ctx context.Context, client explorer.Client, req query.Request) Response {
	resp := Response{Request: req}
	switch req.Resource {
	case query.ResourceToken:
		resp.Token, resp.Err = client.Token(ctx, req.Hash)
	case query.ResourceAddress:
		resp.Address, resp.Err = client.Address(ctx, req.Hash)
	case query.ResourceTokenTransfers:
		resp.Transfers, resp.Err = client.TokenTransfers(ctx, req.Hash, req.Params)
	case query.ResourceTokenHolders:
		resp.Holders, resp.Err = client.TokenHolders(ctx, req.Hash, req.Params)
	case query.ResourceTokenInventory:
		resp.Inventory, resp.Err = client.TokenInventory(ctx, req.Hash, req.Params)
	default:
		resp.Err = fmt.Errorf("unknown resource %q", req.Resource)
	}
	return resp
}
