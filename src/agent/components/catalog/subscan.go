package catalog

import (
	"context"

	"github.com/stake-plus/polkaquery/src/agent/types"
)

// SubscanProvider supplies the indexed-API tool set. The descriptors are a
// curated subset of the Subscan HTTP API; regenerating them from the
// published API docs is an offline concern handled outside the service.
type SubscanProvider struct{}

func (SubscanProvider) Name() string { return "subscan" }

func (SubscanProvider) Generate(ctx context.Context) (map[string]*Tool, error) {
	tools := []*Tool{
		{
			Name: "account_balance",
			Description: "Fetch balance and account details (total, available, locked, " +
				"reserved) for a specific account address.",
			Backend:   types.RouteSubscan,
			APIPath:   "/api/v2/scan/accounts",
			APIMethod: "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"address": {Type: "string", Description: "The account address (SS58 format) to look up."},
				},
				Required: []string{"address"},
			},
		},
		{
			Name:        "extrinsic_detail",
			Description: "Fetch details of a specific extrinsic (transaction) by its hash: block, signer, call, fee, success status.",
			Backend:     types.RouteSubscan,
			APIPath:     "/api/scan/extrinsic",
			APIMethod:   "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"hash": {Type: "string", Description: "The 0x-prefixed extrinsic hash."},
				},
				Required: []string{"hash"},
			},
		},
		{
			Name:        "latest_blocks",
			Description: "Fetch the most recent finalized blocks, including extrinsic and event counts and the block producer.",
			Backend:     types.RouteSubscan,
			APIPath:     "/api/scan/blocks",
			APIMethod:   "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"row":  {Type: "integer", Description: "Number of blocks to return.", Default: 1},
					"page": {Type: "integer", Description: "Zero-based page index.", Default: 0},
				},
				Required: []string{},
			},
		},
		{
			Name:        "block_detail",
			Description: "Fetch details of a specific block by block number.",
			Backend:     types.RouteSubscan,
			APIPath:     "/api/scan/block",
			APIMethod:   "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"block_num": {Type: "integer", Description: "The block number to look up."},
				},
				Required: []string{"block_num"},
			},
		},
		{
			Name:        "account_extrinsics",
			Description: "List recent extrinsics (transactions) submitted by an account.",
			Backend:     types.RouteSubscan,
			APIPath:     "/api/v2/scan/extrinsics",
			APIMethod:   "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"address": {Type: "string", Description: "The account address to list extrinsics for."},
					"row":     {Type: "integer", Description: "Number of extrinsics to return.", Default: 10},
					"page":    {Type: "integer", Description: "Zero-based page index.", Default: 0},
				},
				Required: []string{"address"},
			},
		},
		{
			Name:        "account_transfers",
			Description: "List recent token transfers to or from an account.",
			Backend:     types.RouteSubscan,
			APIPath:     "/api/v2/scan/transfers",
			APIMethod:   "POST",
			Parameters: Parameters{
				Type: "object",
				Properties: map[string]Param{
					"address": {Type: "string", Description: "The account address to list transfers for."},
					"row":     {Type: "integer", Description: "Number of transfers to return.", Default: 10},
					"page":    {Type: "integer", Description: "Zero-based page index.", Default: 0},
				},
				Required: []string{"address"},
			},
		},
	}

	out := make(map[string]*Tool, len(tools))
	for _, t := range tools {
		out[t.Name] = t
	}
	return out, nil
}
