package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/polkadot"
)

// MetadataSource lists queryable storage items, normally a connected
// polkadot.Client.
type MetadataSource interface {
	StorageEntries() ([]polkadot.StorageEntry, error)
}

// ChainProvider generates chain-RPC tool descriptors by walking the
// connected node's runtime metadata.
type ChainProvider struct {
	Source MetadataSource
}

func (ChainProvider) Name() string { return "assethub" }

func (p ChainProvider) Generate(ctx context.Context) (map[string]*Tool, error) {
	if p.Source == nil {
		return nil, fmt.Errorf("chain client not configured")
	}

	entries, err := p.Source.StorageEntries()
	if err != nil {
		return nil, fmt.Errorf("read chain metadata: %w", err)
	}

	tools := make(map[string]*Tool)
	for _, e := range entries {
		if e.Item == ":__STORAGE_VERSION__:" {
			continue
		}

		name := strings.ToLower(e.Pallet) + "_" + strings.ToLower(e.Item)
		desc := e.Docs
		if desc == "" {
			desc = fmt.Sprintf("Query the '%s' storage item from the '%s' pallet.", e.Item, e.Pallet)
		}

		params := Parameters{Type: "object", Properties: map[string]Param{}, Required: []string{}}
		for i := range e.Hashers {
			key := fmt.Sprintf("key%d", i+1)
			params.Properties[key] = Param{
				Type:        "string",
				Description: fmt.Sprintf("Storage map key %d (account address or integer id).", i+1),
			}
			params.Required = append(params.Required, key)
		}

		tools[name] = &Tool{
			Name:        name,
			Description: desc,
			Backend:     types.RouteAssetHub,
			Pallet:      e.Pallet,
			StorageItem: e.Item,
			Hashers:     e.Hashers,
			ValueType:   wellKnownValueType(e.Pallet, e.Item),
			Parameters:  params,
		}
	}
	return tools, nil
}

// wellKnownValueType maps storage items with stable layouts to a decoder;
// everything else passes through as hex for the LLM to describe.
func wellKnownValueType(pallet, item string) string {
	switch pallet + "." + item {
	case "System.Account":
		return polkadot.ValueAccountInfo
	case "Balances.TotalIssuance", "Balances.InactiveIssuance":
		return polkadot.ValueU128
	case "System.Number", "Referenda.ReferendumCount", "Assets.NextAssetId":
		return polkadot.ValueU32
	case "Timestamp.Now":
		return polkadot.ValueU64
	}
	return polkadot.ValueHex
}
