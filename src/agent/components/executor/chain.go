package executor

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/polkadot"
)

// StorageClient reads raw storage by hex key, normally a shared
// polkadot.Client.
type StorageClient interface {
	GetStorage(key string) (string, error)
}

// Chain executes storage queries against a long-lived node connection.
type Chain struct {
	client StorageClient
}

func NewChain(client StorageClient) *Chain {
	return &Chain{client: client}
}

func (e *Chain) Execute(ctx context.Context, tool *catalog.Tool, params map[string]any, net data.Network) (any, error) {
	if e.client == nil {
		return nil, fmt.Errorf("chain RPC client is not available")
	}
	if tool.Pallet == "" || tool.StorageItem == "" {
		return nil, fmt.Errorf("tool %q has no storage coordinates", tool.Name)
	}

	// Map keys are positional: required parameter names sort
	// deterministically (key1, key2, ...).
	ordered := append([]string(nil), tool.Parameters.Required...)
	sort.Strings(ordered)

	args := make([][]byte, 0, len(ordered))
	for _, name := range ordered {
		enc, err := encodeArg(params[name], tool.Parameters.Properties[name].Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		args = append(args, enc)
	}

	var key string
	var err error
	if len(args) == 0 {
		key = polkadot.StorageKey(tool.Pallet, tool.StorageItem)
	} else {
		key, err = polkadot.StorageKeyWithArgs(tool.Pallet, tool.StorageItem, tool.Hashers, args)
		if err != nil {
			return nil, err
		}
	}

	hexValue, err := e.client.GetStorage(key)
	if err != nil {
		return nil, fmt.Errorf("storage query %s.%s: %w", tool.Pallet, tool.StorageItem, err)
	}

	return polkadot.DecodeValue(tool.ValueType, hexValue)
}

// encodeArg converts an extracted parameter into SCALE key bytes: integers
// little-endian, SS58 addresses as raw public keys, anything else as bytes.
func encodeArg(v any, declaredType string) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("missing value")
	case float64:
		return polkadot.EncodeUint32(uint32(val)), nil
	case int:
		return polkadot.EncodeUint32(uint32(val)), nil
	case string:
		s := strings.TrimSpace(val)
		if declaredType == "integer" {
			n, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("expected integer, got %q", s)
			}
			return polkadot.EncodeUint32(uint32(n)), nil
		}
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			return polkadot.EncodeUint32(uint32(n)), nil
		}
		if pub, err := polkadot.DecodeSS58(s); err == nil {
			return pub, nil
		}
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unsupported parameter type %T", v)
}
