package polkadot

import (
	"fmt"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
)

// Client is a long-lived Substrate RPC client. It is shared across
// requests and only ever used for independent read-only queries.
type Client struct {
	api      *gsrpc.SubstrateAPI
	metadata *types.Metadata
}

// NewClient connects to a node and fetches runtime metadata.
func NewClient(url string) (*Client, error) {
	api, err := gsrpc.NewSubstrateAPI(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}

	return &Client{api: api, metadata: meta}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	// No explicit close needed for gsrpc
	return nil
}

// GetStorage queries storage at the latest block by hex key. An empty
// return with nil error means the storage entry does not exist.
func (c *Client) GetStorage(key string) (string, error) {
	keyBytes, err := DecodeHex(key)
	if err != nil {
		return "", err
	}
	storageKey := types.NewStorageKey(keyBytes)

	var raw types.StorageDataRaw
	ok, err := c.api.RPC.State.GetStorageLatest(storageKey, &raw)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return codec.HexEncodeToString(raw), nil
}

// StorageEntry describes one storage item found in runtime metadata.
type StorageEntry struct {
	Pallet  string
	Item    string
	Docs    string
	Hashers []string
}

// StorageEntries walks the runtime metadata and lists every queryable
// storage item with its key hashers.
func (c *Client) StorageEntries() ([]StorageEntry, error) {
	if c.metadata.Version != 14 {
		return nil, fmt.Errorf("unsupported metadata version %d", c.metadata.Version)
	}

	var entries []StorageEntry
	for _, pallet := range c.metadata.AsMetadataV14.Pallets {
		if !pallet.HasStorage {
			continue
		}
		for _, item := range pallet.Storage.Items {
			entry := StorageEntry{
				Pallet: string(pallet.Name),
				Item:   string(item.Name),
				Docs:   joinDocs(item.Documentation),
			}
			if item.Type.IsMap {
				for _, h := range item.Type.AsMap.Hashers {
					entry.Hashers = append(entry.Hashers, hasherName(h))
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func joinDocs(docs []types.Text) string {
	out := ""
	for _, d := range docs {
		s := string(d)
		if s == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += s
	}
	return out
}

func hasherName(h types.StorageHasherV10) string {
	switch {
	case h.IsBlake2_128Concat:
		return HasherBlake2_128Concat
	case h.IsTwox64Concat:
		return HasherTwox64Concat
	case h.IsIdentity:
		return HasherIdentity
	case h.IsBlake2_128:
		return "Blake2_128"
	case h.IsBlake2_256:
		return "Blake2_256"
	case h.IsTwox128:
		return "Twox128"
	case h.IsTwox256:
		return "Twox256"
	}
	return HasherBlake2_128Concat
}
