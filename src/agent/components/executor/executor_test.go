package executor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/polkadot"
	"github.com/stake-plus/polkaquery/src/subscan"
	"github.com/stake-plus/polkaquery/src/websearch"
)

func testNet(url string) data.Network {
	return data.Network{Name: "polkadot", Symbol: "DOT", Decimals: 10, SubscanURL: url}
}

func TestSubscanExecutorFillsDefaults(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"code": 0, "data": map[string]any{}})
	}))
	defer srv.Close()

	tool := &catalog.Tool{
		Name:      "latest_blocks",
		APIPath:   "/api/scan/blocks",
		APIMethod: http.MethodPost,
		Parameters: catalog.Parameters{
			Type: "object",
			Properties: map[string]catalog.Param{
				"row":  {Type: "integer", Default: 1},
				"page": {Type: "integer", Default: 0},
			},
		},
	}

	e := NewSubscan(subscan.NewClient(""))
	_, err := e.Execute(context.Background(), tool, map[string]any{"row": float64(5)}, testNet(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, float64(5), gotBody["row"], "explicit parameter wins")
	assert.Equal(t, float64(0), gotBody["page"], "absent parameter takes its default")
}

type fakeStorage struct {
	gotKey string
	value  string
	err    error
}

func (f *fakeStorage) GetStorage(key string) (string, error) {
	f.gotKey = key
	return f.value, f.err
}

func accountTool() *catalog.Tool {
	return &catalog.Tool{
		Name:        "system_account",
		Pallet:      "System",
		StorageItem: "Account",
		Hashers:     []string{polkadot.HasherBlake2_128Concat},
		ValueType:   polkadot.ValueU32,
		Parameters: catalog.Parameters{
			Type: "object",
			Properties: map[string]catalog.Param{
				"key1": {Type: "string"},
			},
			Required: []string{"key1"},
		},
	}
}

func TestChainExecutorBuildsStorageKey(t *testing.T) {
	storage := &fakeStorage{value: "0x0a000000"}
	e := NewChain(storage)

	v, err := e.Execute(context.Background(), accountTool(),
		map[string]any{"key1": "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
		testNet(""))
	require.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	prefix := polkadot.StorageKey("System", "Account")
	assert.True(t, strings.HasPrefix(storage.gotKey, prefix))
	assert.Greater(t, len(storage.gotKey), len(prefix))
}

func TestChainExecutorPlainStorageItem(t *testing.T) {
	storage := &fakeStorage{value: "0x0a000000"}
	e := NewChain(storage)

	tool := &catalog.Tool{
		Name:        "system_number",
		Pallet:      "System",
		StorageItem: "Number",
		ValueType:   polkadot.ValueU32,
		Parameters:  catalog.Parameters{Type: "object", Properties: map[string]catalog.Param{}},
	}
	_, err := e.Execute(context.Background(), tool, nil, testNet(""))
	require.NoError(t, err)
	assert.Equal(t, polkadot.StorageKey("System", "Number"), storage.gotKey)
}

func TestChainExecutorEmptyStorageValue(t *testing.T) {
	e := NewChain(&fakeStorage{value: ""})

	v, err := e.Execute(context.Background(), accountTool(),
		map[string]any{"key1": "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"},
		testNet(""))
	require.NoError(t, err)
	assert.Nil(t, v, "missing storage entry decodes to nil")
}

func TestChainExecutorWithoutClient(t *testing.T) {
	e := NewChain(nil)
	_, err := e.Execute(context.Background(), accountTool(), map[string]any{"key1": "x"}, testNet(""))
	assert.Error(t, err)
}

func TestChainExecutorIntegerParam(t *testing.T) {
	storage := &fakeStorage{value: "0x0a000000"}
	e := NewChain(storage)

	tool := &catalog.Tool{
		Name:        "assets_asset",
		Pallet:      "Assets",
		StorageItem: "Asset",
		Hashers:     []string{polkadot.HasherBlake2_128Concat},
		ValueType:   polkadot.ValueHex,
		Parameters: catalog.Parameters{
			Type: "object",
			Properties: map[string]catalog.Param{
				"key1": {Type: "integer"},
			},
			Required: []string{"key1"},
		},
	}

	_, err := e.Execute(context.Background(), tool, map[string]any{"key1": "1984"}, testNet(""))
	require.NoError(t, err)

	_, err = e.Execute(context.Background(), tool, map[string]any{"key1": "not a number"}, testNet(""))
	assert.Error(t, err)
}

func TestWebSearchExecutor(t *testing.T) {
	e := NewWebSearch(websearch.NewClient(""))

	tool := catalog.WebSearchTool()
	v, err := e.Execute(context.Background(), tool, map[string]any{"search_query": "what is polkadot"}, testNet(""))
	require.NoError(t, err)

	payload, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, websearch.PlaceholderProvider, payload["search_provider"])
}

func TestWebSearchExecutorMissingQuery(t *testing.T) {
	e := NewWebSearch(websearch.NewClient(""))

	_, err := e.Execute(context.Background(), catalog.WebSearchTool(), map[string]any{}, testNet(""))
	assert.Error(t, err)
}
