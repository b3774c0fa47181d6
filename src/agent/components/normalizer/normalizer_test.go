package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/types"
)

func polkadotNet() data.Network {
	return data.Network{Name: "polkadot", Symbol: "DOT", Decimals: 10}
}

func TestFormatPlanck(t *testing.T) {
	cases := []struct {
		name     string
		value    any
		decimals int
		want     string
	}{
		{"zero", "0", 10, "0"},
		{"nil", nil, 10, "N/A"},
		{"empty string", "", 10, "N/A"},
		{"not a number", "not a number", 10, "Invalid Format"},
		{"plain value", "12345000000000", 10, "1,234.5"},
		{"fraction only", "5000000000", 10, "0.5"},
		{"no decimals", "1234567", 0, "1,234,567"},
		{"float input", float64(12345000000000), 10, "1,234.5"},
		{"uint64 input", uint64(10000000000), 10, "1"},
		{"trailing zeros trimmed", "12300000000", 10, "1.23"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPlanck(tc.value, tc.decimals))
		})
	}
}

func TestNormalizeBackendErrorCode(t *testing.T) {
	payload := map[string]any{
		"code":    float64(10004),
		"message": "Record Not Found",
		"data":    nil,
	}
	res := Normalize("account_balance", payload, polkadotNet())
	assert.Equal(t, types.StatusError, res.Status)
	assert.Equal(t, "Record Not Found", res.KeyData["message"])
	assert.Equal(t, 10004, res.KeyData["code"])
}

func TestNormalizeErrorCodeWithoutMessage(t *testing.T) {
	res := Normalize("latest_blocks", map[string]any{"code": float64(-1)}, polkadotNet())
	assert.Equal(t, types.StatusError, res.Status)
	assert.Equal(t, "unknown backend error", res.KeyData["message"])
}

func TestNormalizeNilPayload(t *testing.T) {
	res := Normalize("account_balance", nil, polkadotNet())
	assert.Equal(t, types.StatusNoData, res.Status)
}

func TestNormalizeSubscanBalance(t *testing.T) {
	payload := map[string]any{
		"code": float64(0),
		"data": []any{
			map[string]any{
				"address":   "1exaAg2VJRQbyUBAeXcktChCAqjVP9TUxF3zo23R2T6EGdE",
				"balance":   "12345000000000",
				"available": "12000000000000",
				"locked":    "345000000000",
				"reserved":  "0",
			},
		},
	}
	res := Normalize("account_balance", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, "1,234.5", res.KeyData["total_balance"])
	assert.Equal(t, "1,200", res.KeyData["available_balance"])
	assert.Equal(t, "34.5", res.KeyData["locked_balance"])
	assert.Equal(t, "0", res.KeyData["reserved_balance"])
	assert.Equal(t, "DOT", res.KeyData["symbol"])
	assert.Equal(t, "1exaAg2VJRQbyUBAeXcktChCAqjVP9TUxF3zo23R2T6EGdE", res.KeyData["address"])
}

func TestNormalizeChainAccount(t *testing.T) {
	payload := map[string]any{
		"nonce":    uint32(7),
		"free":     "10000000000",
		"reserved": "0",
		"frozen":   "0",
	}
	res := Normalize("system_account", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, "1", res.KeyData["free_balance"])
	assert.Equal(t, uint32(7), res.KeyData["nonce"])
}

func TestNormalizeBalanceWithoutRecord(t *testing.T) {
	res := Normalize("account_balance", map[string]any{"code": float64(0), "data": []any{}}, polkadotNet())
	assert.Equal(t, types.StatusParseError, res.Status)
}

func TestNormalizePlaceholderSearch(t *testing.T) {
	payload := map[string]any{
		"search_provider": "placeholder",
		"query_used":      "what is polkadot",
		"results": []any{
			map[string]any{"title": "Placeholder Search Result"},
		},
	}
	res := Normalize("internet_search", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, "placeholder", res.KeyData["search_provider"])
	assert.Equal(t, "what is polkadot", res.KeyData["query_used"])
	require.Len(t, res.Raw, 1)
}

func TestNormalizeListSampling(t *testing.T) {
	blocks := make([]any, 10)
	for i := range blocks {
		blocks[i] = map[string]any{"block_num": float64(1000 + i)}
	}
	payload := map[string]any{
		"code": float64(0),
		"data": map[string]any{"count": float64(5000), "blocks": blocks},
	}
	res := Normalize("latest_blocks", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, 10, res.KeyData["count"])
	assert.Equal(t, 3, res.KeyData["items_shown"])
	assert.Equal(t, "blocks", res.KeyData["list_field"])
	assert.Equal(t, float64(5000), res.KeyData["total_count"])
	require.Len(t, res.Raw, 3)
}

func TestNormalizeDetailScalesFee(t *testing.T) {
	payload := map[string]any{
		"code": float64(0),
		"data": map[string]any{
			"extrinsic_index": "100-2",
			"fee":             "156000000",
			"success":         true,
			"params":          []any{map[string]any{"name": "dest"}},
		},
	}
	res := Normalize("extrinsic_detail", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, "0.0156 DOT", res.KeyData["fee"])
	assert.Equal(t, "100-2", res.KeyData["extrinsic_index"])
	assert.Equal(t, true, res.KeyData["success"])
	assert.NotContains(t, res.KeyData, "params")
}

func TestNormalizeDetailNonNumericAmounts(t *testing.T) {
	payload := map[string]any{
		"code": float64(0),
		"data": map[string]any{
			"extrinsic_index": "100-2",
			"fee":             "pending",
			"amount":          nil,
		},
	}
	res := Normalize("extrinsic_detail", payload, polkadotNet())
	require.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, PlanckInvalid, res.KeyData["fee"], "no token symbol on an unformattable value")
	assert.Equal(t, PlanckNA, res.KeyData["amount"])
}

func TestNormalizeScalarFallback(t *testing.T) {
	res := Normalize("timestamp_now", uint64(1724630400000), polkadotNet())
	assert.Equal(t, types.StatusSuccess, res.Status)
	assert.Equal(t, uint64(1724630400000), res.KeyData["value"])
}

func TestNormalizeNeverPanics(t *testing.T) {
	odd := []any{
		map[string]any{"code": "not a float"},
		[]any{[]any{nil}},
		"bare string",
		float64(3.14),
		map[string]any{"data": map[string]any{"balance": map[string]any{"nested": true}}},
	}
	for _, payload := range odd {
		assert.NotPanics(t, func() {
			Normalize("account_balance", payload, polkadotNet())
		})
	}
}
