// Package normalizer shapes raw backend data into the uniform intermediate
// representation consumed by answer synthesis. It never fails past its
// boundary: anything unexpected becomes a status=error result.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/types"
)

const sampleSize = 3

// Normalize converts one backend response into a NormalizedResult,
// dispatching on the tool name against a small set of known shapes with a
// generic fallback.
func Normalize(toolName string, raw any, net data.Network) (res types.NormalizedResult) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult(fmt.Sprintf("failed to process backend data: %v", r))
		}
	}()

	if raw == nil {
		return noDataResult(toolName, net.Name)
	}

	payload := raw
	if m, ok := raw.(map[string]any); ok {
		if code, exists := m["code"]; exists {
			if c, isNum := code.(float64); isNum && c != 0 {
				msg, _ := m["message"].(string)
				if msg == "" {
					msg = "unknown backend error"
				}
				return types.NormalizedResult{
					Status:  types.StatusError,
					Summary: fmt.Sprintf("the %s backend reported error code %d", net.Name, int(c)),
					KeyData: map[string]any{"message": msg, "code": int(c)},
				}
			}
			payload = m["data"]
			if payload == nil {
				return noDataResult(toolName, net.Name)
			}
		}
	}

	name := strings.ToLower(toolName)
	switch {
	case name == catalog.WebSearchToolName || hasSearchShape(payload):
		return normalizeSearch(payload)
	case strings.Contains(name, "balance") || strings.HasSuffix(name, "_account") || strings.Contains(name, "account_balance"):
		return normalizeBalance(payload, net)
	case strings.Contains(name, "detail"):
		return normalizeDetail(name, payload, net)
	}
	return normalizeGeneric(name, payload, net)
}

func errorResult(msg string) types.NormalizedResult {
	return types.NormalizedResult{
		Status:  types.StatusError,
		Summary: "an error occurred while processing backend data",
		KeyData: map[string]any{"message": msg},
	}
}

func noDataResult(toolName, network string) types.NormalizedResult {
	return types.NormalizedResult{
		Status:  types.StatusNoData,
		Summary: fmt.Sprintf("no data found on %s", network),
		KeyData: map[string]any{
			"explanation": fmt.Sprintf("the backend returned no data for tool %q", toolName),
		},
	}
}

func hasSearchShape(payload any) bool {
	m, ok := payload.(map[string]any)
	if !ok {
		return false
	}
	_, has := m["search_provider"]
	return has
}

func normalizeSearch(payload any) types.NormalizedResult {
	m, ok := payload.(map[string]any)
	if !ok {
		return errorResult(fmt.Sprintf("unexpected search payload type %T", payload))
	}

	provider, _ := m["search_provider"].(string)
	if provider == "" {
		provider = "unknown"
	}

	keyData := map[string]any{
		"search_provider": provider,
		"query_used":      m["query_used"],
	}
	if answer, ok := m["answer_summary"].(string); ok && answer != "" {
		keyData["answer_summary"] = answer
	}

	return types.NormalizedResult{
		Status:  types.StatusSuccess,
		Summary: fmt.Sprintf("web search results via %s", provider),
		KeyData: keyData,
		Raw:     m["results"],
	}
}

func normalizeBalance(payload any, net data.Network) types.NormalizedResult {
	record := firstRecord(payload)
	if record == nil {
		return types.NormalizedResult{
			Status:  types.StatusParseError,
			Summary: fmt.Sprintf("could not parse balance information on %s", net.Name),
			KeyData: map[string]any{"explanation": "balance payload had no account record"},
		}
	}

	keyData := map[string]any{"symbol": net.Symbol}
	if addr, ok := record["address"].(string); ok && addr != "" {
		keyData["address"] = addr
	}

	decimals := int(net.Decimals)
	// Subscan account shape and the on-chain AccountData shape carry
	// different field names for the same quantities.
	planckFields := map[string]string{
		"balance":   "total_balance",
		"available": "available_balance",
		"free":      "free_balance",
		"locked":    "locked_balance",
		"frozen":    "frozen_balance",
		"reserved":  "reserved_balance",
	}
	found := false
	for src, dst := range planckFields {
		v, ok := record[src]
		if !ok {
			continue
		}
		formatted := FormatPlanck(v, decimals)
		if formatted == PlanckNA {
			continue
		}
		keyData[dst] = formatted
		found = true
	}
	if nonce, ok := record["nonce"]; ok {
		keyData["nonce"] = nonce
	}

	if !found {
		return types.NormalizedResult{
			Status:  types.StatusParseError,
			Summary: fmt.Sprintf("could not parse balance information on %s", net.Name),
			KeyData: map[string]any{"explanation": "no balance fields present in account record"},
		}
	}

	return types.NormalizedResult{
		Status:  types.StatusSuccess,
		Summary: fmt.Sprintf("account balances on %s in %s", net.Name, net.Symbol),
		KeyData: keyData,
	}
}

func normalizeDetail(name string, payload any, net data.Network) types.NormalizedResult {
	record := firstRecord(payload)
	if record == nil {
		return normalizeGeneric(name, payload, net)
	}

	keyData := make(map[string]any, len(record))
	for k, v := range record {
		switch k {
		case "fee", "amount", "balance", "transfer_fee":
			formatted := FormatPlanck(v, int(net.Decimals))
			if formatted == PlanckNA || formatted == PlanckInvalid {
				keyData[k] = formatted
			} else {
				keyData[k] = formatted + " " + net.Symbol
			}
		case "event", "params", "lifetime":
			// bulky sub-structures stay out of the key data
		default:
			if isScalar(v) {
				keyData[k] = v
			}
		}
	}

	return types.NormalizedResult{
		Status:  types.StatusSuccess,
		Summary: fmt.Sprintf("record details from %s on %s", name, net.Name),
		KeyData: keyData,
	}
}

func normalizeGeneric(name string, payload any, net data.Network) types.NormalizedResult {
	switch v := payload.(type) {
	case []any:
		return sampledList(name, v, net)
	case map[string]any:
		// A record holding exactly one list (blocks, transfers,
		// extrinsics) is treated as that list plus its metadata.
		for k, inner := range v {
			if list, ok := inner.([]any); ok {
				res := sampledList(name, list, net)
				res.KeyData["list_field"] = k
				if count, exists := v["count"]; exists {
					res.KeyData["total_count"] = count
				}
				return res
			}
		}
		return types.NormalizedResult{
			Status:  types.StatusSuccess,
			Summary: fmt.Sprintf("data from %s on %s", name, net.Name),
			KeyData: v,
		}
	default:
		return types.NormalizedResult{
			Status:  types.StatusSuccess,
			Summary: fmt.Sprintf("value from %s on %s", name, net.Name),
			KeyData: map[string]any{"value": v},
		}
	}
}

func sampledList(name string, list []any, net data.Network) types.NormalizedResult {
	sample := list
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	return types.NormalizedResult{
		Status:  types.StatusSuccess,
		Summary: fmt.Sprintf("%d items from %s on %s", len(list), name, net.Name),
		KeyData: map[string]any{"count": len(list), "items_shown": len(sample)},
		Raw:     sample,
	}
}

// firstRecord extracts the record map from a payload that may be a map or
// a non-empty list of maps.
func firstRecord(payload any) map[string]any {
	switch v := payload.(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			if m, ok := v[0].(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, float64, int, uint32, uint64, bool, nil:
		return true
	}
	return false
}
