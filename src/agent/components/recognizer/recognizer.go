// Package recognizer performs LLM tool selection and parameter extraction
// against a tool catalog. It never returns an error: every failure mode
// collapses to the "unknown" intent with a diagnostic reason.
package recognizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/components/memo"
	"github.com/stake-plus/polkaquery/src/agent/components/prompts"
	"github.com/stake-plus/polkaquery/src/ai/core"
)

// IntentUnknown marks a recognition that did not resolve to a tool.
const IntentUnknown = "unknown"

// Result is a recognized tool invocation, or unknown with a reason.
type Result struct {
	Intent string
	Params map[string]any
}

func unknown(reason string) Result {
	return Result{Intent: IntentUnknown, Params: map[string]any{"reason": reason}}
}

type Recognizer struct {
	llm   core.Client
	cache *memo.Cache
}

func New(llm core.Client, cache *memo.Cache) *Recognizer {
	return &Recognizer{llm: llm, cache: cache}
}

// Recognize selects exactly one tool from the catalog and extracts its
// parameters from the query. Decisions are cached per (template, query,
// network) since routing for the same query is stable within the TTL.
func (r *Recognizer) Recognize(ctx context.Context, query, network string, cat *catalog.Catalog) Result {
	if r.llm == nil {
		return unknown("no language model configured")
	}
	if cat == nil || cat.Len() == 0 {
		return unknown("no tools available for this data source")
	}

	key := memo.LLMKey(prompts.RecognizerID, query, network)
	v, err := r.cache.Do(ctx, key, func(ctx context.Context) (any, error) {
		raw, err := r.llm.Complete(ctx, prompts.Recognizer(query, network, cat.Tools()), core.Options{})
		if err != nil {
			return nil, err
		}
		return parseAndValidate(raw, cat), nil
	})
	if err != nil {
		return unknown(fmt.Sprintf("tool recognition failed: %v", err))
	}
	res, ok := v.(Result)
	if !ok {
		return unknown("tool recognition produced an unexpected result")
	}
	return res
}

// llmOutput is the single JSON object the model is instructed to return.
type llmOutput struct {
	Intent     string         `json:"intent"`
	Parameters map[string]any `json:"parameters"`
}

func parseAndValidate(raw string, cat *catalog.Catalog) Result {
	var out llmOutput
	if err := json.Unmarshal([]byte(StripFences(raw)), &out); err != nil {
		return unknown(fmt.Sprintf("model response was not valid JSON: %.200s", raw))
	}

	params := out.Parameters
	if params == nil {
		params = map[string]any{}
	}

	if out.Intent == "" {
		return unknown("model did not specify a tool")
	}
	// The model declining to pick a tool passes its own reason through.
	if out.Intent == IntentUnknown {
		return Result{Intent: IntentUnknown, Params: params}
	}

	tool, ok := cat.Get(out.Intent)
	if !ok {
		return unknown(fmt.Sprintf("model chose a non-existent tool %q; available tools: %s",
			out.Intent, strings.Join(cat.Names(), ", ")))
	}

	var missing []string
	for _, req := range tool.Parameters.Required {
		if paramMissing(params, req) {
			if _, hasDefault := tool.Default(req); !hasDefault {
				missing = append(missing, req)
			}
		}
	}
	if len(missing) > 0 {
		return unknown(fmt.Sprintf("missing required parameters for tool %q: %s",
			tool.Name, strings.Join(missing, ", ")))
	}

	return Result{Intent: tool.Name, Params: params}
}

func paramMissing(params map[string]any, name string) bool {
	v, ok := params[name]
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}

// StripFences removes a markdown code fence wrapper from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
