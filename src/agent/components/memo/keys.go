package memo

import (
	"encoding/json"

	"github.com/OneOfOne/xxhash"
)

// ToolCallKey fingerprints a backend call from the tool name and a
// canonical serialization of its parameters. json.Marshal emits map keys
// in sorted order, so two parameter maps with the same pairs hash
// identically regardless of insertion order.
func ToolCallKey(tool string, params map[string]any) uint64 {
	blob, err := json.Marshal(params)
	if err != nil {
		blob = []byte("{}")
	}

	h := xxhash.New64()
	h.WriteString(tool)
	h.WriteString(":")
	h.Write(blob)
	return h.Sum64()
}

// LLMKey fingerprints an LLM decision from the prompt template identity
// plus the call-specific parts (query text, network), so a prompt change
// invalidates cached decisions.
func LLMKey(promptID string, parts ...string) uint64 {
	h := xxhash.New64()
	h.WriteString(promptID)
	for _, p := range parts {
		h.WriteString("\x00")
		h.WriteString(p)
	}
	return h.Sum64()
}
