// Package catalog holds the callable-tool descriptors exposed to the
// LLM-driven recognizer, one catalog per backend category.
package catalog

import (
	"fmt"
	"sort"

	"github.com/stake-plus/polkaquery/src/agent/types"
)

// Param describes one parameter in a tool's schema.
type Param struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
}

// Parameters is the JSON-schema-shaped parameter block of a tool.
type Parameters struct {
	Type       string           `json:"type"`
	Properties map[string]Param `json:"properties"`
	Required   []string         `json:"required"`
}

// Tool is one callable capability: its identity and schema for the LLM,
// plus backend-specific call metadata.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Backend     types.Route `json:"backend,omitempty"`

	// Indexed-API call metadata.
	APIPath   string `json:"api_path,omitempty"`
	APIMethod string `json:"api_method,omitempty"`

	// Chain-RPC call metadata.
	Pallet      string   `json:"pallet_name,omitempty"`
	StorageItem string   `json:"storage_item_name,omitempty"`
	Hashers     []string `json:"hashers,omitempty"`
	ValueType   string   `json:"value_type,omitempty"`

	Parameters Parameters `json:"parameters"`
}

// Validate checks the descriptor invariants: a name is present and every
// required parameter appears in the schema properties.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool has no name")
	}
	for _, req := range t.Parameters.Required {
		if _, ok := t.Parameters.Properties[req]; !ok {
			return fmt.Errorf("tool %s: required parameter %q not in schema", t.Name, req)
		}
	}
	return nil
}

// Default returns the schema default for a parameter, if one is declared.
func (t *Tool) Default(param string) (any, bool) {
	p, ok := t.Parameters.Properties[param]
	if !ok || p.Default == nil {
		return nil, false
	}
	return p.Default, true
}

// WebSearchToolName is the synthetic tool injected into every catalog.
const WebSearchToolName = "internet_search"

// WebSearchTool builds the synthetic web-search descriptor. It goes through
// the same required-parameter validation as every other tool.
func WebSearchTool() *Tool {
	return &Tool{
		Name: WebSearchToolName,
		Description: "Performs a general internet search when the query asks for " +
			"general knowledge, explanations, news, or topics not covered by " +
			"specific on-chain data tools.",
		Backend: types.RouteWebSearch,
		Parameters: Parameters{
			Type: "object",
			Properties: map[string]Param{
				"search_query": {
					Type: "string",
					Description: "A concise and effective search query derived from " +
						"the user's original question.",
				},
			},
			Required: []string{"search_query"},
		},
	}
}

// Catalog is an immutable set of tool descriptors for one backend category.
type Catalog struct {
	tools map[string]*Tool
}

// New builds a catalog from descriptors and always injects the synthetic
// web-search tool so every route has a search fallback. Descriptors that
// fail validation or collide on name are dropped.
func New(tools map[string]*Tool) *Catalog {
	c := &Catalog{tools: make(map[string]*Tool, len(tools)+1)}
	for name, t := range tools {
		if t == nil || t.Name != name {
			continue
		}
		if err := t.Validate(); err != nil {
			continue
		}
		c.tools[name] = t
	}
	c.tools[WebSearchToolName] = WebSearchTool()
	return c
}

// Get returns the descriptor for name.
func (c *Catalog) Get(name string) (*Tool, bool) {
	t, ok := c.tools[name]
	return t, ok
}

// Len returns the number of tools, web search included.
func (c *Catalog) Len() int { return len(c.tools) }

// Names returns tool names in deterministic order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tools))
	for name := range c.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the descriptors in deterministic name order, for prompt
// construction.
func (c *Catalog) Tools() []*Tool {
	names := c.Names()
	out := make([]*Tool, 0, len(names))
	for _, name := range names {
		out = append(out, c.tools[name])
	}
	return out
}
