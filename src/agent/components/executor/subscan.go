package executor

import (
	"context"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/subscan"
)

// Subscan maps tool parameters onto an HTTP call against the network's
// Subscan base URL.
type Subscan struct {
	client *subscan.Client
}

func NewSubscan(client *subscan.Client) *Subscan {
	return &Subscan{client: client}
}

func (e *Subscan) Execute(ctx context.Context, tool *catalog.Tool, params map[string]any, net data.Network) (any, error) {
	// Schema-declared parameters the model did not extract fall back to
	// their declared defaults.
	body := make(map[string]any, len(tool.Parameters.Properties))
	for name, p := range tool.Parameters.Properties {
		if v, ok := params[name]; ok && v != nil {
			body[name] = v
			continue
		}
		if p.Default != nil {
			body[name] = p.Default
		}
	}

	return e.client.Call(ctx, net.SubscanURL, tool.APIMethod, tool.APIPath, body)
}
