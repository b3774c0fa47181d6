package executor

import (
	"context"
	"fmt"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/websearch"
)

// WebSearch passes the extracted search query to the search provider.
type WebSearch struct {
	client *websearch.Client
}

func NewWebSearch(client *websearch.Client) *WebSearch {
	return &WebSearch{client: client}
}

func (e *WebSearch) Execute(ctx context.Context, tool *catalog.Tool, params map[string]any, net data.Network) (any, error) {
	query, _ := params["search_query"].(string)
	if query == "" {
		return nil, fmt.Errorf("missing search_query parameter")
	}
	return e.client.Search(ctx, query)
}
