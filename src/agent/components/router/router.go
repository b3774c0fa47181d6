// Package router classifies a raw query into a backend category with a
// single constrained LLM completion. Routing errors are never fatal: any
// failure falls back to the default route.
package router

import (
	"context"
	"log"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/components/memo"
	"github.com/stake-plus/polkaquery/src/agent/components/prompts"
	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/ai/core"
)

// DefaultRoute is used whenever the LLM is unavailable or returns an
// invalid token.
const DefaultRoute = types.RouteSubscan

type Router struct {
	llm   core.Client
	cache *memo.Cache
}

func New(llm core.Client, cache *memo.Cache) *Router {
	return &Router{llm: llm, cache: cache}
}

// Route picks the backend category for a query.
func (r *Router) Route(ctx context.Context, query string) types.Route {
	if r.llm == nil {
		return DefaultRoute
	}

	key := memo.LLMKey(prompts.RouterID, query)
	v, err := r.cache.Do(ctx, key, func(ctx context.Context) (any, error) {
		return r.llm.Complete(ctx, prompts.Router(query), core.Options{})
	})
	if err != nil {
		log.Printf("router: llm call failed: %v (falling back to %s)", err, DefaultRoute)
		return DefaultRoute
	}

	text, _ := v.(string)
	route := types.Route(strings.ToLower(strings.TrimSpace(text)))
	if !route.Valid() {
		log.Printf("router: invalid route %q (falling back to %s)", text, DefaultRoute)
		return DefaultRoute
	}
	return route
}
