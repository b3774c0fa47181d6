// Package engine runs one query through the agent pipeline: route the
// query to a backend category, recognize the tool call, execute it,
// then synthesize an answer or explain the failure.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/components/executor"
	"github.com/stake-plus/polkaquery/src/agent/components/memo"
	"github.com/stake-plus/polkaquery/src/agent/components/normalizer"
	"github.com/stake-plus/polkaquery/src/agent/components/recognizer"
	"github.com/stake-plus/polkaquery/src/agent/components/router"
	"github.com/stake-plus/polkaquery/src/agent/components/synthesizer"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/types"
)

// Backend-call and LLM memo cache sizing. Backend data goes stale fast,
// model decisions for the same query are stable much longer.
const (
	apiCacheSize = 1024
	apiCacheTTL  = 5 * time.Minute
	llmCacheSize = 256
	llmCacheTTL  = time.Hour
)

// State accumulates everything one query run produced. Exactly one of the
// two terminal steps writes Answer; ErrorMessage is non-empty iff the
// error path wrote it.
type State struct {
	Query   string
	Network data.Network

	Route  types.Route
	Tool   string
	Params map[string]any

	RawResponse any
	Normalized  types.NormalizedResult

	Answer       string
	ErrorMessage string
}

// Config wires the engine's collaborators. Executors and Catalogs are
// keyed by route; a route with no entry fails at execution time.
type Config struct {
	Router     *router.Router
	Recognizer *recognizer.Recognizer
	Executors  map[types.Route]executor.Executor
	Catalogs   map[types.Route]*catalog.Catalog
	Synth      *synthesizer.Synthesizer
	Networks   *data.Networks
	Timeout    time.Duration
}

type Engine struct {
	router     *router.Router
	recognizer *recognizer.Recognizer
	executors  map[types.Route]executor.Executor
	catalogs   map[types.Route]*catalog.Catalog
	synth      *synthesizer.Synthesizer
	networks   *data.Networks
	apiCache   *memo.Cache
	timeout    time.Duration
}

func New(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Engine{
		router:     cfg.Router,
		recognizer: cfg.Recognizer,
		executors:  cfg.Executors,
		catalogs:   cfg.Catalogs,
		synth:      cfg.Synth,
		networks:   cfg.Networks,
		apiCache:   memo.New(apiCacheSize, apiCacheTTL),
		timeout:    cfg.Timeout,
	}
}

// NewLLMCache builds a memo cache sized for model decisions, shared by the
// router and recognizer.
func NewLLMCache() *memo.Cache {
	return memo.New(llmCacheSize, llmCacheTTL)
}

// Networks exposes the network table so front-ends can validate input
// before starting a run.
func (e *Engine) Networks() *data.Networks {
	return e.networks
}

// step is one node of the run; it mutates the state and returns the next
// node, or nil when the run is done.
type step func(ctx context.Context, st *State) step

// Run executes the full pipeline for one query. It always produces an
// Answer; internal failures surface as an explained error answer, never
// as a Go error.
func (e *Engine) Run(ctx context.Context, query string, net data.Network) *State {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	st := &State{Query: query, Network: net}
	for s := e.routeQuery; s != nil; {
		s = s(ctx, st)
	}
	return st
}

func (e *Engine) routeQuery(ctx context.Context, st *State) step {
	st.Route = e.router.Route(ctx, st.Query)
	log.Printf("engine: query routed to %s (network=%s)", st.Route, st.Network.Name)
	return e.recognizeTool
}

func (e *Engine) recognizeTool(ctx context.Context, st *State) step {
	cat, ok := e.catalogs[st.Route]
	if !ok {
		st.ErrorMessage = fmt.Sprintf("no tool catalog for route %q", st.Route)
		return e.handleError
	}

	res := e.recognizer.Recognize(ctx, st.Query, st.Network.Name, cat)
	st.Tool = res.Intent
	st.Params = res.Params
	return e.executeTool
}

func (e *Engine) executeTool(ctx context.Context, st *State) step {
	if st.Tool == recognizer.IntentUnknown || st.Tool == "" {
		reason, _ := st.Params["reason"].(string)
		if reason == "" {
			reason = "the query did not match any available tool"
		}
		st.ErrorMessage = reason
		return e.handleError
	}

	cat := e.catalogs[st.Route]
	tool, ok := cat.Get(st.Tool)
	if !ok {
		st.ErrorMessage = fmt.Sprintf("tool %q not found in the %s catalog", st.Tool, st.Route)
		return e.handleError
	}

	exec, ok := e.executors[st.Route]
	if !ok {
		st.ErrorMessage = fmt.Sprintf("no executor configured for route %q", st.Route)
		return e.handleError
	}

	key := memo.ToolCallKey(st.Network.Name+"/"+tool.Name, st.Params)
	raw, err := e.apiCache.Do(ctx, key, func(ctx context.Context) (any, error) {
		return exec.Execute(ctx, tool, st.Params, st.Network)
	})
	if err != nil {
		st.ErrorMessage = err.Error()
		return e.handleError
	}

	st.RawResponse = raw
	return e.generateAnswer
}

func (e *Engine) generateAnswer(ctx context.Context, st *State) step {
	st.Normalized = normalizer.Normalize(st.Tool, st.RawResponse, st.Network)
	st.Answer = e.synth.Synthesize(ctx, st.Query, st.Network.Name, st.Normalized, string(st.Route))
	return nil
}

func (e *Engine) handleError(ctx context.Context, st *State) step {
	log.Printf("engine: query failed at tool %q: %s", st.Tool, st.ErrorMessage)
	st.Answer = e.synth.ExplainError(ctx, st.Query, st.Tool, st.Params, st.ErrorMessage)
	return nil
}
