// query-smoketest runs a single natural language query through the full
// agent pipeline and prints the result, without starting the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/components/executor"
	"github.com/stake-plus/polkaquery/src/agent/components/recognizer"
	"github.com/stake-plus/polkaquery/src/agent/components/router"
	"github.com/stake-plus/polkaquery/src/agent/components/synthesizer"
	"github.com/stake-plus/polkaquery/src/agent/config"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/engine"
	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/ai/core"
	_ "github.com/stake-plus/polkaquery/src/ai/providers"
	"github.com/stake-plus/polkaquery/src/polkadot"
	"github.com/stake-plus/polkaquery/src/subscan"
	"github.com/stake-plus/polkaquery/src/websearch"
)

var (
	queryFlag   = flag.String("query", "", "Natural language query to run")
	networkFlag = flag.String("network", "", "Target network (default from config)")
	timeoutFlag = flag.Duration("timeout", time.Minute, "Overall run timeout")
	verboseFlag = flag.Bool("verbose", false, "Print the full run state as JSON")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *queryFlag == "" {
		log.Fatal("usage: query-smoketest -query \"<question>\" [-network polkadot]")
	}

	cfg := config.Load(nil)
	networks := data.DefaultNetworks()

	name := *networkFlag
	if name == "" {
		name = cfg.DefaultNetwork
	}
	net, ok := networks.Get(name)
	if !ok {
		log.Fatalf("unknown network %q", name)
	}

	llm, err := core.NewClient(core.FactoryConfig{
		Provider:  cfg.AIProvider,
		Model:     cfg.AIModel,
		OpenAIKey: cfg.OpenAIKey,
		GeminiKey: cfg.GeminiKey,
	})
	if err != nil {
		log.Fatalf("ai: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	var storage executor.StorageClient
	chainProvider := catalog.ChainProvider{}
	if chainClient, err := polkadot.NewClient(net.RPCURL); err != nil {
		log.Printf("chain rpc unavailable: %v", err)
	} else {
		storage = chainClient
		chainProvider.Source = chainClient
	}

	store := catalog.NewStore(cfg.ToolsDir)
	llmCache := engine.NewLLMCache()
	eng := engine.New(engine.Config{
		Router:     router.New(llm, llmCache),
		Recognizer: recognizer.New(llm, llmCache),
		Executors: map[types.Route]executor.Executor{
			types.RouteSubscan:   executor.NewSubscan(subscan.NewClient(cfg.SubscanAPIKey)),
			types.RouteAssetHub:  executor.NewChain(storage),
			types.RouteWebSearch: executor.NewWebSearch(websearch.NewClient(cfg.TavilyAPIKey)),
		},
		Catalogs: map[types.Route]*catalog.Catalog{
			types.RouteSubscan:   catalog.Load(ctx, store, catalog.SubscanProvider{}),
			types.RouteAssetHub:  catalog.Load(ctx, store, chainProvider),
			types.RouteWebSearch: catalog.New(nil),
		},
		Synth:    synthesizer.New(llm),
		Networks: networks,
		Timeout:  *timeoutFlag,
	})

	st := eng.Run(ctx, *queryFlag, net)

	fmt.Printf("route:  %s\n", st.Route)
	fmt.Printf("tool:   %s\n", st.Tool)
	if st.ErrorMessage != "" {
		fmt.Printf("error:  %s\n", st.ErrorMessage)
	}
	fmt.Printf("answer: %s\n", st.Answer)

	if *verboseFlag {
		out, err := json.MarshalIndent(st, "", "  ")
		if err == nil {
			fmt.Println(string(out))
		}
	}
}
