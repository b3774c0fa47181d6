// toolgen pre-generates the per-backend tool descriptor files so the
// service can start without regenerating them, and so descriptors can be
// reviewed or hand-tuned before deployment.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/config"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/polkadot"
)

var (
	outFlag     = flag.String("out", "", "Output directory (default TOOLS_DIR)")
	networkFlag = flag.String("network", "", "Network whose chain metadata to read")
	timeoutFlag = flag.Duration("timeout", time.Minute, "Generation timeout")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	cfg := config.Load(nil)
	networks := data.DefaultNetworks()

	dir := *outFlag
	if dir == "" {
		dir = cfg.ToolsDir
	}
	store := catalog.NewStore(dir)

	name := *networkFlag
	if name == "" {
		name = cfg.DefaultNetwork
	}
	net, ok := networks.Get(name)
	if !ok {
		log.Fatalf("unknown network %q", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	generate(ctx, store, catalog.SubscanProvider{})

	chainClient, err := polkadot.NewClient(net.RPCURL)
	if err != nil {
		log.Fatalf("connect %s: %v", net.RPCURL, err)
	}
	generate(ctx, store, catalog.ChainProvider{Source: chainClient})
}

func generate(ctx context.Context, store *catalog.Store, p catalog.Provider) {
	tools, err := p.Generate(ctx)
	if err != nil {
		log.Fatalf("generate %s: %v", p.Name(), err)
	}
	if err := store.Save(p.Name(), tools); err != nil {
		log.Fatalf("save %s: %v", p.Name(), err)
	}
	log.Printf("%s: wrote %d tool descriptors", p.Name(), len(tools))
}
