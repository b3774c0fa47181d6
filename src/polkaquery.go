package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/components/executor"
	"github.com/stake-plus/polkaquery/src/agent/components/recognizer"
	"github.com/stake-plus/polkaquery/src/agent/components/router"
	"github.com/stake-plus/polkaquery/src/agent/components/synthesizer"
	"github.com/stake-plus/polkaquery/src/agent/config"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/engine"
	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/agent/webserver"
	"github.com/stake-plus/polkaquery/src/ai/core"
	_ "github.com/stake-plus/polkaquery/src/ai/providers"
	"github.com/stake-plus/polkaquery/src/bot"
	"github.com/stake-plus/polkaquery/src/polkadot"
	"github.com/stake-plus/polkaquery/src/subscan"
	"github.com/stake-plus/polkaquery/src/websearch"
)

func main() {
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		var err error
		db, err = data.ConnectMySQL(dsn)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		if err := db.AutoMigrate(&data.Setting{}, &data.Network{}); err != nil {
			log.Fatalf("db migrate: %v", err)
		}
		if err := data.LoadSettings(db); err != nil {
			log.Fatalf("settings: %v", err)
		}
	}

	cfg := config.Load(db)

	networks := data.DefaultNetworks()
	if db != nil {
		var err error
		networks, err = data.LoadNetworks(db)
		if err != nil {
			log.Fatalf("networks: %v", err)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
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

	// The chain client is optional; without it the assethub route still
	// exists but degrades to a web-search-only catalog and a failing
	// executor with an explained answer.
	var chainClient *polkadot.Client
	defaultNet, ok := networks.Get(cfg.DefaultNetwork)
	if !ok {
		log.Fatalf("unknown default network %q", cfg.DefaultNetwork)
	}
	chainClient, err = polkadot.NewClient(defaultNet.RPCURL)
	if err != nil {
		log.Printf("chain rpc unavailable, live storage queries disabled: %v", err)
		chainClient = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := catalog.NewStore(cfg.ToolsDir)
	subscanCat := catalog.Load(ctx, store, catalog.SubscanProvider{})
	var chainCat *catalog.Catalog
	if chainClient != nil {
		chainCat = catalog.Load(ctx, store, catalog.ChainProvider{Source: chainClient})
	} else {
		chainCat = catalog.Load(ctx, store, catalog.ChainProvider{})
	}

	searchClient := websearch.NewClient(cfg.TavilyAPIKey)
	if !searchClient.Configured() {
		log.Printf("web search not configured, placeholder results will be served")
	}

	var storage executor.StorageClient
	if chainClient != nil {
		storage = chainClient
	}

	llmCache := engine.NewLLMCache()
	eng := engine.New(engine.Config{
		Router:     router.New(llm, llmCache),
		Recognizer: recognizer.New(llm, llmCache),
		Executors: map[types.Route]executor.Executor{
			types.RouteSubscan:   executor.NewSubscan(subscan.NewClient(cfg.SubscanAPIKey)),
			types.RouteAssetHub:  executor.NewChain(storage),
			types.RouteWebSearch: executor.NewWebSearch(searchClient),
		},
		Catalogs: map[types.Route]*catalog.Catalog{
			types.RouteSubscan:   subscanCat,
			types.RouteAssetHub:  chainCat,
			types.RouteWebSearch: catalog.New(nil),
		},
		Synth:    synthesizer.New(llm),
		Networks: networks,
		Timeout:  cfg.CallTimeout,
	})

	var discord *bot.Bot
	if cfg.DiscordToken != "" {
		discord, err = bot.New(cfg.DiscordToken, eng, cfg.DefaultNetwork)
		if err != nil {
			log.Printf("discord disabled: %v", err)
		} else if err := discord.Start(); err != nil {
			log.Printf("discord disabled: %v", err)
			discord = nil
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: webserver.New(eng, rdb, cfg.DefaultNetwork),
	}
	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	if discord != nil {
		discord.Stop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
