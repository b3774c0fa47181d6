package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/stake-plus/polkaquery/src/agent/data"
	"gorm.io/gorm"
)

type Config struct {
	Port     string
	MySQLDSN string
	RedisURL string

	AIProvider string
	OpenAIKey  string
	GeminiKey  string
	AIModel    string

	SubscanAPIKey string
	TavilyAPIKey  string

	ToolsDir       string
	DefaultNetwork string
	DiscordToken   string

	CallTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// setting resolves a value from DB settings first, then environment,
// then the default. The DB is optional.
func setting(db *gorm.DB, name, env, def string) string {
	if db != nil {
		if v := data.GetSetting(name); v != "" {
			return v
		}
	}
	return getenv(env, def)
}

// Load reads configuration once at startup. db may be nil when no MySQL
// is configured; env vars and defaults are used instead.
func Load(db *gorm.DB) Config {
	_ = godotenv.Load()

	timeoutSec, _ := strconv.Atoi(getenv("CALL_TIMEOUT_SECONDS", "30"))
	if timeoutSec <= 0 {
		timeoutSec = 30
	}

	return Config{
		Port:     getenv("PORT", "8080"),
		MySQLDSN: os.Getenv("MYSQL_DSN"),
		RedisURL: os.Getenv("REDIS_URL"),

		AIProvider: setting(db, "ai_provider", "AI_PROVIDER", "openai"),
		OpenAIKey:  setting(db, "openai_api_key", "OPENAI_API_KEY", ""),
		GeminiKey:  setting(db, "gemini_api_key", "GEMINI_API_KEY", ""),
		AIModel:    setting(db, "ai_model", "AI_MODEL", ""),

		SubscanAPIKey: setting(db, "subscan_api_key", "SUBSCAN_API_KEY", ""),
		TavilyAPIKey:  setting(db, "tavily_api_key", "TAVILY_API_KEY", ""),

		ToolsDir:       getenv("TOOLS_DIR", "tool_definitions"),
		DefaultNetwork: getenv("DEFAULT_NETWORK", data.DefaultNetworkName),
		DiscordToken:   setting(db, "discord_token", "DISCORD_TOKEN", ""),

		CallTimeout: time.Duration(timeoutSec) * time.Second,
	}
}
