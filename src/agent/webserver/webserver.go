package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/polkaquery/src/agent/engine"
)

func New(eng *engine.Engine, rdb *redis.Client, defaultNetwork string) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, eng, rdb, defaultNetwork)
	return g
}
