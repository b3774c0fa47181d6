package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/polkaquery/src/agent/engine"
)

func attachRoutes(r *gin.Engine, eng *engine.Engine, rdb *redis.Client, defaultNetwork string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	queryH := NewQuery(eng, rdb, defaultNetwork)

	v1 := r.Group("/v1")
	{
		v1.POST("/query", queryH.Handle)
		v1.GET("/networks", queryH.Networks)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
