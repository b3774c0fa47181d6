package webserver

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/polkaquery/src/agent/data"
	"github.com/stake-plus/polkaquery/src/agent/engine"
	"github.com/stake-plus/polkaquery/src/agent/types"
)

type Query struct {
	eng            *engine.Engine
	rdb            *redis.Client
	defaultNetwork string
}

func NewQuery(eng *engine.Engine, rdb *redis.Client, defaultNetwork string) *Query {
	if defaultNetwork == "" {
		defaultNetwork = data.DefaultNetworkName
	}
	return &Query{eng: eng, rdb: rdb, defaultNetwork: defaultNetwork}
}

// Handle runs one natural language query. Input problems are rejected
// before any backend or model call is made.
func (h *Query) Handle(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	name := req.Network
	if strings.TrimSpace(name) == "" {
		name = h.defaultNetwork
	}
	net, ok := h.eng.Networks().Get(name)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "unsupported network: " + name,
			"networks": h.eng.Networks().Names(),
		})
		return
	}

	id := uuid.NewString()
	st := h.eng.Run(c.Request.Context(), req.Query, net)

	h.publishEvent(id, st)

	c.JSON(http.StatusOK, types.QueryResponse{
		ID:      id,
		Answer:  st.Answer,
		Network: net.Name,
		Route:   string(st.Route),
		Tool:    st.Tool,
		Params:  st.Params,
	})
}

// Networks lists the supported networks.
func (h *Query) Networks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"networks": h.eng.Networks().Names()})
}

func (h *Query) publishEvent(id string, st *engine.State) {
	if h.rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := data.PublishQueryEvent(ctx, h.rdb, map[string]interface{}{
		"id":      id,
		"query":   st.Query,
		"network": st.Network.Name,
		"route":   string(st.Route),
		"tool":    st.Tool,
		"failed":  st.ErrorMessage != "",
	})
	if err != nil {
		log.Printf("webserver: publish query event: %v", err)
	}
}
