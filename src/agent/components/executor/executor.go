// Package executor runs a recognized tool invocation against its backend.
// Each backend converts its own failure modes into errors at this boundary;
// nothing downstream sees transport details.
package executor

import (
	"context"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/data"
)

// Executor is the shared backend contract: a tool descriptor plus extracted
// parameters in, raw backend data or an error out.
type Executor interface {
	Execute(ctx context.Context, tool *catalog.Tool, params map[string]any, net data.Network) (any, error)
}
