package recognizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
	"github.com/stake-plus/polkaquery/src/agent/components/memo"
	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/ai/core"
)

type stubLLM struct {
	reply string
	err   error
	calls int
}

func (s *stubLLM) Complete(context.Context, string, core.Options) (string, error) {
	s.calls++
	return s.reply, s.err
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]*catalog.Tool{
		"account_balance": {
			Name:        "account_balance",
			Description: "Account balance lookup",
			Backend:     types.RouteSubscan,
			Parameters: catalog.Parameters{
				Type: "object",
				Properties: map[string]catalog.Param{
					"address": {Type: "string"},
				},
				Required: []string{"address"},
			},
		},
		"latest_blocks": {
			Name:        "latest_blocks",
			Description: "Recent blocks",
			Backend:     types.RouteSubscan,
			Parameters: catalog.Parameters{
				Type: "object",
				Properties: map[string]catalog.Param{
					"row": {Type: "integer", Default: 1},
				},
				Required: []string{"row"},
			},
		},
	})
}

func newTestRecognizer(llm core.Client) *Recognizer {
	return New(llm, memo.New(16, time.Minute))
}

func TestRecognizeValidToolCall(t *testing.T) {
	llm := &stubLLM{reply: `{"intent": "account_balance", "parameters": {"address": "1exaAg"}}`}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "balance of 1exaAg", "polkadot", testCatalog())
	assert.Equal(t, "account_balance", res.Intent)
	assert.Equal(t, "1exaAg", res.Params["address"])
}

func TestRecognizeStripsCodeFences(t *testing.T) {
	llm := &stubLLM{reply: "```json\n{\"intent\": \"account_balance\", \"parameters\": {\"address\": \"1exaAg\"}}\n```"}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "balance", "polkadot", testCatalog())
	assert.Equal(t, "account_balance", res.Intent)
}

func TestRecognizeMissingRequiredParam(t *testing.T) {
	cases := map[string]string{
		"absent": `{"intent": "account_balance", "parameters": {}}`,
		"empty":  `{"intent": "account_balance", "parameters": {"address": "  "}}`,
		"null":   `{"intent": "account_balance", "parameters": {"address": null}}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			r := newTestRecognizer(&stubLLM{reply: reply})
			res := r.Recognize(context.Background(), "balance", "polkadot", testCatalog())
			require.Equal(t, IntentUnknown, res.Intent)
			assert.Contains(t, res.Params["reason"], "address")
		})
	}
}

func TestRecognizeDefaultSatisfiesRequiredParam(t *testing.T) {
	llm := &stubLLM{reply: `{"intent": "latest_blocks", "parameters": {}}`}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "latest block", "polkadot", testCatalog())
	assert.Equal(t, "latest_blocks", res.Intent)
}

func TestRecognizeNonExistentTool(t *testing.T) {
	llm := &stubLLM{reply: `{"intent": "stake_everything", "parameters": {}}`}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "stake", "polkadot", testCatalog())
	require.Equal(t, IntentUnknown, res.Intent)
	reason, _ := res.Params["reason"].(string)
	assert.Contains(t, reason, "stake_everything")
	assert.Contains(t, reason, "account_balance")
}

func TestRecognizeUnknownPassthrough(t *testing.T) {
	llm := &stubLLM{reply: `{"intent": "unknown", "parameters": {"reason": "the query is about cooking"}}`}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "best pasta recipe", "polkadot", testCatalog())
	require.Equal(t, IntentUnknown, res.Intent)
	assert.Equal(t, "the query is about cooking", res.Params["reason"])
}

func TestRecognizeInvalidJSON(t *testing.T) {
	llm := &stubLLM{reply: "I think you want the account_balance tool."}
	r := newTestRecognizer(llm)

	res := r.Recognize(context.Background(), "balance", "polkadot", testCatalog())
	assert.Equal(t, IntentUnknown, res.Intent)
}

func TestRecognizeLLMErrorIsNotCached(t *testing.T) {
	llm := &stubLLM{err: errors.New("rate limited")}
	r := newTestRecognizer(llm)

	r.Recognize(context.Background(), "balance", "polkadot", testCatalog())
	r.Recognize(context.Background(), "balance", "polkadot", testCatalog())
	assert.Equal(t, 2, llm.calls)
}

func TestRecognizeDecisionIsCached(t *testing.T) {
	llm := &stubLLM{reply: `{"intent": "account_balance", "parameters": {"address": "1exaAg"}}`}
	r := newTestRecognizer(llm)

	r.Recognize(context.Background(), "balance of 1exaAg", "polkadot", testCatalog())
	r.Recognize(context.Background(), "balance of 1exaAg", "polkadot", testCatalog())
	assert.Equal(t, 1, llm.calls)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}
