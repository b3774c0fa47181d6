// Package synthesizer turns normalized backend data into a natural language
// answer via the configured AI provider, with deterministic fallbacks when
// the provider is unavailable or fails.
package synthesizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/stake-plus/polkaquery/src/agent/components/prompts"
	"github.com/stake-plus/polkaquery/src/agent/types"
	"github.com/stake-plus/polkaquery/src/ai/core"
)

// maxDataChars bounds how much serialized backend data goes into the
// synthesis prompt.
const maxDataChars = 25000

const truncationMarker = "... (data truncated)"

type Synthesizer struct {
	llm core.Client
}

func New(llm core.Client) *Synthesizer {
	return &Synthesizer{llm: llm}
}

// Synthesize produces the final answer for a query from its normalized
// result. When the provider fails the structured data itself is returned so
// the caller still gets an answer.
func (s *Synthesizer) Synthesize(ctx context.Context, query, network string, result types.NormalizedResult, source string) string {
	data := serialize(result)
	if s.llm == nil {
		return fallbackAnswer(result, data)
	}

	prompt := prompts.Answer(query, network, source, data)
	answer, err := s.llm.Complete(ctx, prompt, core.Options{Temperature: 0.3})
	if err != nil {
		log.Printf("synthesizer: completion failed: %v", err)
		return fallbackAnswer(result, data)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fallbackAnswer(result, data)
	}
	return answer
}

// ExplainError produces a user-facing explanation of a failed tool call.
func (s *Synthesizer) ExplainError(ctx context.Context, query, tool string, params map[string]any, errMsg string) string {
	fallback := fmt.Sprintf("Sorry, I could not complete that request: %s", errMsg)
	if s.llm == nil {
		return fallback
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		paramsJSON = []byte("{}")
	}

	prompt := prompts.ErrorExplain(query, tool, string(paramsJSON), errMsg)
	answer, err := s.llm.Complete(ctx, prompt, core.Options{Temperature: 0.3})
	if err != nil {
		log.Printf("synthesizer: error explanation failed: %v", err)
		return fallback
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fallback
	}
	return answer
}

func serialize(result types.NormalizedResult) string {
	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", result.KeyData)
	}
	s := string(b)
	if len(s) > maxDataChars {
		s = s[:maxDataChars] + truncationMarker
	}
	return s
}

func fallbackAnswer(result types.NormalizedResult, data string) string {
	switch result.Status {
	case types.StatusNoData:
		return "No data was found for your query."
	case types.StatusError, types.StatusParseError:
		return fmt.Sprintf("Something went wrong while fetching the data: %s", result.Summary)
	}
	return fmt.Sprintf("Here is the data I found (%s):\n%s", result.Summary, data)
}
