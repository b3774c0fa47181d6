// Package providers registers all built-in AI providers via side effects.
package providers

import (
	_ "github.com/stake-plus/polkaquery/src/ai/gemini"
	_ "github.com/stake-plus/polkaquery/src/ai/openai"
)
