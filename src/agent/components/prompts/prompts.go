// Package prompts centralizes the LLM prompt templates. Template IDs
// participate in cache keys so editing a template invalidates cached
// decisions made with the old wording.
package prompts

import (
	"encoding/json"
	"strings"
	"text/template"

	"github.com/stake-plus/polkaquery/src/agent/components/catalog"
)

// Template identities, bumped when the wording changes.
const (
	RouterID     = "router/v1"
	RecognizerID = "recognizer/v1"
	AnswerID     = "answer/v1"
	ErrorID      = "error/v1"
)

var routerTmpl = template.Must(template.New("router").Parse(`You are a routing assistant for a Polkadot ecosystem data service.
Classify the user query into exactly one data source:

- "subscan": historical or indexed on-chain data (balances, extrinsics, transfers, blocks, accounts, staking history).
- "assethub": live chain state read directly from an AssetHub node (current storage values, asset details, live account state).
- "websearch": general knowledge, explanations, news, prices, or anything not answerable from on-chain data.

User Query: "{{.Query}}"

Respond with ONLY one word: subscan, assethub, or websearch.`))

type routerData struct {
	Query string
}

// Router renders the route-classification prompt.
func Router(query string) string {
	var b strings.Builder
	_ = routerTmpl.Execute(&b, routerData{Query: query})
	return b.String()
}

var recognizerTmpl = template.Must(template.New("recognizer").Parse(`You are an expert assistant for the Polkadot ecosystem.
Understand the user query about the '{{.Network}}' network, select the single most appropriate tool
from the AVAILABLE TOOLS, and extract the parameters that tool requires from the query.

AVAILABLE TOOLS (CHOOSE ONE):
{{.Tools}}
User Query: "{{.Query}}"
Target Network: "{{.Network}}"

Instructions:
1. Choose the single best tool for the request.
2. Extract every parameter the tool's schema requires. If a parameter has a default and is not in the query, you may omit it.
3. If no tool fits, or required parameters are missing, respond with intent "unknown" and a "reason" in parameters.
4. Respond ONLY with a single valid JSON object: {"intent": "<tool name>", "parameters": {...}}.

JSON Response:`))

type recognizerData struct {
	Query   string
	Network string
	Tools   string
}

// Recognizer renders the tool-selection prompt for a catalog of tools.
func Recognizer(query, network string, tools []*catalog.Tool) string {
	var section strings.Builder
	if len(tools) == 0 {
		section.WriteString("No tools available.\n")
	}
	for _, t := range tools {
		section.WriteString("- Name: " + t.Name + "\n")
		section.WriteString("  Description: " + t.Description + "\n")
		schema, err := json.Marshal(t.Parameters)
		if err != nil || len(t.Parameters.Properties) == 0 {
			section.WriteString("  Parameters Schema: {}\n\n")
			continue
		}
		section.WriteString("  Parameters Schema: " + string(schema) + "\n\n")
	}

	var b strings.Builder
	_ = recognizerTmpl.Execute(&b, recognizerData{Query: query, Network: network, Tools: section.String()})
	return b.String()
}

var answerTmpl = template.Must(template.New("answer").Parse(`You are a helpful assistant answering questions about the Polkadot ecosystem.
Answer the user's question in clear natural language using ONLY the structured data below.
If the data does not answer the question, say so plainly. Do not invent values.

User Question: "{{.Query}}"
Network: {{.Network}}
Data Source: {{.Source}}
Structured Data:
{{.Data}}

Answer:`))

type answerData struct {
	Query   string
	Network string
	Source  string
	Data    string
}

// Answer renders the final answer-synthesis prompt.
func Answer(query, network, source, data string) string {
	var b strings.Builder
	_ = answerTmpl.Execute(&b, answerData{Query: query, Network: network, Source: source, Data: data})
	return b.String()
}

var errorTmpl = template.Must(template.New("error").Parse(`A data lookup for a user of a Polkadot query service failed.
Explain what went wrong in one or two polite, non-technical sentences and, when sensible, suggest what the user could do instead.
Do not include stack traces or internal identifiers.

User Question: "{{.Query}}"
Attempted Tool: {{.Tool}}
Parameters: {{.Params}}
Technical Error: {{.Error}}

Explanation:`))

type errorData struct {
	Query  string
	Tool   string
	Params string
	Error  string
}

// ErrorExplain renders the error-translation prompt.
func ErrorExplain(query, tool, params, errMsg string) string {
	var b strings.Builder
	_ = errorTmpl.Execute(&b, errorData{Query: query, Tool: tool, Params: params, Error: errMsg})
	return b.String()
}
