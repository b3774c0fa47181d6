package types

// Route is the coarse backend category chosen for a query before
// tool-level selection.
type Route string

const (
	RouteSubscan   Route = "subscan"
	RouteAssetHub  Route = "assethub"
	RouteWebSearch Route = "websearch"
)

// Valid reports whether r is one of the known backend categories.
func (r Route) Valid() bool {
	switch r {
	case RouteSubscan, RouteAssetHub, RouteWebSearch:
		return true
	}
	return false
}

// Normalized result statuses.
const (
	StatusSuccess    = "success"
	StatusNoData     = "nodata"
	StatusError      = "error"
	StatusParseError = "parse_error"
)

// NormalizedResult is the backend-agnostic shape handed to answer synthesis.
// A non-success status means KeyData carries an explanation, not business data.
type NormalizedResult struct {
	Status  string         `json:"status"`
	Summary string         `json:"summary"`
	KeyData map[string]any `json:"key_data,omitempty"`
	Raw     any            `json:"raw,omitempty"`
}

// QueryRequest is the inbound HTTP body.
type QueryRequest struct {
	Query   string `json:"query"`
	Network string `json:"network"`
}

// QueryResponse is returned for every query, success or explained failure.
type QueryResponse struct {
	ID      string         `json:"id"`
	Answer  string         `json:"answer"`
	Network string         `json:"network"`
	Route   string         `json:"route,omitempty"`
	Tool    string         `json:"tool,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}
