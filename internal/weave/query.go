package weave

// ResponseType classifies a query-pipeline response for presentation.
type ResponseType string

const (
	ResponseText          ResponseType = "text"
	ResponseTable         ResponseType = "table"
	ResponseImage         ResponseType = "image"
	ResponseTableVizError ResponseType = "table_with_viz_error"
	ResponseError         ResponseType = "error"
)

// QueryRequest is one natural-language question against a chosen context.
type QueryRequest struct {
	Query     string `json:"query"`
	ContextID string `json:"context_id"`
}

// QueryResponse is the typed result of one pipeline invocation. Kind is
// the machine-checkable error discriminator; Error carries the
// human-readable message.
type QueryResponse struct {
	ID       string       `json:"id"`
	Type     ResponseType `json:"type"`
	Response any          `json:"response,omitempty"`
	Kind     string       `json:"kind,omitempty"`
	Error    string       `json:"error,omitempty"`
}
